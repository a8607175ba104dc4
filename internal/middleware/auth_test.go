package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philipkwofie/referwin/internal/model"
)

type fakeResolver struct {
	admins map[string]*model.Admin
}

func (f *fakeResolver) ResolveToken(_ context.Context, token string) (*model.Admin, error) {
	admin, ok := f.admins[token]
	if !ok {
		return nil, errors.New("admin not found")
	}
	return admin, nil
}

func newAuthApp(resolver *fakeResolver) *fiber.App {
	app := fiber.New()
	admin := app.Group("/admin", AdminAuth(resolver))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"admin_id": GetAdminID(c)})
	})
	admin.Get("/master-only", MasterAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestAdminAuth(t *testing.T) {
	adminID := uuid.New()
	resolver := &fakeResolver{admins: map[string]*model.Admin{
		"good-token": {ID: adminID, Username: "root", Role: model.AdminRoleAdmin},
	}}
	app := newAuthApp(resolver)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		req.Header.Set("Authorization", "good-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestMasterAuth(t *testing.T) {
	resolver := &fakeResolver{admins: map[string]*model.Admin{
		"admin-token":  {ID: uuid.New(), Username: "helper", Role: model.AdminRoleAdmin},
		"master-token": {ID: uuid.New(), Username: "root", Role: model.AdminRoleMaster},
	}}
	app := newAuthApp(resolver)

	t.Run("admin role rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/master-only", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("master role allowed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/master-only", nil)
		req.Header.Set("Authorization", "Bearer master-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
