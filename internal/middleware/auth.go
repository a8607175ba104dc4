package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

const (
	AdminKey   = "admin"
	AdminIDKey = "admin_id"
)

// TokenResolver maps a bearer token to the admin who owns it.
// Satisfied by *service.AdminService.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.Admin, error)
}

// AdminAuth resolves the Authorization bearer token to an admin
// identity and attaches it to the request.
func AdminAuth(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		admin, err := resolver.ResolveToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals(AdminKey, admin)
		c.Locals(AdminIDKey, admin.ID)

		return c.Next()
	}
}

// MasterAuth allows only master-role admins through. Must run after
// AdminAuth.
func MasterAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := GetAdmin(c)
		if admin == nil || admin.Role != model.AdminRoleMaster {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied, master admin required",
			})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// GetAdmin returns the authenticated admin from the request context.
func GetAdmin(c *fiber.Ctx) *model.Admin {
	admin, ok := c.Locals(AdminKey).(*model.Admin)
	if !ok {
		return nil
	}
	return admin
}

// GetAdminID returns the authenticated admin's ID, or uuid.Nil.
func GetAdminID(c *fiber.Ctx) uuid.UUID {
	id, ok := c.Locals(AdminIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
