package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

var ErrAdminNotFound = errors.New("admin not found")

func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin,
		"SELECT * FROM admins WHERE LOWER(username) = LOWER($1)", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) GetAdminByToken(ctx context.Context, token string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, "SELECT * FROM admins WHERE token = $1", token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// SetAdminToken stores the opaque session token on the admin row. A
// nil token logs the admin out.
func (r *Repository) SetAdminToken(ctx context.Context, id uuid.UUID, token *string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE admins SET token = $2 WHERE id = $1", id, token)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *Repository) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		admin.Username, admin.PasswordHash, admin.Role,
	).Scan(&admin.ID, &admin.CreatedAt)
}

func (r *Repository) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.SelectContext(ctx, &admins, "SELECT * FROM admins ORDER BY created_at DESC")
	return admins, err
}

func (r *Repository) CreateAdminLog(ctx context.Context, log *model.AdminLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_logs (admin_id, action, target_account_id, details)
		VALUES ($1, $2, $3, $4)`,
		log.AdminID, log.Action, log.TargetAccountID, log.Details)
	return err
}

// LogAdminAction is a helper to create an admin log with JSON details.
func (r *Repository) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetAccountID *uuid.UUID, details interface{}) error {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return err
		}
	}
	return r.CreateAdminLog(ctx, &model.AdminLog{
		AdminID:         adminID,
		Action:          action,
		TargetAccountID: targetAccountID,
		Details:         detailsJSON,
	})
}

func (r *Repository) GetAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	var logs []model.AdminLog
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM admin_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return logs, err
}

// GetStats collects the admin dashboard counters.
func (r *Repository) GetStats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}

	err := r.db.GetContext(ctx, &stats.TotalAccounts, "SELECT COUNT(*) FROM accounts")
	if err != nil {
		return nil, err
	}
	err = r.db.GetContext(ctx, &stats.ActivatedAccounts,
		"SELECT COUNT(*) FROM accounts WHERE is_activated = true")
	if err != nil {
		return nil, err
	}
	stats.UnactivatedAccounts = stats.TotalAccounts - stats.ActivatedAccounts

	err = r.db.GetContext(ctx, &stats.TotalWithdrawals, "SELECT COUNT(*) FROM withdrawals")
	if err != nil {
		return nil, err
	}
	err = r.db.GetContext(ctx, &stats.PendingWithdrawals,
		"SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'")
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.AccountsWithRewards,
		"SELECT COUNT(DISTINCT account_id) FROM reward_events WHERE amount > 0")
	if err != nil {
		return nil, err
	}

	return stats, nil
}
