package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

func (r *Repository) CreateNotification(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (account_id, message, type, withdrawal_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		notification.AccountID,
		notification.Message,
		notification.Type,
		notification.WithdrawalID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

// BroadcastNotification inserts one row per account in a single
// statement and returns the number of recipients.
func (r *Repository) BroadcastNotification(ctx context.Context, message string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (account_id, message, type)
		SELECT id, $1, 'broadcast' FROM accounts`, message)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *Repository) GetAccountNotifications(ctx context.Context, accountID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE account_id = $1
		ORDER BY created_at DESC`, accountID)
	return notifications, err
}

func (r *Repository) GetAllNotifications(ctx context.Context) ([]model.NotificationWithAccount, error) {
	var notifications []model.NotificationWithAccount
	query := `
		SELECT n.*, a.username
		FROM notifications n
		INNER JOIN accounts a ON a.id = n.account_id
		ORDER BY n.created_at DESC`
	err := r.db.SelectContext(ctx, &notifications, query)
	return notifications, err
}

// TrimOldNotifications deletes everything but the keep most recent
// rows.
func (r *Repository) TrimOldNotifications(ctx context.Context, keep int) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE id NOT IN (
			SELECT id FROM notifications
			ORDER BY created_at DESC
			LIMIT $1
		)`, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *Repository) GetNotificationStats(ctx context.Context) (*model.NotificationStats, error) {
	stats := &model.NotificationStats{}

	err := r.db.GetContext(ctx, &stats.Total, "SELECT COUNT(*) FROM notifications")
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.Recent,
		"SELECT COUNT(*) FROM notifications WHERE created_at >= NOW() - INTERVAL '24 hours'")
	if err != nil {
		return nil, err
	}

	stats.Old = stats.Total - stats.Recent
	return stats, nil
}
