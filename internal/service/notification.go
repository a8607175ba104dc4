package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/config"
	"github.com/Philipkwofie/referwin/internal/model"
)

// NotificationStore is satisfied by *repository.Repository.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	BroadcastNotification(ctx context.Context, message string) (int, error)
	GetAccountNotifications(ctx context.Context, accountID uuid.UUID) ([]model.Notification, error)
	GetAllNotifications(ctx context.Context) ([]model.NotificationWithAccount, error)
	TrimOldNotifications(ctx context.Context, keep int) (int, error)
	GetNotificationStats(ctx context.Context) (*model.NotificationStats, error)
}

type NotificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) Send(ctx context.Context, accountID uuid.UUID, message string, withdrawalID *uuid.UUID) error {
	notification := &model.Notification{
		AccountID:    accountID,
		Message:      message,
		Type:         model.NotificationTypeIndividual,
		WithdrawalID: withdrawalID,
	}
	return s.store.CreateNotification(ctx, notification)
}

// Broadcast stores one notification per account and returns the number
// of recipients.
func (s *NotificationService) Broadcast(ctx context.Context, message string) (int, error) {
	return s.store.BroadcastNotification(ctx, message)
}

func (s *NotificationService) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]model.Notification, error) {
	return s.store.GetAccountNotifications(ctx, accountID)
}

func (s *NotificationService) ListAll(ctx context.Context) ([]model.NotificationWithAccount, error) {
	return s.store.GetAllNotifications(ctx)
}

// TrimOld keeps only the most recent notifications. A non-positive
// keep falls back to the default retention.
func (s *NotificationService) TrimOld(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		keep = config.DefaultNotificationKeep
	}
	return s.store.TrimOldNotifications(ctx, keep)
}

func (s *NotificationService) Stats(ctx context.Context) (*model.NotificationStats, error) {
	return s.store.GetNotificationStats(ctx)
}
