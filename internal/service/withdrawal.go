package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

// WithdrawalStore is the payout persistence the service needs. It is
// satisfied by *repository.Repository.
type WithdrawalStore interface {
	RequestWithdrawal(ctx context.Context, accountID uuid.UUID, amount float64) (*model.Withdrawal, error)
	MarkWithdrawalPaid(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error)
	GetWithdrawal(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error)
	GetAccountWithdrawals(ctx context.Context, accountID uuid.UUID) ([]model.Withdrawal, error)
	GetAllWithdrawals(ctx context.Context) ([]model.WithdrawalWithAccount, error)
}

type WithdrawalService struct {
	store           WithdrawalStore
	notificationSvc *NotificationService
}

func NewWithdrawalService(store WithdrawalStore) *WithdrawalService {
	return &WithdrawalService{store: store}
}

// SetNotificationService sets the notification service (to avoid circular deps)
func (s *WithdrawalService) SetNotificationService(notificationSvc *NotificationService) {
	s.notificationSvc = notificationSvc
}

// Request debits the balance and creates the pending withdrawal
// atomically. An amount above the balance fails with
// ErrInsufficientBalance and writes nothing.
func (s *WithdrawalService) Request(ctx context.Context, accountID uuid.UUID, amount float64) (*model.Withdrawal, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ErrInvalidAmount
	}
	return s.store.RequestWithdrawal(ctx, accountID, amount)
}

// MarkPaid transitions a pending withdrawal to completed. Paying an
// already-completed withdrawal is rejected. Earnings are untouched:
// the debit happened at request time.
func (s *WithdrawalService) MarkPaid(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	withdrawal, err := s.store.MarkWithdrawalPaid(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notificationSvc != nil {
		_ = s.notificationSvc.Send(ctx, withdrawal.AccountID,
			"Your withdrawal has been paid.", &withdrawal.ID)
	}

	return withdrawal, nil
}

func (s *WithdrawalService) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]model.Withdrawal, error) {
	return s.store.GetAccountWithdrawals(ctx, accountID)
}

func (s *WithdrawalService) ListAll(ctx context.Context) ([]model.WithdrawalWithAccount, error) {
	return s.store.GetAllWithdrawals(ctx)
}
