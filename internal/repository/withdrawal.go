package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

var (
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
	ErrInsufficientBalance  = errors.New("insufficient balance")
)

// RequestWithdrawal debits the account and creates the pending
// withdrawal in one transaction. The debit is a conditional update:
// it only applies where earnings cover the amount, so concurrent
// requests cannot overdraw, and a failed condition writes nothing.
func (r *Repository) RequestWithdrawal(ctx context.Context, accountID uuid.UUID, amount float64) (*model.Withdrawal, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var balanceAfter float64
	err = tx.GetContext(ctx, &balanceAfter, `
		UPDATE accounts SET earnings = earnings - $2, updated_at = NOW()
		WHERE id = $1 AND earnings >= $2
		RETURNING earnings`,
		accountID, amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetAccount(ctx, accountID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to debit earnings: %w", err)
	}

	withdrawal := &model.Withdrawal{
		AccountID: accountID,
		Amount:    amount,
		Status:    model.WithdrawalStatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO withdrawals (account_id, amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, requested_at`,
		withdrawal.AccountID, withdrawal.Amount, withdrawal.Status,
	).Scan(&withdrawal.ID, &withdrawal.RequestedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	if err := insertRewardEvent(ctx, tx, accountID, -amount, model.RewardTypeWithdrawal, "withdrawal request", &withdrawal.ID, balanceAfter+amount, balanceAfter); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// MarkWithdrawalPaid transitions pending → completed. An already
// completed withdrawal is rejected, so a payout cannot be recorded
// twice.
func (r *Repository) MarkWithdrawalPaid(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	var withdrawal model.Withdrawal
	err := r.db.GetContext(ctx, &withdrawal, `
		UPDATE withdrawals SET status = 'completed', completed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING *`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetWithdrawal(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrWithdrawalNotPending
		}
		return nil, err
	}
	return &withdrawal, nil
}

func (r *Repository) GetWithdrawal(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	var withdrawal model.Withdrawal
	err := r.db.GetContext(ctx, &withdrawal, "SELECT * FROM withdrawals WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	return &withdrawal, nil
}

func (r *Repository) GetAccountWithdrawals(ctx context.Context, accountID uuid.UUID) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM withdrawals
		WHERE account_id = $1
		ORDER BY requested_at DESC`, accountID)
	return withdrawals, err
}

// GetAllWithdrawals is the admin payout view, joined with the
// requesting account.
func (r *Repository) GetAllWithdrawals(ctx context.Context) ([]model.WithdrawalWithAccount, error) {
	var withdrawals []model.WithdrawalWithAccount
	query := `
		SELECT w.*, a.username, a.phone
		FROM withdrawals w
		INNER JOIN accounts a ON a.id = w.account_id
		ORDER BY w.requested_at DESC`
	err := r.db.SelectContext(ctx, &withdrawals, query)
	return withdrawals, err
}
