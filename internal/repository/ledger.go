package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Philipkwofie/referwin/internal/model"
)

// ErrDuplicateClaim means a same-day reward for this source was
// already granted. The claim leaves earnings untouched.
var ErrDuplicateClaim = errors.New("reward already claimed today")

// CreditEarnings adds amount to an account's earnings and writes the
// ledger row in one transaction.
func (r *Repository) CreditEarnings(ctx context.Context, accountID uuid.UUID, amount float64, rewardType model.RewardType, description string, referenceID *uuid.UUID) (float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balanceBefore, err := lockEarnings(ctx, tx, accountID)
	if err != nil {
		return 0, err
	}
	balanceAfter := balanceBefore + amount

	_, err = tx.ExecContext(ctx,
		"UPDATE accounts SET earnings = $1, updated_at = NOW() WHERE id = $2",
		balanceAfter, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to update earnings: %w", err)
	}

	if err := insertRewardEvent(ctx, tx, accountID, amount, rewardType, description, referenceID, balanceBefore, balanceAfter); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

// ClaimAdWatch grants the ad reward at most once per (account, ad, UTC
// day). The unique index on ad_watches is the double-spend guard: a
// second claim inserts nothing and the earnings credit never happens.
func (r *Repository) ClaimAdWatch(ctx context.Context, accountID, adID uuid.UUID, day time.Time, amount float64) (float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balanceBefore, err := lockEarnings(ctx, tx, accountID)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO ad_watches (account_id, ad_id, watched_on)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, ad_id, watched_on) DO NOTHING`,
		accountID, adID, day)
	if err != nil {
		return 0, fmt.Errorf("failed to record ad watch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return balanceBefore, ErrDuplicateClaim
	}

	balanceAfter := balanceBefore + amount
	_, err = tx.ExecContext(ctx,
		"UPDATE accounts SET earnings = $1, updated_at = NOW() WHERE id = $2",
		balanceAfter, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to update earnings: %w", err)
	}

	if err := insertRewardEvent(ctx, tx, accountID, amount, model.RewardTypeAdWatch, "ad watch reward", &adID, balanceBefore, balanceAfter); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

// ClaimLinkView grants the daily link reward at most once per UTC day.
// The account row is locked for the whole check-then-credit, so two
// concurrent claims serialize and the second one fails.
func (r *Repository) ClaimLinkView(ctx context.Context, accountID uuid.UUID, dayStart, viewedAt time.Time, amount float64) (float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var account struct {
		Earnings       float64    `db:"earnings"`
		LastLinkViewAt *time.Time `db:"last_link_view_at"`
	}
	err = tx.GetContext(ctx, &account,
		"SELECT earnings, last_link_view_at FROM accounts WHERE id = $1 FOR UPDATE", accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	if account.LastLinkViewAt != nil && !account.LastLinkViewAt.Before(dayStart) {
		return account.Earnings, ErrDuplicateClaim
	}

	balanceAfter := account.Earnings + amount
	_, err = tx.ExecContext(ctx, `
		UPDATE accounts SET earnings = $1, last_link_view_at = $2, updated_at = NOW()
		WHERE id = $3`,
		balanceAfter, viewedAt, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to update earnings: %w", err)
	}

	if err := insertRewardEvent(ctx, tx, accountID, amount, model.RewardTypeLinkView, "daily link view reward", nil, account.Earnings, balanceAfter); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

// HasWatchedAd reports whether the account already earned from this
// ad on the given UTC day.
func (r *Repository) HasWatchedAd(ctx context.Context, accountID, adID uuid.UUID, day time.Time) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM ad_watches
		WHERE account_id = $1 AND ad_id = $2 AND watched_on = $3`,
		accountID, adID, day)
	return count > 0, err
}

// GetRewardEvents returns the ledger history for an account, newest
// first.
func (r *Repository) GetRewardEvents(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.RewardEvent, error) {
	var events []model.RewardEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT * FROM reward_events
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	return events, err
}

func lockEarnings(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID) (float64, error) {
	var earnings float64
	err := tx.GetContext(ctx, &earnings,
		"SELECT earnings FROM accounts WHERE id = $1 FOR UPDATE", accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to get earnings: %w", err)
	}
	return earnings, nil
}

func insertRewardEvent(ctx context.Context, tx *sqlx.Tx, accountID uuid.UUID, amount float64, rewardType model.RewardType, description string, referenceID *uuid.UUID, balanceBefore, balanceAfter float64) error {
	var desc *string
	if description != "" {
		desc = &description
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO reward_events (account_id, amount, type, description, reference_id, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		accountID, amount, rewardType, desc, referenceID, balanceBefore, balanceAfter)
	if err != nil {
		return fmt.Errorf("failed to create reward event: %w", err)
	}
	return nil
}
