package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

var ErrReferralNotFound = errors.New("referral not found")

func (r *Repository) CreateReferral(ctx context.Context, referral *model.Referral) error {
	query := `
		INSERT INTO referrals (referrer_id, referred_id, bonus_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		referral.ReferrerID,
		referral.ReferredID,
		referral.BonusAmount,
		referral.Status,
	).Scan(&referral.ID, &referral.CreatedAt)
}

func (r *Repository) GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.GetContext(ctx, &referral,
		"SELECT * FROM referrals WHERE referred_id = $1", referredID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

// CreditReferral marks a pending edge credited. A no-op on rows that
// were already credited.
func (r *Repository) CreditReferral(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE referrals SET status = 'credited', credited_at = $2
		WHERE id = $1 AND status = 'pending'`, id, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReferralNotFound
	}
	return nil
}

// GetReferredAccounts materializes one account's downline list from
// the edge table.
func (r *Repository) GetReferredAccounts(ctx context.Context, referrerID uuid.UUID) ([]model.Account, error) {
	var accounts []model.Account
	query := `
		SELECT a.* FROM accounts a
		INNER JOIN referrals r ON r.referred_id = a.id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at DESC`
	err := r.db.SelectContext(ctx, &accounts, query, referrerID)
	return accounts, err
}

// GetUplineAccount returns the referrer of an account, or
// ErrReferralNotFound when the account signed up without a code.
func (r *Repository) GetUplineAccount(ctx context.Context, referredID uuid.UUID) (*model.Account, error) {
	var account model.Account
	query := `
		SELECT a.* FROM accounts a
		INNER JOIN referrals r ON r.referrer_id = a.id
		WHERE r.referred_id = $1`
	err := r.db.GetContext(ctx, &account, query, referredID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CountDownlines returns total and activated downline counts for one
// account. The same join feeds the leaderboard, so the two can never
// disagree.
func (r *Repository) CountDownlines(ctx context.Context, referrerID uuid.UUID) (int, int, error) {
	var counts struct {
		Total     int `db:"total"`
		Activated int `db:"activated"`
	}
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE a.is_activated) AS activated
		FROM referrals r
		INNER JOIN accounts a ON a.id = r.referred_id
		WHERE r.referrer_id = $1`
	err := r.db.GetContext(ctx, &counts, query, referrerID)
	return counts.Total, counts.Activated, err
}

// GetLeaderboard ranks referrers by activated downlines in a single
// one-level join. Only accounts with at least one activated downline
// appear; ties go to the older account.
func (r *Repository) GetLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	query := `
		SELECT a.username,
		       a.earnings,
		       COUNT(*) AS total_downlines,
		       COUNT(*) FILTER (WHERE d.is_activated) AS activated_downlines
		FROM accounts a
		INNER JOIN referrals r ON r.referrer_id = a.id
		INNER JOIN accounts d ON d.id = r.referred_id
		GROUP BY a.id, a.username, a.earnings, a.created_at
		HAVING COUNT(*) FILTER (WHERE d.is_activated) > 0
		ORDER BY activated_downlines DESC, a.created_at ASC
		LIMIT $1`
	err := r.db.SelectContext(ctx, &entries, query, limit)
	return entries, err
}
