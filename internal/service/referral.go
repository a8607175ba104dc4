package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/config"
	"github.com/Philipkwofie/referwin/internal/model"
	"github.com/Philipkwofie/referwin/internal/repository"
)

// ReferralStore is the referral-graph persistence the service needs.
// It is satisfied by *repository.Repository.
type ReferralStore interface {
	GetAccountByReferralCode(ctx context.Context, code string) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	CreateReferral(ctx context.Context, referral *model.Referral) error
	GetReferralByReferredID(ctx context.Context, referredID uuid.UUID) (*model.Referral, error)
	CreditReferral(ctx context.Context, id uuid.UUID) error
	GetReferredAccounts(ctx context.Context, referrerID uuid.UUID) ([]model.Account, error)
	GetUplineAccount(ctx context.Context, referredID uuid.UUID) (*model.Account, error)
	CountDownlines(ctx context.Context, referrerID uuid.UUID) (int, int, error)
	GetLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	CreditEarnings(ctx context.Context, accountID uuid.UUID, amount float64, rewardType model.RewardType, description string, referenceID *uuid.UUID) (float64, error)
}

type ReferralService struct {
	store   ReferralStore
	rewards config.RewardConfig
}

func NewReferralService(store ReferralStore, rewards config.RewardConfig) *ReferralService {
	return &ReferralService{store: store, rewards: rewards}
}

// Attach links a new account to the owner of the referral code. The
// lookup is case-insensitive. An unresolvable code is a silent no-op:
// the account simply has no upline. A new account cannot be its own
// referrer, so no cycle check is needed.
func (s *ReferralService) Attach(ctx context.Context, referrerCode string, newAccountID uuid.UUID) error {
	referrer, err := s.store.GetAccountByReferralCode(ctx, referrerCode)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	referral := &model.Referral{
		ReferrerID:  referrer.ID,
		ReferredID:  newAccountID,
		BonusAmount: s.rewards.ReferralBonus,
		Status:      model.ReferralStatusPending,
	}
	return s.store.CreateReferral(ctx, referral)
}

// Upline returns the referring account, or nil when the account signed
// up without a code.
func (s *ReferralService) Upline(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	upline, err := s.store.GetUplineAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return upline, nil
}

func (s *ReferralService) ReferredAccounts(ctx context.Context, referrerID uuid.UUID) ([]model.Account, error) {
	return s.store.GetReferredAccounts(ctx, referrerID)
}

// ComputeDownlines returns one account's downline summary by username.
func (s *ReferralService) ComputeDownlines(ctx context.Context, username string) (*model.DownlineSummary, []model.Account, error) {
	account, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	total, activated, err := s.store.CountDownlines(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	downlines, err := s.store.GetReferredAccounts(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	summary := &model.DownlineSummary{
		Username:           account.Username,
		IsActivated:        account.IsActivated,
		TotalDownlines:     total,
		ActivatedDownlines: activated,
	}
	return summary, downlines, nil
}

// Leaderboard ranks accounts by activated downlines. A non-positive
// limit falls back to the default of 10.
func (s *ReferralService) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = config.DefaultLeaderboardLimit
	}
	return s.store.GetLeaderboard(ctx, limit)
}

// CreditPending pays the referrer's bonus for a freshly activated
// downline. Called on the first activation only; an account without a
// pending edge is a no-op.
func (s *ReferralService) CreditPending(ctx context.Context, referredID uuid.UUID) error {
	referral, err := s.store.GetReferralByReferredID(ctx, referredID)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			return nil
		}
		return err
	}
	if referral.Status != model.ReferralStatusPending {
		return nil
	}

	if err := s.store.CreditReferral(ctx, referral.ID); err != nil {
		return err
	}

	_, err = s.store.CreditEarnings(ctx, referral.ReferrerID, referral.BonusAmount,
		model.RewardTypeReferralBonus, "referral bonus", &referral.ID)
	return err
}
