package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/config"
	"github.com/Philipkwofie/referwin/internal/model"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrAdInactive    = errors.New("ad is not active")
)

// RewardStore is the eligibility-gate and ledger persistence the
// service needs. It is satisfied by *repository.Repository.
type RewardStore interface {
	GetAd(ctx context.Context, id uuid.UUID) (*model.Ad, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	HasWatchedAd(ctx context.Context, accountID, adID uuid.UUID, day time.Time) (bool, error)
	ClaimAdWatch(ctx context.Context, accountID, adID uuid.UUID, day time.Time, amount float64) (float64, error)
	ClaimLinkView(ctx context.Context, accountID uuid.UUID, dayStart, viewedAt time.Time, amount float64) (float64, error)
	CreditEarnings(ctx context.Context, accountID uuid.UUID, amount float64, rewardType model.RewardType, description string, referenceID *uuid.UUID) (float64, error)
	GetRewardEvents(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.RewardEvent, error)
}

type RewardService struct {
	store   RewardStore
	rewards config.RewardConfig
}

func NewRewardService(store RewardStore, rewards config.RewardConfig) *RewardService {
	return &RewardService{store: store, rewards: rewards}
}

// Daily eligibility uses UTC calendar days everywhere.
func dayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClaimAdReward grants the per-platform ad reward, at most once per
// (account, ad, UTC day). The second same-day claim returns
// ErrDuplicateClaim with earnings unchanged.
func (s *RewardService) ClaimAdReward(ctx context.Context, accountID, adID uuid.UUID, now time.Time) (float64, float64, error) {
	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return 0, 0, err
	}
	if !ad.IsActive {
		return 0, 0, ErrAdInactive
	}

	amount := s.rewards.AdAmount(ad.Platform)
	balance, err := s.store.ClaimAdWatch(ctx, accountID, adID, dayStartUTC(now), amount)
	if err != nil {
		return 0, 0, err
	}
	return amount, balance, nil
}

// ClaimLinkReward grants the daily link-view reward, at most once per
// UTC day.
func (s *RewardService) ClaimLinkReward(ctx context.Context, accountID uuid.UUID, now time.Time) (float64, float64, error) {
	amount := s.rewards.LinkView
	balance, err := s.store.ClaimLinkView(ctx, accountID, dayStartUTC(now), now.UTC(), amount)
	if err != nil {
		return 0, 0, err
	}
	return amount, balance, nil
}

// GrantManual credits an admin-initiated reward to the named account.
func (s *RewardService) GrantManual(ctx context.Context, username string, amount float64) (*model.Account, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ErrInvalidAmount
	}

	account, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	balance, err := s.store.CreditEarnings(ctx, account.ID, amount,
		model.RewardTypeAdminReward, "admin reward", nil)
	if err != nil {
		return nil, err
	}
	account.Earnings = balance
	return account, nil
}

func (s *RewardService) History(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.RewardEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.GetRewardEvents(ctx, accountID, limit, offset)
}

// CanEarnFromAd reports ad eligibility without claiming. The claim
// itself re-checks atomically, so this is advisory only.
func (s *RewardService) CanEarnFromAd(ctx context.Context, accountID, adID uuid.UUID, asOf time.Time) (bool, error) {
	watched, err := s.store.HasWatchedAd(ctx, accountID, adID, dayStartUTC(asOf))
	if err != nil {
		return false, err
	}
	return !watched, nil
}

// CanEarnFromLink reports link-view eligibility without claiming.
func (s *RewardService) CanEarnFromLink(ctx context.Context, accountID uuid.UUID, asOf time.Time) (bool, error) {
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	if account.LastLinkViewAt == nil {
		return true, nil
	}
	return account.LastLinkViewAt.Before(dayStartUTC(asOf)), nil
}
