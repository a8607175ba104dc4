package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philipkwofie/referwin/internal/model"
	"github.com/Philipkwofie/referwin/internal/repository"
)

func newRewardService(store *fakeStore) *RewardService {
	return NewRewardService(store, testRewards())
}

func TestClaimAdRewardOncePerDay(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	ad := store.mustAd("tiktok", true)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	amount, balance, err := svc.ClaimAdReward(context.Background(), account.ID, ad.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 0.15, amount)
	assert.Equal(t, 0.15, balance)

	// Second claim on the same day fails and leaves earnings unchanged.
	_, _, err = svc.ClaimAdReward(context.Background(), account.ID, ad.ID, now.Add(3*time.Hour))
	assert.ErrorIs(t, err, repository.ErrDuplicateClaim)
	assert.Equal(t, 0.15, store.accounts[account.ID].Earnings)
	assert.Len(t, store.rewardEvents, 1)
}

func TestClaimAdRewardNextDay(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	ad := store.mustAd("tiktok", true)
	day1 := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC)

	_, _, err := svc.ClaimAdReward(context.Background(), account.ID, ad.ID, day1)
	require.NoError(t, err)

	_, balance, err := svc.ClaimAdReward(context.Background(), account.ID, ad.ID, day2)
	require.NoError(t, err, "day boundary resets eligibility")
	assert.Equal(t, 0.30, balance)
}

func TestClaimAdRewardPlatformAmount(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	youtube := store.mustAd("youtube", true)
	now := time.Now().UTC()

	amount, _, err := svc.ClaimAdReward(context.Background(), account.ID, youtube.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 0.20, amount, "youtube pays the platform rate")
}

func TestClaimAdRewardInactiveAd(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	ad := store.mustAd("tiktok", false)

	_, _, err := svc.ClaimAdReward(context.Background(), account.ID, ad.ID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrAdInactive)
	assert.Zero(t, store.accounts[account.ID].Earnings)
}

func TestTwoAdsSameDay(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	first := store.mustAd("tiktok", true)
	second := store.mustAd("facebook", true)
	now := time.Now().UTC()

	_, _, err := svc.ClaimAdReward(context.Background(), account.ID, first.ID, now)
	require.NoError(t, err)
	_, balance, err := svc.ClaimAdReward(context.Background(), account.ID, second.ID, now)
	require.NoError(t, err, "eligibility is per ad, not per account")
	assert.Equal(t, 0.30, balance)
}

func TestClaimLinkRewardOncePerDay(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	amount, balance, err := svc.ClaimLinkReward(context.Background(), account.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 0.05, amount)
	assert.Equal(t, 0.05, balance)

	_, _, err = svc.ClaimLinkReward(context.Background(), account.ID, now.Add(5*time.Hour))
	assert.ErrorIs(t, err, repository.ErrDuplicateClaim)
	assert.Equal(t, 0.05, store.accounts[account.ID].Earnings)

	_, balance, err = svc.ClaimLinkReward(context.Background(), account.ID, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0.10, balance)
}

func TestCanEarnFromAd(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	ad := store.mustAd("tiktok", true)
	now := time.Now().UTC()

	ok, err := svc.CanEarnFromAd(context.Background(), account.ID, ad.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// The check itself never consumes eligibility.
	ok, err = svc.CanEarnFromAd(context.Background(), account.ID, ad.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = svc.ClaimAdReward(context.Background(), account.ID, ad.ID, now)
	require.NoError(t, err)

	ok, err = svc.CanEarnFromAd(context.Background(), account.ID, ad.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanEarnFromLink(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ok, err := svc.CanEarnFromLink(context.Background(), account.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = svc.ClaimLinkReward(context.Background(), account.ID, now)
	require.NoError(t, err)

	ok, err = svc.CanEarnFromLink(context.Background(), account.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanEarnFromLink(context.Background(), account.ID, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGrantManual(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)
	store.mustAccount("kwame", 5, true)

	account, err := svc.GrantManual(context.Background(), "kwame", 20)
	require.NoError(t, err)
	assert.Equal(t, 25.0, account.Earnings)

	_, err = svc.GrantManual(context.Background(), "kwame", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.GrantManual(context.Background(), "kwame", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.GrantManual(context.Background(), "nobody", 5)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestLedgerMatchesEarnings(t *testing.T) {
	store := newFakeStore()
	svc := newRewardService(store)

	account := store.mustAccount("kwame", 0, true)
	ad := store.mustAd("youtube", true)
	now := time.Now().UTC()

	_, _, err := svc.ClaimAdReward(context.Background(), account.ID, ad.ID, now)
	require.NoError(t, err)
	_, _, err = svc.ClaimLinkReward(context.Background(), account.ID, now)
	require.NoError(t, err)

	events, err := svc.History(context.Background(), account.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var sum float64
	for _, e := range events {
		sum += e.Amount
	}
	assert.InDelta(t, store.accounts[account.ID].Earnings, sum, 1e-9,
		"event amounts sum to the balance")
	assert.Equal(t, model.RewardTypeLinkView, events[0].Type, "newest first")
}
