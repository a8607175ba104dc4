package model

import (
	"time"

	"github.com/google/uuid"
)

type RewardType string

const (
	RewardTypeAdWatch       RewardType = "ad_watch"
	RewardTypeLinkView      RewardType = "link_view"
	RewardTypeReferralBonus RewardType = "referral_bonus"
	RewardTypeAdminReward   RewardType = "admin_reward"
	RewardTypeWithdrawal    RewardType = "withdrawal"
)

// RewardEvent is an append-only ledger row. Every earnings mutation
// writes one in the same transaction as the balance change.
type RewardEvent struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	AccountID     uuid.UUID  `json:"account_id" db:"account_id"`
	Amount        float64    `json:"amount" db:"amount"` // positive = credit, negative = debit
	Type          RewardType `json:"type" db:"type"`
	Description   *string    `json:"description,omitempty" db:"description"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty" db:"reference_id"`
	BalanceBefore float64    `json:"balance_before" db:"balance_before"`
	BalanceAfter  float64    `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// AdWatch records that an account earned from an ad on a given UTC
// calendar day. The (account, ad, day) tuple is unique.
type AdWatch struct {
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	AdID      uuid.UUID `json:"ad_id" db:"ad_id"`
	WatchedOn time.Time `json:"watched_on" db:"watched_on"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
