package model

import (
	"time"

	"github.com/google/uuid"
)

type ReferralStatus string

const (
	ReferralStatusPending  ReferralStatus = "pending"
	ReferralStatusCredited ReferralStatus = "credited"
)

// Referral is the single source of truth for the referral graph: one
// edge per referred account, created at signup.
type Referral struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	ReferrerID  uuid.UUID      `json:"referrer_id" db:"referrer_id"`
	ReferredID  uuid.UUID      `json:"referred_id" db:"referred_id"`
	BonusAmount float64        `json:"bonus_amount" db:"bonus_amount"`
	Status      ReferralStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	CreditedAt  *time.Time     `json:"credited_at,omitempty" db:"credited_at"`
}

// DownlineSummary is one account's one-level downline view. Downlines
// never span generations in this system.
type DownlineSummary struct {
	Username           string `json:"username"`
	IsActivated        bool   `json:"is_activated"`
	TotalDownlines     int    `json:"total_downlines"`
	ActivatedDownlines int    `json:"activated_downlines"`
}

// LeaderboardEntry ranks accounts by activated downlines. Ties are
// broken by account creation time, oldest first.
type LeaderboardEntry struct {
	Username           string  `json:"username" db:"username"`
	TotalDownlines     int     `json:"total_downlines" db:"total_downlines"`
	ActivatedDownlines int     `json:"activated_downlines" db:"activated_downlines"`
	Earnings           float64 `json:"earnings" db:"earnings"`
}
