package model

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	ReferralCode   string     `json:"referral_code" db:"referral_code"`
	Earnings       float64    `json:"earnings" db:"earnings"`
	IsActivated    bool       `json:"is_activated" db:"is_activated"`
	ActivationFee  float64    `json:"activation_fee" db:"activation_fee"`
	IsOnline       bool       `json:"is_online" db:"is_online"`
	LastLinkViewAt *time.Time `json:"last_link_view_at,omitempty" db:"last_link_view_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Dashboard is the per-account summary shown after login.
type Dashboard struct {
	Username           string     `json:"username"`
	IsActivated        bool       `json:"is_activated"`
	ActivationFee      float64    `json:"activation_fee"`
	Earnings           float64    `json:"earnings"`
	ReferralCode       string     `json:"referral_code"`
	TotalDownlines     int        `json:"total_downlines"`
	ActivatedDownlines []Account  `json:"activated_downlines"`
	PendingDownlines   []Account  `json:"pending_downlines"`
	LastLinkViewAt     *time.Time `json:"last_link_view_at,omitempty"`
}
