package model

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
)

type Withdrawal struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	AccountID   uuid.UUID        `json:"account_id" db:"account_id"`
	Amount      float64          `json:"amount" db:"amount"`
	Status      WithdrawalStatus `json:"status" db:"status"`
	RequestedAt time.Time        `json:"requested_at" db:"requested_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
}

// WithdrawalWithAccount is the admin payout view, joined with the
// requesting account.
type WithdrawalWithAccount struct {
	Withdrawal
	Username string  `json:"username" db:"username"`
	Phone    *string `json:"phone,omitempty" db:"phone"`
}
