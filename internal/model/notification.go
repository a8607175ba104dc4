package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeIndividual NotificationType = "individual"
	NotificationTypeBroadcast  NotificationType = "broadcast"
)

type Notification struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	AccountID    uuid.UUID        `json:"account_id" db:"account_id"`
	Message      string           `json:"message" db:"message"`
	Type         NotificationType `json:"type" db:"type"`
	WithdrawalID *uuid.UUID       `json:"withdrawal_id,omitempty" db:"withdrawal_id"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// NotificationWithAccount is the admin message view, joined with the
// recipient's username.
type NotificationWithAccount struct {
	Notification
	Username string `json:"username" db:"username"`
}

type NotificationStats struct {
	Total  int `json:"total"`
	Recent int `json:"recent"`
	Old    int `json:"old"`
}
