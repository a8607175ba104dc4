package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "admin"
	AdminRoleMaster AdminRole = "master"
)

type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         AdminRole `json:"role" db:"role"`
	Token        *string   `json:"-" db:"token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type AdminLog struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	AdminID         uuid.UUID  `json:"admin_id" db:"admin_id"`
	Action          string     `json:"action" db:"action"`
	TargetAccountID *uuid.UUID `json:"target_account_id,omitempty" db:"target_account_id"`
	Details         []byte     `json:"details,omitempty" db:"details"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// Admin action constants
const (
	AdminActionActivateAccount   = "activate_account"
	AdminActionDeactivateAccount = "deactivate_account"
	AdminActionRewardAccount     = "reward_account"
	AdminActionPayWithdrawal     = "pay_withdrawal"
	AdminActionSetWhatsApp       = "set_whatsapp_number"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalAccounts       int `json:"total_accounts"`
	ActivatedAccounts   int `json:"activated_accounts"`
	UnactivatedAccounts int `json:"unactivated_accounts"`
	TotalWithdrawals    int `json:"total_withdrawals"`
	PendingWithdrawals  int `json:"pending_withdrawals"`
	AccountsWithRewards int `json:"accounts_with_rewards"`
}

// OnlineStats splits the currently online accounts by activation.
type OnlineStats struct {
	TotalOnline        int       `json:"total_online"`
	ActivatedOnline    int       `json:"activated_online"`
	NonActivatedOnline int       `json:"non_activated_online"`
	OnlineAccounts     []Account `json:"online_accounts"`
}
