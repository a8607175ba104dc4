package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
	"github.com/Philipkwofie/referwin/internal/repository"
)

// fakeStore is an in-memory stand-in for *repository.Repository with
// the same error contract.
type fakeStore struct {
	accounts      map[uuid.UUID]*model.Account
	referrals     map[uuid.UUID]*model.Referral
	ads           map[uuid.UUID]*model.Ad
	adWatches     map[string]bool // account|ad|day
	rewardEvents  []model.RewardEvent
	withdrawals   map[uuid.UUID]*model.Withdrawal
	notifications []model.Notification
	admins        map[uuid.UUID]*model.Admin
	adminLogs     []model.AdminLog
	settings      map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:    make(map[uuid.UUID]*model.Account),
		referrals:   make(map[uuid.UUID]*model.Referral),
		ads:         make(map[uuid.UUID]*model.Ad),
		adWatches:   make(map[string]bool),
		withdrawals: make(map[uuid.UUID]*model.Withdrawal),
		admins:      make(map[uuid.UUID]*model.Admin),
		settings:    make(map[string]string),
	}
}

// --- AccountStore ---

func (f *fakeStore) CreateAccount(_ context.Context, account *model.Account) error {
	for _, a := range f.accounts {
		if strings.EqualFold(a.Username, account.Username) || strings.EqualFold(a.Email, account.Email) {
			return repository.ErrAccountExists
		}
	}
	account.ID = uuid.New()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeStore) GetAccount(_ context.Context, id uuid.UUID) (*model.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeStore) GetAccountByUsername(_ context.Context, username string) (*model.Account, error) {
	for _, a := range f.accounts {
		if strings.EqualFold(a.Username, username) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeStore) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeStore) GetAccountByReferralCode(_ context.Context, code string) (*model.Account, error) {
	for _, a := range f.accounts {
		if strings.EqualFold(a.ReferralCode, code) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeStore) UpdateAccountPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) SetAccountOnline(_ context.Context, id uuid.UUID, online bool) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.IsOnline = online
	return nil
}

func (f *fakeStore) SetAccountActivated(_ context.Context, id uuid.UUID, activated bool) (bool, error) {
	account, ok := f.accounts[id]
	if !ok {
		return false, repository.ErrAccountNotFound
	}
	if account.IsActivated == activated {
		return false, nil
	}
	account.IsActivated = activated
	return true, nil
}

func (f *fakeStore) GetAllAccounts(_ context.Context) ([]model.Account, error) {
	accounts := make([]model.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		accounts = append(accounts, *a)
	}
	return accounts, nil
}

func (f *fakeStore) GetOnlineAccounts(_ context.Context) ([]model.Account, error) {
	var accounts []model.Account
	for _, a := range f.accounts {
		if a.IsOnline {
			accounts = append(accounts, *a)
		}
	}
	return accounts, nil
}

// --- ReferralStore ---

func (f *fakeStore) CreateReferral(_ context.Context, referral *model.Referral) error {
	referral.ID = uuid.New()
	referral.CreatedAt = time.Now().UTC()
	f.referrals[referral.ID] = referral
	return nil
}

func (f *fakeStore) GetReferralByReferredID(_ context.Context, referredID uuid.UUID) (*model.Referral, error) {
	for _, r := range f.referrals {
		if r.ReferredID == referredID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repository.ErrReferralNotFound
}

func (f *fakeStore) CreditReferral(_ context.Context, id uuid.UUID) error {
	referral, ok := f.referrals[id]
	if !ok || referral.Status != model.ReferralStatusPending {
		return repository.ErrReferralNotFound
	}
	now := time.Now().UTC()
	referral.Status = model.ReferralStatusCredited
	referral.CreditedAt = &now
	return nil
}

func (f *fakeStore) GetReferredAccounts(_ context.Context, referrerID uuid.UUID) ([]model.Account, error) {
	var accounts []model.Account
	for _, r := range f.referrals {
		if r.ReferrerID == referrerID {
			if a, ok := f.accounts[r.ReferredID]; ok {
				accounts = append(accounts, *a)
			}
		}
	}
	return accounts, nil
}

func (f *fakeStore) GetUplineAccount(_ context.Context, referredID uuid.UUID) (*model.Account, error) {
	for _, r := range f.referrals {
		if r.ReferredID == referredID {
			if a, ok := f.accounts[r.ReferrerID]; ok {
				copied := *a
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrReferralNotFound
}

func (f *fakeStore) CountDownlines(_ context.Context, referrerID uuid.UUID) (int, int, error) {
	var total, activated int
	for _, r := range f.referrals {
		if r.ReferrerID != referrerID {
			continue
		}
		total++
		if a, ok := f.accounts[r.ReferredID]; ok && a.IsActivated {
			activated++
		}
	}
	return total, activated, nil
}

func (f *fakeStore) GetLeaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	for id, a := range f.accounts {
		total, activated, _ := f.CountDownlines(context.Background(), id)
		if activated == 0 {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Username:           a.Username,
			TotalDownlines:     total,
			ActivatedDownlines: activated,
			Earnings:           a.Earnings,
		})
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].ActivatedDownlines > entries[i].ActivatedDownlines {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// --- RewardStore ---

func (f *fakeStore) CreateAd(_ context.Context, ad *model.Ad) error {
	ad.ID = uuid.New()
	ad.CreatedAt = time.Now().UTC()
	f.ads[ad.ID] = ad
	return nil
}

func (f *fakeStore) GetAd(_ context.Context, id uuid.UUID) (*model.Ad, error) {
	ad, ok := f.ads[id]
	if !ok {
		return nil, repository.ErrAdNotFound
	}
	copied := *ad
	return &copied, nil
}

func watchKey(accountID, adID uuid.UUID, day time.Time) string {
	return accountID.String() + "|" + adID.String() + "|" + day.Format("2006-01-02")
}

func (f *fakeStore) HasWatchedAd(_ context.Context, accountID, adID uuid.UUID, day time.Time) (bool, error) {
	return f.adWatches[watchKey(accountID, adID, day)], nil
}

func (f *fakeStore) ClaimAdWatch(ctx context.Context, accountID, adID uuid.UUID, day time.Time, amount float64) (float64, error) {
	key := watchKey(accountID, adID, day)
	if f.adWatches[key] {
		return 0, repository.ErrDuplicateClaim
	}
	if _, ok := f.accounts[accountID]; !ok {
		return 0, repository.ErrAccountNotFound
	}
	f.adWatches[key] = true
	return f.CreditEarnings(ctx, accountID, amount, model.RewardTypeAdWatch, "ad watch reward", &adID)
}

func (f *fakeStore) ClaimLinkView(ctx context.Context, accountID uuid.UUID, dayStart, viewedAt time.Time, amount float64) (float64, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	if account.LastLinkViewAt != nil && !account.LastLinkViewAt.Before(dayStart) {
		return 0, repository.ErrDuplicateClaim
	}
	account.LastLinkViewAt = &viewedAt
	return f.CreditEarnings(ctx, accountID, amount, model.RewardTypeLinkView, "daily link view reward", nil)
}

func (f *fakeStore) CreditEarnings(_ context.Context, accountID uuid.UUID, amount float64, rewardType model.RewardType, description string, referenceID *uuid.UUID) (float64, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	before := account.Earnings
	account.Earnings += amount
	f.rewardEvents = append(f.rewardEvents, model.RewardEvent{
		ID:            uuid.New(),
		AccountID:     accountID,
		Amount:        amount,
		Type:          rewardType,
		Description:   &description,
		ReferenceID:   referenceID,
		BalanceBefore: before,
		BalanceAfter:  account.Earnings,
		CreatedAt:     time.Now().UTC(),
	})
	return account.Earnings, nil
}

func (f *fakeStore) GetRewardEvents(_ context.Context, accountID uuid.UUID, limit, offset int) ([]model.RewardEvent, error) {
	var events []model.RewardEvent
	for i := len(f.rewardEvents) - 1; i >= 0; i-- {
		if f.rewardEvents[i].AccountID == accountID {
			events = append(events, f.rewardEvents[i])
		}
	}
	if offset > len(events) {
		offset = len(events)
	}
	events = events[offset:]
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// --- WithdrawalStore ---

func (f *fakeStore) RequestWithdrawal(ctx context.Context, accountID uuid.UUID, amount float64) (*model.Withdrawal, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	if account.Earnings < amount {
		return nil, repository.ErrInsufficientBalance
	}
	account.Earnings -= amount

	withdrawal := &model.Withdrawal{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      amount,
		Status:      model.WithdrawalStatusPending,
		RequestedAt: time.Now().UTC(),
	}
	f.withdrawals[withdrawal.ID] = withdrawal

	f.rewardEvents = append(f.rewardEvents, model.RewardEvent{
		ID:            uuid.New(),
		AccountID:     accountID,
		Amount:        -amount,
		Type:          model.RewardTypeWithdrawal,
		ReferenceID:   &withdrawal.ID,
		BalanceBefore: account.Earnings + amount,
		BalanceAfter:  account.Earnings,
		CreatedAt:     time.Now().UTC(),
	})

	copied := *withdrawal
	return &copied, nil
}

func (f *fakeStore) MarkWithdrawalPaid(_ context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	withdrawal, ok := f.withdrawals[id]
	if !ok {
		return nil, repository.ErrWithdrawalNotFound
	}
	if withdrawal.Status != model.WithdrawalStatusPending {
		return nil, repository.ErrWithdrawalNotPending
	}
	now := time.Now().UTC()
	withdrawal.Status = model.WithdrawalStatusCompleted
	withdrawal.CompletedAt = &now
	copied := *withdrawal
	return &copied, nil
}

func (f *fakeStore) GetWithdrawal(_ context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	withdrawal, ok := f.withdrawals[id]
	if !ok {
		return nil, repository.ErrWithdrawalNotFound
	}
	copied := *withdrawal
	return &copied, nil
}

func (f *fakeStore) GetAccountWithdrawals(_ context.Context, accountID uuid.UUID) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	for _, w := range f.withdrawals {
		if w.AccountID == accountID {
			withdrawals = append(withdrawals, *w)
		}
	}
	return withdrawals, nil
}

func (f *fakeStore) GetAllWithdrawals(_ context.Context) ([]model.WithdrawalWithAccount, error) {
	var withdrawals []model.WithdrawalWithAccount
	for _, w := range f.withdrawals {
		entry := model.WithdrawalWithAccount{Withdrawal: *w}
		if a, ok := f.accounts[w.AccountID]; ok {
			entry.Username = a.Username
			entry.Phone = a.Phone
		}
		withdrawals = append(withdrawals, entry)
	}
	return withdrawals, nil
}

// --- NotificationStore ---

func (f *fakeStore) CreateNotification(_ context.Context, notification *model.Notification) error {
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now().UTC()
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeStore) BroadcastNotification(_ context.Context, message string) (int, error) {
	for id := range f.accounts {
		f.notifications = append(f.notifications, model.Notification{
			ID:        uuid.New(),
			AccountID: id,
			Message:   message,
			Type:      model.NotificationTypeBroadcast,
			CreatedAt: time.Now().UTC(),
		})
	}
	return len(f.accounts), nil
}

func (f *fakeStore) GetAccountNotifications(_ context.Context, accountID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	for _, n := range f.notifications {
		if n.AccountID == accountID {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

func (f *fakeStore) GetAllNotifications(_ context.Context) ([]model.NotificationWithAccount, error) {
	var notifications []model.NotificationWithAccount
	for _, n := range f.notifications {
		entry := model.NotificationWithAccount{Notification: n}
		if a, ok := f.accounts[n.AccountID]; ok {
			entry.Username = a.Username
		}
		notifications = append(notifications, entry)
	}
	return notifications, nil
}

func (f *fakeStore) TrimOldNotifications(_ context.Context, keep int) (int, error) {
	if len(f.notifications) <= keep {
		return 0, nil
	}
	deleted := len(f.notifications) - keep
	f.notifications = f.notifications[deleted:]
	return deleted, nil
}

func (f *fakeStore) GetNotificationStats(_ context.Context) (*model.NotificationStats, error) {
	stats := &model.NotificationStats{Total: len(f.notifications)}
	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	for _, n := range f.notifications {
		if n.CreatedAt.After(cutoff) {
			stats.Recent++
		} else {
			stats.Old++
		}
	}
	return stats, nil
}

// --- AdminStore ---

func (f *fakeStore) GetAdminByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range f.admins {
		if strings.EqualFold(a.Username, username) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func (f *fakeStore) GetAdminByToken(_ context.Context, token string) (*model.Admin, error) {
	for _, a := range f.admins {
		if a.Token != nil && *a.Token == token {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func (f *fakeStore) SetAdminToken(_ context.Context, id uuid.UUID, token *string) error {
	admin, ok := f.admins[id]
	if !ok {
		return repository.ErrAdminNotFound
	}
	admin.Token = token
	return nil
}

func (f *fakeStore) ListAdmins(_ context.Context) ([]model.Admin, error) {
	admins := make([]model.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		admins = append(admins, *a)
	}
	return admins, nil
}

func (f *fakeStore) LogAdminAction(_ context.Context, adminID uuid.UUID, action string, targetAccountID *uuid.UUID, _ interface{}) error {
	f.adminLogs = append(f.adminLogs, model.AdminLog{
		ID:              uuid.New(),
		AdminID:         adminID,
		Action:          action,
		TargetAccountID: targetAccountID,
		CreatedAt:       time.Now().UTC(),
	})
	return nil
}

func (f *fakeStore) GetAdminLogs(_ context.Context, limit, offset int) ([]model.AdminLog, error) {
	logs := make([]model.AdminLog, len(f.adminLogs))
	copy(logs, f.adminLogs)
	if offset > len(logs) {
		offset = len(logs)
	}
	logs = logs[offset:]
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (f *fakeStore) GetStats(_ context.Context) (*model.Stats, error) {
	stats := &model.Stats{TotalAccounts: len(f.accounts)}
	for _, a := range f.accounts {
		if a.IsActivated {
			stats.ActivatedAccounts++
		}
	}
	stats.UnactivatedAccounts = stats.TotalAccounts - stats.ActivatedAccounts
	stats.TotalWithdrawals = len(f.withdrawals)
	for _, w := range f.withdrawals {
		if w.Status == model.WithdrawalStatusPending {
			stats.PendingWithdrawals++
		}
	}
	rewarded := make(map[uuid.UUID]bool)
	for _, e := range f.rewardEvents {
		if e.Amount > 0 {
			rewarded[e.AccountID] = true
		}
	}
	stats.AccountsWithRewards = len(rewarded)
	return stats, nil
}

func (f *fakeStore) GetSetting(_ context.Context, key string) (string, error) {
	value, ok := f.settings[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}
	return value, nil
}

func (f *fakeStore) SetSetting(_ context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

// mustAdmin seeds an admin directly.
func (f *fakeStore) mustAdmin(username string, role model.AdminRole) *model.Admin {
	admin := &model.Admin{
		ID:        uuid.New(),
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	f.admins[admin.ID] = admin
	return admin
}

// mustAccount seeds an account directly, bypassing signup.
func (f *fakeStore) mustAccount(username string, earnings float64, activated bool) *model.Account {
	account := &model.Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		ReferralCode: username,
		Earnings:     earnings,
		IsActivated:  activated,
		CreatedAt:    time.Now().UTC(),
	}
	f.accounts[account.ID] = account
	return account
}

// mustAd seeds an active ad.
func (f *fakeStore) mustAd(platform string, active bool) *model.Ad {
	ad := &model.Ad{
		ID:        uuid.New(),
		Title:     "test ad",
		Platform:  platform,
		URL:       "https://example.com/ad",
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	f.ads[ad.ID] = ad
	return ad
}
