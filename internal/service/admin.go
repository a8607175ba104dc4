package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Philipkwofie/referwin/internal/model"
	"github.com/Philipkwofie/referwin/internal/repository"
)

var ErrMasterRequired = errors.New("master admin required")

// AdminStore is satisfied by *repository.Repository.
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetAdminByToken(ctx context.Context, token string) (*model.Admin, error)
	SetAdminToken(ctx context.Context, id uuid.UUID, token *string) error
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetAccountID *uuid.UUID, details interface{}) error
	GetAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error)
	GetStats(ctx context.Context) (*model.Stats, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetAllAccounts(ctx context.Context) ([]model.Account, error)
	GetOnlineAccounts(ctx context.Context) ([]model.Account, error)
	SetAccountActivated(ctx context.Context, id uuid.UUID, activated bool) (bool, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type AdminService struct {
	store       AdminStore
	referralSvc *ReferralService
	rewardSvc   *RewardService
}

func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

// SetReferralService sets the referral service (to avoid circular deps)
func (s *AdminService) SetReferralService(referralSvc *ReferralService) {
	s.referralSvc = referralSvc
}

// SetRewardService sets the reward service (to avoid circular deps)
func (s *AdminService) SetRewardService(rewardSvc *RewardService) {
	s.rewardSvc = rewardSvc
}

// Login verifies admin credentials and issues a fresh opaque session
// token, replacing any previous one.
func (s *AdminService) Login(ctx context.Context, username, password string) (*model.Admin, string, error) {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, "", err
	}
	if err := s.store.SetAdminToken(ctx, admin.ID, &token); err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

// Logout invalidates the admin's session token.
func (s *AdminService) Logout(ctx context.Context, adminID uuid.UUID) error {
	return s.store.SetAdminToken(ctx, adminID, nil)
}

// ResolveToken maps a bearer token to the admin who owns it.
func (s *AdminService) ResolveToken(ctx context.Context, token string) (*model.Admin, error) {
	if token == "" {
		return nil, repository.ErrAdminNotFound
	}
	return s.store.GetAdminByToken(ctx, token)
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.store.ListAdmins(ctx)
}

func (s *AdminService) GetStats(ctx context.Context) (*model.Stats, error) {
	return s.store.GetStats(ctx)
}

func (s *AdminService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.store.GetAllAccounts(ctx)
}

// OnlineAccounts returns the accounts currently online, split by
// activation.
func (s *AdminService) OnlineAccounts(ctx context.Context) (*model.OnlineStats, error) {
	accounts, err := s.store.GetOnlineAccounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.OnlineStats{
		TotalOnline:    len(accounts),
		OnlineAccounts: accounts,
	}
	for _, a := range accounts {
		if a.IsActivated {
			stats.ActivatedOnline++
		}
	}
	stats.NonActivatedOnline = stats.TotalOnline - stats.ActivatedOnline
	return stats, nil
}

// ActivateAccount flips the activation flag on. The first activation
// credits the upline's pending referral bonus; repeating the call is a
// no-op and does not credit twice.
func (s *AdminService) ActivateAccount(ctx context.Context, adminID, accountID uuid.UUID) error {
	changed, err := s.store.SetAccountActivated(ctx, accountID, true)
	if err != nil {
		return err
	}

	if changed && s.referralSvc != nil {
		if err := s.referralSvc.CreditPending(ctx, accountID); err != nil {
			return err
		}
	}

	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionActivateAccount, &accountID, nil)
	return nil
}

func (s *AdminService) DeactivateAccount(ctx context.Context, adminID, accountID uuid.UUID) error {
	if _, err := s.store.SetAccountActivated(ctx, accountID, false); err != nil {
		return err
	}
	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionDeactivateAccount, &accountID, nil)
	return nil
}

// RewardAccount credits an admin-initiated reward to the named
// account.
func (s *AdminService) RewardAccount(ctx context.Context, adminID uuid.UUID, username string, amount float64) (*model.Account, error) {
	if s.rewardSvc == nil {
		return nil, errors.New("reward service not configured")
	}

	account, err := s.rewardSvc.GrantManual(ctx, username, amount)
	if err != nil {
		return nil, err
	}

	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionRewardAccount, &account.ID, map[string]interface{}{
		"amount": amount,
	})
	return account, nil
}

func (s *AdminService) GetLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.GetAdminLogs(ctx, limit, offset)
}

// GetWhatsAppNumber returns the contact number shown to users, or an
// empty string when unset.
func (s *AdminService) GetWhatsAppNumber(ctx context.Context) (string, error) {
	number, err := s.store.GetSetting(ctx, repository.SettingWhatsAppNumber)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return "", nil
		}
		return "", err
	}
	return number, nil
}

// SetWhatsAppNumber updates the contact number. Master admins only;
// the handler enforces the role, this records who did it.
func (s *AdminService) SetWhatsAppNumber(ctx context.Context, adminID uuid.UUID, number string) error {
	if err := s.store.SetSetting(ctx, repository.SettingWhatsAppNumber, number); err != nil {
		return err
	}
	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionSetWhatsApp, nil, map[string]interface{}{
		"number": number,
	})
	return nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
