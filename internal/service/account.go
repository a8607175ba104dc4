package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Philipkwofie/referwin/internal/config"
	"github.com/Philipkwofie/referwin/internal/model"
	"github.com/Philipkwofie/referwin/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("incorrect current password")
)

// AccountStore is the account persistence the service needs. It is
// satisfied by *repository.Repository.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateAccountPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetAccountOnline(ctx context.Context, id uuid.UUID, online bool) error
}

type AccountService struct {
	store       AccountStore
	rewards     config.RewardConfig
	referralSvc *ReferralService
}

func NewAccountService(store AccountStore, rewards config.RewardConfig) *AccountService {
	return &AccountService{store: store, rewards: rewards}
}

// SetReferralService sets the referral service (to avoid circular deps)
func (s *AccountService) SetReferralService(referralSvc *ReferralService) {
	s.referralSvc = referralSvc
}

type SignupParams struct {
	Username     string
	Email        string
	Password     string
	Phone        *string
	ReferralCode string
}

// Signup creates the account and, when a referral code resolves to an
// existing account, attaches the referral edge. An unresolvable code
// is a silent no-op, not an error.
func (s *AccountService) Signup(ctx context.Context, params SignupParams) (*model.Account, error) {
	if _, err := s.store.GetAccountByUsername(ctx, params.Username); err == nil {
		return nil, repository.ErrAccountExists
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, err
	}
	if _, err := s.store.GetAccountByEmail(ctx, params.Email); err == nil {
		return nil, repository.ErrAccountExists
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:      params.Username,
		Email:         params.Email,
		PasswordHash:  string(hash),
		Phone:         params.Phone,
		ReferralCode:  params.Username, // referral code defaults to the username
		ActivationFee: s.rewards.ActivationFee,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	if params.ReferralCode != "" && s.referralSvc != nil {
		if err := s.referralSvc.Attach(ctx, params.ReferralCode, account.ID); err != nil {
			return nil, err
		}
	}

	return account, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*model.Account, error) {
	account, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.store.SetAccountOnline(ctx, account.ID, true); err != nil {
		return nil, err
	}
	account.IsOnline = true

	return account, nil
}

func (s *AccountService) Logout(ctx context.Context, id uuid.UUID) error {
	return s.store.SetAccountOnline(ctx, id, false)
}

func (s *AccountService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.UpdateAccountPassword(ctx, id, string(hash))
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// Dashboard assembles the account summary with the downline split. The
// referral link is only shown once the account is activated.
func (s *AccountService) Dashboard(ctx context.Context, id uuid.UUID) (*model.Dashboard, error) {
	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	downlines, err := s.referralSvc.ReferredAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	dashboard := &model.Dashboard{
		Username:       account.Username,
		IsActivated:    account.IsActivated,
		ActivationFee:  account.ActivationFee,
		Earnings:       account.Earnings,
		TotalDownlines: len(downlines),
		LastLinkViewAt: account.LastLinkViewAt,
	}
	if account.IsActivated {
		dashboard.ReferralCode = account.ReferralCode
	}
	for _, d := range downlines {
		if d.IsActivated {
			dashboard.ActivatedDownlines = append(dashboard.ActivatedDownlines, d)
		} else {
			dashboard.PendingDownlines = append(dashboard.PendingDownlines, d)
		}
	}

	return dashboard, nil
}
