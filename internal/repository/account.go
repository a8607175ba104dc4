package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Philipkwofie/referwin/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
)

func (r *Repository) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, "SELECT * FROM accounts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByUsername looks up by username, case-insensitively.
func (r *Repository) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account,
		"SELECT * FROM accounts WHERE LOWER(username) = LOWER($1)", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account,
		"SELECT * FROM accounts WHERE LOWER(email) = LOWER($1)", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetAccountByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account,
		"SELECT * FROM accounts WHERE LOWER(referral_code) = LOWER($1)", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) CreateAccount(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, phone, referral_code, activation_fee)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, earnings, is_activated, is_online, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Phone,
		account.ReferralCode,
		account.ActivationFee,
	).Scan(
		&account.ID,
		&account.Earnings,
		&account.IsActivated,
		&account.IsOnline,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAccountExists
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateAccountPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET password_hash = $2, updated_at = NOW() WHERE id = $1", id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *Repository) SetAccountOnline(ctx context.Context, id uuid.UUID, online bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET is_online = $2, updated_at = NOW() WHERE id = $1", id, online)
	return err
}

// SetAccountActivated flips the activation flag. It reports whether the
// flag actually changed, so a repeated activation does not re-trigger
// referral crediting.
func (r *Repository) SetAccountActivated(ctx context.Context, id uuid.UUID, activated bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET is_activated = $2, updated_at = NOW()
		WHERE id = $1 AND is_activated <> $2`, id, activated)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Either missing or already in the requested state.
		if _, err := r.GetAccount(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *Repository) GetAllAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.SelectContext(ctx, &accounts, "SELECT * FROM accounts ORDER BY created_at DESC")
	return accounts, err
}

func (r *Repository) GetOnlineAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.SelectContext(ctx, &accounts,
		"SELECT * FROM accounts WHERE is_online = true ORDER BY created_at DESC")
	return accounts, err
}
