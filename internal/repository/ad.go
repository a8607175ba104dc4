package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

var ErrAdNotFound = errors.New("ad not found")

func (r *Repository) GetAd(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	var ad model.Ad
	err := r.db.GetContext(ctx, &ad, "SELECT * FROM ads WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *Repository) CreateAd(ctx context.Context, ad *model.Ad) error {
	query := `
		INSERT INTO ads (title, platform, url, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		ad.Title, ad.Platform, ad.URL, ad.IsActive,
	).Scan(&ad.ID, &ad.CreatedAt)
}

func (r *Repository) UpdateAd(ctx context.Context, ad *model.Ad) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ads SET title = $2, platform = $3, url = $4, is_active = $5
		WHERE id = $1`,
		ad.ID, ad.Title, ad.Platform, ad.URL, ad.IsActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdNotFound
	}
	return nil
}

func (r *Repository) DeleteAd(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ads WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdNotFound
	}
	return nil
}

func (r *Repository) GetActiveAds(ctx context.Context) ([]model.Ad, error) {
	var ads []model.Ad
	err := r.db.SelectContext(ctx, &ads,
		"SELECT * FROM ads WHERE is_active = true ORDER BY created_at DESC")
	return ads, err
}

func (r *Repository) GetAllAds(ctx context.Context) ([]model.Ad, error) {
	var ads []model.Ad
	err := r.db.SelectContext(ctx, &ads, "SELECT * FROM ads ORDER BY created_at DESC")
	return ads, err
}
