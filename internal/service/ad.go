package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

// AdStore is satisfied by *repository.Repository.
type AdStore interface {
	CreateAd(ctx context.Context, ad *model.Ad) error
	GetAd(ctx context.Context, id uuid.UUID) (*model.Ad, error)
	UpdateAd(ctx context.Context, ad *model.Ad) error
	DeleteAd(ctx context.Context, id uuid.UUID) error
	GetActiveAds(ctx context.Context) ([]model.Ad, error)
	GetAllAds(ctx context.Context) ([]model.Ad, error)
}

type AdService struct {
	store AdStore
}

func NewAdService(store AdStore) *AdService {
	return &AdService{store: store}
}

func (s *AdService) Create(ctx context.Context, ad *model.Ad) error {
	if ad.Platform == "" {
		ad.Platform = model.PlatformOther
	}
	return s.store.CreateAd(ctx, ad)
}

func (s *AdService) Get(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	return s.store.GetAd(ctx, id)
}

func (s *AdService) Update(ctx context.Context, ad *model.Ad) error {
	return s.store.UpdateAd(ctx, ad)
}

func (s *AdService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteAd(ctx, id)
}

func (s *AdService) ListActive(ctx context.Context) ([]model.Ad, error) {
	return s.store.GetActiveAds(ctx)
}

func (s *AdService) ListAll(ctx context.Context) ([]model.Ad, error) {
	return s.store.GetAllAds(ctx)
}
