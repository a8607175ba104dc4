package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

// LinkPostStore is satisfied by *repository.Repository.
type LinkPostStore interface {
	CreateLinkPost(ctx context.Context, post *model.LinkPost) error
	GetLinkPostByDay(ctx context.Context, day string) (*model.LinkPost, error)
	GetLinkPosts(ctx context.Context) ([]model.LinkPost, error)
	UpdateLinkPost(ctx context.Context, post *model.LinkPost) error
	DeleteLinkPost(ctx context.Context, id uuid.UUID) error
}

type LinkPostService struct {
	store LinkPostStore
}

func NewLinkPostService(store LinkPostStore) *LinkPostService {
	return &LinkPostService{store: store}
}

func (s *LinkPostService) Create(ctx context.Context, post *model.LinkPost) error {
	post.Day = strings.ToLower(post.Day)
	if post.Platform == "" {
		post.Platform = model.PlatformOther
	}
	return s.store.CreateLinkPost(ctx, post)
}

// Today returns the link post scheduled for the current UTC weekday.
func (s *LinkPostService) Today(ctx context.Context, now time.Time) (*model.LinkPost, error) {
	day := strings.ToLower(now.UTC().Weekday().String())
	return s.store.GetLinkPostByDay(ctx, day)
}

func (s *LinkPostService) List(ctx context.Context) ([]model.LinkPost, error) {
	return s.store.GetLinkPosts(ctx)
}

func (s *LinkPostService) Update(ctx context.Context, post *model.LinkPost) error {
	post.Day = strings.ToLower(post.Day)
	return s.store.UpdateLinkPost(ctx, post)
}

func (s *LinkPostService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteLinkPost(ctx, id)
}
