package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/model"
)

var ErrLinkPostNotFound = errors.New("link post not found")

func (r *Repository) CreateLinkPost(ctx context.Context, post *model.LinkPost) error {
	query := `
		INSERT INTO link_posts (day, platform, link, auto_post)
		VALUES ($1, $2, $3, $4)
		RETURNING id, posted, created_at`

	return r.db.QueryRowContext(ctx, query,
		post.Day, post.Platform, post.Link, post.AutoPost,
	).Scan(&post.ID, &post.Posted, &post.CreatedAt)
}

func (r *Repository) GetLinkPostByDay(ctx context.Context, day string) (*model.LinkPost, error) {
	var post model.LinkPost
	err := r.db.GetContext(ctx, &post, "SELECT * FROM link_posts WHERE day = $1", day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *Repository) GetLinkPosts(ctx context.Context) ([]model.LinkPost, error) {
	var posts []model.LinkPost
	err := r.db.SelectContext(ctx, &posts, "SELECT * FROM link_posts ORDER BY created_at DESC")
	return posts, err
}

func (r *Repository) UpdateLinkPost(ctx context.Context, post *model.LinkPost) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE link_posts SET day = $2, platform = $3, link = $4, auto_post = $5, posted = $6, posted_at = $7
		WHERE id = $1`,
		post.ID, post.Day, post.Platform, post.Link, post.AutoPost, post.Posted, post.PostedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLinkPostNotFound
	}
	return nil
}

func (r *Repository) DeleteLinkPost(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM link_posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLinkPostNotFound
	}
	return nil
}
