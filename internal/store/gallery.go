package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var ErrGalleryPostNotFound = errors.New("gallery post not found")

const galleryPostSelect = `
	SELECT g.id, g.user_id, g.title, g.description, g.image_url, g.category, g.is_public, g.likes, g.created_at,
		u.id AS "user.id", u.name AS "user.name", u.image AS "user.image"
	FROM gallery_posts g
	JOIN users u ON u.id = g.user_id
`

func (s *PostgresStore) ListGalleryPosts(ctx context.Context, filter models.VisibilityFilter) ([]models.GalleryPost, error) {
	posts := []models.GalleryPost{}

	var conditions []string
	var args []any

	visible, args := visibilityClause("g", filter.ViewerID, args)
	conditions = append(conditions, visible)

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("g.category = $%d", len(args)))
	}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("g.user_id = $%d", len(args)))
	}

	query := galleryPostSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY g.created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if err := s.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("error listing gallery posts: %w", err)
	}

	return posts, nil
}

func (s *PostgresStore) GetGalleryPost(ctx context.Context, id uuid.UUID) (*models.GalleryPost, error) {
	var post models.GalleryPost

	if err := s.DB.GetContext(ctx, &post, galleryPostSelect+` WHERE g.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryPostNotFound
		}
		return nil, fmt.Errorf("error getting gallery post: %w", err)
	}

	return &post, nil
}

func (s *PostgresStore) CreateGalleryPost(ctx context.Context, post *models.GalleryPost) (*models.GalleryPost, error) {
	var id uuid.UUID

	query := `
		INSERT INTO gallery_posts (user_id, title, description, image_url, category, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := s.DB.GetContext(ctx, &id, query,
		post.UserID, post.Title, post.Description, post.ImageURL, post.Category, post.IsPublic)

	if err != nil {
		return nil, fmt.Errorf("error inserting gallery post: %w", err)
	}

	return s.GetGalleryPost(ctx, id)
}

func (s *PostgresStore) LikeGalleryPost(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error) {
	args := []any{id}
	visible, args := visibilityClause("g", viewerID, args)

	query := `UPDATE gallery_posts g SET likes = g.likes + 1 WHERE g.id = $1 AND ` + visible + ` RETURNING g.likes`

	var likes int

	if err := s.DB.GetContext(ctx, &likes, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrGalleryPostNotFound
		}
		return 0, fmt.Errorf("error liking gallery post: %w", err)
	}

	return likes, nil
}

func (s *PostgresStore) DeleteGalleryPost(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM gallery_posts WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting gallery post: %w", err)
	}

	return expectAffected(res, ErrGalleryPostNotFound)
}
