package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var ErrDiscussionNotFound = errors.New("discussion not found")

const discussionSelect = `
	SELECT d.id, d.book_id, d.title, d.content, d.type, d.is_pinned, d.created_at, d.updated_at,
		b.id AS "book.id", b.title AS "book.title", b.author AS "book.author", b.cover_image AS "book.cover_image",
		(SELECT COUNT(*) FROM comments c WHERE c.discussion_id = d.id) AS comment_count
	FROM discussions d
	JOIN books b ON b.id = d.book_id
`

// ListDiscussions orders pinned discussions first, then newest first.
func (s *PostgresStore) ListDiscussions(ctx context.Context, bookID *uuid.UUID, limit int) ([]models.Discussion, error) {
	discussions := []models.Discussion{}

	query := discussionSelect
	args := []any{}

	if bookID != nil {
		args = append(args, *bookID)
		query += fmt.Sprintf(" WHERE d.book_id = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY d.is_pinned DESC, d.created_at DESC LIMIT $%d", len(args))

	if err := s.DB.SelectContext(ctx, &discussions, query, args...); err != nil {
		return nil, fmt.Errorf("error listing discussions: %w", err)
	}

	return discussions, nil
}

func (s *PostgresStore) GetDiscussion(ctx context.Context, id uuid.UUID) (*models.Discussion, error) {
	var discussion models.Discussion

	if err := s.DB.GetContext(ctx, &discussion, discussionSelect+` WHERE d.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("error getting discussion: %w", err)
	}

	return &discussion, nil
}

func (s *PostgresStore) CreateDiscussion(ctx context.Context, discussion *models.Discussion) (*models.Discussion, error) {
	kind := discussion.Type

	if kind == "" {
		kind = models.DiscussionGeneral
	}

	var id uuid.UUID

	query := `
		INSERT INTO discussions (book_id, title, content, type, is_pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.DB.GetContext(ctx, &id, query, discussion.BookID, discussion.Title, discussion.Content, kind, discussion.IsPinned)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error inserting discussion: %w", err)
	}

	return s.GetDiscussion(ctx, id)
}

func (s *PostgresStore) UpdateDiscussion(ctx context.Context, id uuid.UUID, patch *models.DiscussionPatch) (*models.Discussion, error) {
	set := &updateSet{}

	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Content != nil {
		set.add("content", *patch.Content)
	}
	if patch.Type != nil {
		set.add("type", *patch.Type)
	}
	if patch.IsPinned != nil {
		set.add("is_pinned", *patch.IsPinned)
	}

	if set.empty() {
		return nil, ErrNothingToUpdate
	}

	query, args := set.query("discussions", id, true, "id")

	var updated uuid.UUID

	if err := s.DB.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("error updating discussion: %w", err)
	}

	return s.GetDiscussion(ctx, updated)
}

func (s *PostgresStore) DeleteDiscussion(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM discussions WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting discussion: %w", err)
	}

	return expectAffected(res, ErrDiscussionNotFound)
}
