package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/oseayemenre/upepo/internal/models"
)

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrParentCommentMismatch = errors.New("parent comment belongs to another discussion")
)

const commentSelect = `
	SELECT c.id, c.discussion_id, c.user_id, c.parent_id, c.content, c.created_at, c.updated_at,
		u.id AS "user.id", u.name AS "user.name", u.image AS "user.image"
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

// ListComments returns every comment of a discussion, flat and oldest first.
func (s *PostgresStore) ListComments(ctx context.Context, discussionID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := commentSelect + ` WHERE c.discussion_id = $1 ORDER BY c.created_at ASC, c.id ASC`

	if err := s.DB.SelectContext(ctx, &comments, query, discussionID); err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	return comments, nil
}

func (s *PostgresStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return getComment(ctx, s.DB, id)
}

func getComment(ctx context.Context, db executor, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment

	if err := db.GetContext(ctx, &comment, commentSelect+` WHERE c.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("error getting comment: %w", err)
	}

	return &comment, nil
}

// CreateComment checks the discussion exists and, for replies, that the parent
// belongs to the same discussion before inserting.
func (s *PostgresStore) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	var created *models.Comment

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool

		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM discussions WHERE id = $1)`, comment.DiscussionID); err != nil {
			return fmt.Errorf("error checking discussion: %w", err)
		}

		if !exists {
			return ErrDiscussionNotFound
		}

		if comment.ParentID != nil {
			var parentDiscussion uuid.UUID

			err := tx.GetContext(ctx, &parentDiscussion, `SELECT discussion_id FROM comments WHERE id = $1`, *comment.ParentID)

			if errors.Is(err, sql.ErrNoRows) {
				return ErrParentCommentNotFound
			}

			if err != nil {
				return fmt.Errorf("error checking parent comment: %w", err)
			}

			if parentDiscussion != comment.DiscussionID {
				return ErrParentCommentMismatch
			}
		}

		var id uuid.UUID

		query := `
			INSERT INTO comments (discussion_id, user_id, parent_id, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id`

		if err := tx.GetContext(ctx, &id, query, comment.DiscussionID, comment.UserID, comment.ParentID, comment.Content); err != nil {
			return fmt.Errorf("error inserting comment: %w", err)
		}

		c, err := getComment(ctx, tx, id)

		if err != nil {
			return err
		}

		created = c
		return nil
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *PostgresStore) UpdateComment(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	res, err := s.DB.ExecContext(ctx, `UPDATE comments SET content = $1, updated_at = now() WHERE id = $2`, content, id)

	if err != nil {
		return nil, fmt.Errorf("error updating comment: %w", err)
	}

	if err := expectAffected(res, ErrCommentNotFound); err != nil {
		return nil, err
	}

	return s.GetComment(ctx, id)
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	return expectAffected(res, ErrCommentNotFound)
}
