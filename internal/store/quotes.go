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

var ErrQuoteNotFound = errors.New("quote not found")

const quoteSelect = `
	SELECT q.id, q.user_id, q.book_title, q.book_author, q.quote_text, q.page_number, q.note,
		q.is_public, q.likes, q.created_at,
		u.id AS "user.id", u.name AS "user.name", u.image AS "user.image"
	FROM quotes q
	JOIN users u ON u.id = q.user_id
`

// visibilityClause restricts alias's rows to public ones plus the viewer's own.
func visibilityClause(alias string, viewerID *uuid.UUID, args []any) (string, []any) {
	if viewerID == nil {
		return alias + ".is_public", args
	}

	args = append(args, *viewerID)

	return fmt.Sprintf("(%s.is_public OR %s.user_id = $%d)", alias, alias, len(args)), args
}

func (s *PostgresStore) ListQuotes(ctx context.Context, filter models.VisibilityFilter) ([]models.Quote, error) {
	quotes := []models.Quote{}

	var conditions []string
	var args []any

	visible, args := visibilityClause("q", filter.ViewerID, args)
	conditions = append(conditions, visible)

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("q.user_id = $%d", len(args)))
	}

	query := quoteSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY q.created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if err := s.DB.SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, fmt.Errorf("error listing quotes: %w", err)
	}

	return quotes, nil
}

func (s *PostgresStore) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote

	if err := s.DB.GetContext(ctx, &quote, quoteSelect+` WHERE q.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("error getting quote: %w", err)
	}

	return &quote, nil
}

func (s *PostgresStore) CreateQuote(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	var id uuid.UUID

	query := `
		INSERT INTO quotes (user_id, book_title, book_author, quote_text, page_number, note, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := s.DB.GetContext(ctx, &id, query,
		quote.UserID, quote.BookTitle, quote.BookAuthor, quote.QuoteText, quote.PageNumber, quote.Note, quote.IsPublic)

	if err != nil {
		return nil, fmt.Errorf("error inserting quote: %w", err)
	}

	return s.GetQuote(ctx, id)
}

// LikeQuote increments the like count of a quote the viewer can see and returns the new count.
func (s *PostgresStore) LikeQuote(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error) {
	args := []any{id}
	visible, args := visibilityClause("q", viewerID, args)

	query := `UPDATE quotes q SET likes = q.likes + 1 WHERE q.id = $1 AND ` + visible + ` RETURNING q.likes`

	var likes int

	if err := s.DB.GetContext(ctx, &likes, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrQuoteNotFound
		}
		return 0, fmt.Errorf("error liking quote: %w", err)
	}

	return likes, nil
}

func (s *PostgresStore) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting quote: %w", err)
	}

	return expectAffected(res, ErrQuoteNotFound)
}
