package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var ErrSummaryNotFound = errors.New("monthly summary not found")

const summaryColumns = `id, book_id, content, key_lessons, is_published, created_at, updated_at`

const reflectionSelect = `
	SELECT r.id, r.summary_id, r.user_id, r.content, r.is_public, r.created_at,
		u.id AS "user.id", u.name AS "user.name", u.image AS "user.image"
	FROM reflections r
	JOIN users u ON u.id = r.user_id
`

// GetMonthlySummary returns a book's summary with its ten most recent public reflections.
func (s *PostgresStore) GetMonthlySummary(ctx context.Context, bookID uuid.UUID) (*models.MonthlySummary, error) {
	var summary models.MonthlySummary

	if err := s.DB.GetContext(ctx, &summary, `SELECT `+summaryColumns+` FROM monthly_summaries WHERE book_id = $1`, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("error getting monthly summary: %w", err)
	}

	summary.Reflections = []models.Reflection{}

	query := reflectionSelect + ` WHERE r.summary_id = $1 AND r.is_public ORDER BY r.created_at DESC LIMIT 10`

	if err := s.DB.SelectContext(ctx, &summary.Reflections, query, summary.ID); err != nil {
		return nil, fmt.Errorf("error getting reflections: %w", err)
	}

	return &summary, nil
}

func (s *PostgresStore) UpsertMonthlySummary(ctx context.Context, summary *models.MonthlySummary) (*models.MonthlySummary, error) {
	var out models.MonthlySummary

	query := `
		INSERT INTO monthly_summaries (book_id, content, key_lessons, is_published)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (book_id) DO UPDATE
		SET content = EXCLUDED.content, key_lessons = EXCLUDED.key_lessons,
			is_published = EXCLUDED.is_published, updated_at = now()
		RETURNING ` + summaryColumns

	err := s.DB.GetContext(ctx, &out, query, summary.BookID, summary.Content, summary.KeyLessons, summary.IsPublished)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error upserting monthly summary: %w", err)
	}

	out.Reflections = []models.Reflection{}

	return &out, nil
}

func (s *PostgresStore) CreateReflection(ctx context.Context, reflection *models.Reflection) (*models.Reflection, error) {
	var id uuid.UUID

	query := `INSERT INTO reflections (summary_id, user_id, content, is_public) VALUES ($1, $2, $3, $4) RETURNING id`

	err := s.DB.GetContext(ctx, &id, query, reflection.SummaryID, reflection.UserID, reflection.Content, reflection.IsPublic)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("error inserting reflection: %w", err)
	}

	var created models.Reflection

	if err := s.DB.GetContext(ctx, &created, reflectionSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, fmt.Errorf("error getting reflection: %w", err)
	}

	return &created, nil
}
