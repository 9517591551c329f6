package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var ErrNewsletterNotFound = errors.New("newsletter not found")

const newsletterColumns = `id, title, subject, content, featured, member_spotlight, top_quotes, upcoming_events,
	status, published_at, created_at, updated_at`

// ListNewsletters orders published issues by publication date, drafts by creation.
func (s *PostgresStore) ListNewsletters(ctx context.Context, status string, limit int) ([]models.Newsletter, error) {
	newsletters := []models.Newsletter{}

	query := `SELECT ` + newsletterColumns + ` FROM newsletters WHERE status = $1
		ORDER BY published_at DESC NULLS LAST, created_at DESC LIMIT $2`

	if err := s.DB.SelectContext(ctx, &newsletters, query, status, limit); err != nil {
		return nil, fmt.Errorf("error listing newsletters: %w", err)
	}

	return newsletters, nil
}

func (s *PostgresStore) GetNewsletter(ctx context.Context, id uuid.UUID) (*models.Newsletter, error) {
	var newsletter models.Newsletter

	if err := s.DB.GetContext(ctx, &newsletter, `SELECT `+newsletterColumns+` FROM newsletters WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsletterNotFound
		}
		return nil, fmt.Errorf("error getting newsletter: %w", err)
	}

	return &newsletter, nil
}

func (s *PostgresStore) CreateNewsletter(ctx context.Context, n *models.Newsletter) (*models.Newsletter, error) {
	var created models.Newsletter

	query := `
		INSERT INTO newsletters (title, subject, content, featured, member_spotlight, top_quotes, upcoming_events, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + newsletterColumns

	err := s.DB.GetContext(ctx, &created, query,
		n.Title, n.Subject, n.Content, n.Featured, n.MemberSpotlight, n.TopQuotes, n.UpcomingEvents, models.NewsletterDraft)

	if err != nil {
		return nil, fmt.Errorf("error inserting newsletter: %w", err)
	}

	return &created, nil
}

func (s *PostgresStore) UpdateNewsletter(ctx context.Context, id uuid.UUID, patch *models.NewsletterPatch) (*models.Newsletter, error) {
	set := &updateSet{}

	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Subject != nil {
		set.add("subject", *patch.Subject)
	}
	if patch.Content != nil {
		set.add("content", *patch.Content)
	}
	if patch.Featured != nil {
		set.add("featured", *patch.Featured)
	}
	if patch.MemberSpotlight != nil {
		set.add("member_spotlight", *patch.MemberSpotlight)
	}
	if patch.TopQuotes != nil {
		set.add("top_quotes", *patch.TopQuotes)
	}
	if patch.UpcomingEvents != nil {
		set.add("upcoming_events", *patch.UpcomingEvents)
	}

	if set.empty() {
		return nil, ErrNothingToUpdate
	}

	query, args := set.query("newsletters", id, true, newsletterColumns)

	var newsletter models.Newsletter

	if err := s.DB.GetContext(ctx, &newsletter, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsletterNotFound
		}
		return nil, fmt.Errorf("error updating newsletter: %w", err)
	}

	return &newsletter, nil
}

// PublishNewsletter keeps the first publication date when an issue is published twice.
func (s *PostgresStore) PublishNewsletter(ctx context.Context, id uuid.UUID, at time.Time) (*models.Newsletter, error) {
	var newsletter models.Newsletter

	query := `
		UPDATE newsletters
		SET status = $1, published_at = COALESCE(published_at, $2), updated_at = now()
		WHERE id = $3
		RETURNING ` + newsletterColumns

	if err := s.DB.GetContext(ctx, &newsletter, query, models.NewsletterPublished, at, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsletterNotFound
		}
		return nil, fmt.Errorf("error publishing newsletter: %w", err)
	}

	return &newsletter, nil
}
