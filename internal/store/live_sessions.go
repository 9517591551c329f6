package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var (
	ErrLiveSessionNotFound = errors.New("live session not found")
	ErrLiveSessionExists   = errors.New("this book already has a live session")
)

const liveSessionColumns = `s.id, s.book_id, s.title, s.description, s.scheduled_at, s.duration, s.status,
	s.meeting_link, s.recording_link, s.video_url, s.video_thumbnail, s.summary, s.created_at, s.updated_at`

const liveSessionSelect = `
	SELECT ` + liveSessionColumns + `,
		b.id AS "book.id", b.title AS "book.title", b.author AS "book.author", b.cover_image AS "book.cover_image"
	FROM live_sessions s
	JOIN books b ON b.id = s.book_id
`

func (s *PostgresStore) liveSessionsByBook(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]*models.LiveSession, error) {
	var sessions []models.LiveSession

	query := `SELECT ` + liveSessionColumns + ` FROM live_sessions s WHERE s.book_id = ANY($1::uuid[])`

	if err := s.DB.SelectContext(ctx, &sessions, query, uuidArray(bookIDs)); err != nil {
		return nil, fmt.Errorf("error getting live sessions: %w", err)
	}

	byBook := make(map[uuid.UUID]*models.LiveSession, len(sessions))

	for i := range sessions {
		byBook[sessions[i].BookID] = &sessions[i]
	}

	return byBook, nil
}

// ListLiveSessions applies at most one of the upcoming, past or recorded filters,
// checked in that order.
func (s *PostgresStore) ListLiveSessions(ctx context.Context, filter models.LiveSessionFilter) ([]models.LiveSession, error) {
	sessions := []models.LiveSession{}

	query := liveSessionSelect
	args := []any{}

	switch {
	case filter.Upcoming:
		args = append(args, filter.Now)
		query += ` WHERE s.scheduled_at >= $1 AND s.status IN ('SCHEDULED', 'LIVE') ORDER BY s.scheduled_at ASC`
	case filter.Past:
		args = append(args, filter.Now)
		query += ` WHERE s.scheduled_at < $1 ORDER BY s.scheduled_at DESC`
	case filter.Recorded:
		query += ` WHERE s.video_url IS NOT NULL ORDER BY s.scheduled_at DESC`
	default:
		query += ` ORDER BY s.scheduled_at DESC`
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if err := s.DB.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("error listing live sessions: %w", err)
	}

	return sessions, nil
}

func (s *PostgresStore) GetLiveSession(ctx context.Context, id uuid.UUID) (*models.LiveSession, error) {
	var session models.LiveSession

	if err := s.DB.GetContext(ctx, &session, liveSessionSelect+` WHERE s.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLiveSessionNotFound
		}
		return nil, fmt.Errorf("error getting live session: %w", err)
	}

	return &session, nil
}

func (s *PostgresStore) CreateLiveSession(ctx context.Context, session *models.LiveSession) (*models.LiveSession, error) {
	duration := session.Duration

	if duration == 0 {
		duration = models.DefaultSessionDuration
	}

	var id uuid.UUID

	query := `
		INSERT INTO live_sessions (book_id, title, description, scheduled_at, duration, status, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := s.DB.GetContext(ctx, &id, query,
		session.BookID, session.Title, session.Description, session.ScheduledAt, duration, models.SessionScheduled, session.MeetingLink)

	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, ErrLiveSessionExists
		}
		if isForeignKeyViolation(err) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error inserting live session: %w", err)
	}

	return s.GetLiveSession(ctx, id)
}

func (s *PostgresStore) UpdateLiveSession(ctx context.Context, id uuid.UUID, patch *models.LiveSessionPatch) (*models.LiveSession, error) {
	set := &updateSet{}

	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.ScheduledAt != nil {
		set.add("scheduled_at", *patch.ScheduledAt)
	}
	if patch.Duration != nil {
		set.add("duration", *patch.Duration)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.MeetingLink != nil {
		set.add("meeting_link", *patch.MeetingLink)
	}
	if patch.RecordingLink != nil {
		set.add("recording_link", *patch.RecordingLink)
	}
	if patch.VideoURL != nil {
		set.add("video_url", *patch.VideoURL)
	}
	if patch.VideoThumbnail != nil {
		set.add("video_thumbnail", *patch.VideoThumbnail)
	}
	if patch.Summary != nil {
		set.add("summary", *patch.Summary)
	}

	if set.empty() {
		return nil, ErrNothingToUpdate
	}

	query, args := set.query("live_sessions", id, true, "id")

	var updated uuid.UUID

	if err := s.DB.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLiveSessionNotFound
		}
		return nil, fmt.Errorf("error updating live session: %w", err)
	}

	return s.GetLiveSession(ctx, updated)
}

func (s *PostgresStore) DeleteLiveSession(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM live_sessions WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting live session: %w", err)
	}

	return expectAffected(res, ErrLiveSessionNotFound)
}
