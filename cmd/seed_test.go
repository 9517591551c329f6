package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/reading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}
func (l *testLogger) Warn(msg string, args ...any)  {}

type memorySeedStore struct {
	books    []models.Book
	plans    []models.WeeklyPlan
	prompts  []models.Prompt
	sessions []models.LiveSession
}

func (m *memorySeedStore) ListBooks(ctx context.Context, status string, limit int) ([]models.Book, error) {
	return m.books, nil
}

func (m *memorySeedStore) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	b := *book
	b.ID = uuid.New()
	m.books = append(m.books, b)
	return &b, nil
}

func (m *memorySeedStore) CreateWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error) {
	p := *plan
	p.ID = uuid.New()
	m.plans = append(m.plans, p)
	return &p, nil
}

func (m *memorySeedStore) CreatePrompt(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	m.prompts = append(m.prompts, *prompt)
	return prompt, nil
}

func (m *memorySeedStore) CreateLiveSession(ctx context.Context, session *models.LiveSession) (*models.LiveSession, error) {
	m.sessions = append(m.sessions, *session)
	return session, nil
}

func TestSeedCreatesJanuaryBook(t *testing.T) {
	s := &memorySeedStore{}

	require.NoError(t, seed(context.Background(), s, &testLogger{}, januaryBook()))

	require.Len(t, s.books, 1)
	assert.Equal(t, models.BookStatusCurrent, s.books[0].Status)

	require.Len(t, s.plans, 4)

	for _, p := range s.plans {
		assert.Equal(t, s.books[0].ID, p.BookID)
	}

	assert.Len(t, s.prompts, 5)

	require.Len(t, s.sessions, 1)
	assert.Equal(t, s.books[0].ID, s.sessions[0].BookID)
	assert.Equal(t, 90, s.sessions[0].Duration)

	week := reading.CurrentWeek(s.plans, reading.Day(s.sessions[0].ScheduledAt))
	require.NotNil(t, week)
	assert.Equal(t, 4, week.WeekNumber)
}

func TestSeedSkipsExistingBook(t *testing.T) {
	s := &memorySeedStore{books: []models.Book{{ID: uuid.New(), Title: "The Mountain Is You"}}}

	require.NoError(t, seed(context.Background(), s, &testLogger{}, januaryBook()))

	assert.Len(t, s.books, 1)
	assert.Empty(t, s.plans)
	assert.Empty(t, s.sessions)
}

func TestSeedRejectsOverlappingWeeks(t *testing.T) {
	data := januaryBook()
	data.weeks[1].plan.StartDate = data.weeks[0].plan.EndDate

	s := &memorySeedStore{}

	err := seed(context.Background(), s, &testLogger{}, data)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 2")
	assert.Len(t, s.plans, 1)
}
