package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCreateWeeklyPlan(t *testing.T) {
	bookID := uuid.New()
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	existing := []models.WeeklyPlan{
		{ID: uuid.New(), BookID: bookID, WeekNumber: 1, StartDate: start, EndDate: start.AddDate(0, 0, 6)},
	}

	week := func(n int, from string, to string) map[string]any {
		return map[string]any{"weekNumber": n, "title": "Week", "startDate": from, "endDate": to}
	}

	tests := []struct {
		name                 string
		body                 any
		createWeeklyPlanFunc func(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error)
		expectedCode         int
		expectedField        string
	}{
		{
			name:          "should return 400 if week number is missing",
			body:          map[string]any{"title": "Week", "startDate": "2026-01-08", "endDate": "2026-01-14"},
			expectedCode:  http.StatusBadRequest,
			expectedField: "weekNumber",
		},
		{
			name:          "should return 400 if end is before start",
			body:          week(2, "2026-01-14", "2026-01-08"),
			expectedCode:  http.StatusBadRequest,
			expectedField: "endDate",
		},
		{
			name:          "should return 400 if the week runs past the book",
			body:          week(5, "2026-01-29", "2026-02-04"),
			expectedCode:  http.StatusBadRequest,
			expectedField: "endDate",
		},
		{
			name:          "should return 400 if the week overlaps another",
			body:          week(2, "2026-01-07", "2026-01-13"),
			expectedCode:  http.StatusBadRequest,
			expectedField: "startDate",
		},
		{
			name: "should return 409 if the week number is taken",
			body: week(1, "2026-01-08", "2026-01-14"),
			createWeeklyPlanFunc: func(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error) {
				return nil, store.ErrWeekNumberTaken
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "should return 201 for a fitting week",
			body:         week(2, "2026-01-08", "2026-01-14"),
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi(t, &testStore{
				getBookFunc: func(ctx context.Context, id uuid.UUID) (*models.Book, error) {
					return &models.Book{ID: id, StartDate: &start, EndDate: &end}, nil
				},
				listWeeklyPlansFunc: func(ctx context.Context, id uuid.UUID) ([]models.WeeklyPlan, error) {
					return existing, nil
				},
				createWeeklyPlanFunc: tt.createWeeklyPlanFunc,
			})

			req := withUser(withURLParams(httptest.NewRequest(http.MethodPost, "/", jsonBody(t, tt.body)), "bookId", bookID.String()), adminUser)
			rr := httptest.NewRecorder()

			a.HandleCreateWeeklyPlan(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedField != "" {
				resp := decodeError(t, rr.Body.Bytes())
				require.NotEmpty(t, resp.Details)
				assert.Equal(t, tt.expectedField, resp.Details[0].Field)
			}
		})
	}
}

func TestHandleUpdateWeeklyPlanChecksMergedRange(t *testing.T) {
	bookID := uuid.New()
	planID := uuid.New()
	start := time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)

	updated := false

	a := newTestApi(t, &testStore{
		getWeeklyPlanFunc: func(ctx context.Context, id uuid.UUID) (*models.WeeklyPlan, error) {
			return &models.WeeklyPlan{ID: planID, BookID: bookID, WeekNumber: 2, StartDate: start, EndDate: start.AddDate(0, 0, 6)}, nil
		},
		updateWeeklyPlanFunc: func(ctx context.Context, id uuid.UUID, patch *models.WeeklyPlanPatch) (*models.WeeklyPlan, error) {
			updated = true
			return &models.WeeklyPlan{ID: id}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/", jsonBody(t, map[string]any{"endDate": "2026-01-01"}))
	req = withUser(withURLParams(req, "weekId", planID.String()), adminUser)
	rr := httptest.NewRecorder()

	a.HandleUpdateWeeklyPlan(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, updated)
}

func TestHandleCreatePromptAppendsByDefault(t *testing.T) {
	var stored *models.Prompt

	a := newTestApi(t, &testStore{
		createPromptFunc: func(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
			stored = prompt
			return prompt, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(t, map[string]any{"question": "Which habit did you notice?"}))
	req = withUser(withURLParams(req, "weekId", uuid.NewString()), adminUser)
	rr := httptest.NewRecorder()

	a.HandleCreatePrompt(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 0, stored.Order)
}
