package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}
func (l *testLogger) Warn(msg string, args ...any)  {}

type testSource struct {
	current     *models.Book
	books       map[uuid.UUID]*models.Book
	upcoming    []models.Book
	limit       int
	discussions map[uuid.UUID]*models.Discussion
	comments    []models.Comment
	stats       *models.AdminStats
}

func (s *testSource) GetCurrentBook(ctx context.Context) (*models.Book, error) {
	if s.current == nil {
		return nil, store.ErrBookNotFound
	}
	return s.current, nil
}

func (s *testSource) ListUpcomingBooks(ctx context.Context, limit int) ([]models.Book, error) {
	s.limit = limit
	if len(s.upcoming) > limit {
		return s.upcoming[:limit], nil
	}
	return s.upcoming, nil
}

func (s *testSource) GetBookDetail(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	return book, nil
}

func (s *testSource) GetDiscussion(ctx context.Context, id uuid.UUID) (*models.Discussion, error) {
	d, ok := s.discussions[id]
	if !ok {
		return nil, store.ErrDiscussionNotFound
	}
	return d, nil
}

func (s *testSource) ListComments(ctx context.Context, id uuid.UUID) ([]models.Comment, error) {
	return s.comments, nil
}

func (s *testSource) GetAdminStats(ctx context.Context, now time.Time) (*models.AdminStats, error) {
	return s.stats, nil
}

func serve(t *testing.T, src *testSource, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	p, err := New(src, &testLogger{})
	require.NoError(t, err)

	p.now = func() time.Time { return time.Date(2026, time.January, 10, 18, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	p.Routes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}

func januaryBook() *models.Book {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	return &models.Book{
		ID:          uuid.New(),
		Title:       "The Mountain Is You",
		Author:      "Brianna Wiest",
		Description: "Transforming self-sabotage into self-mastery",
		Themes:      "healing,growth",
		Status:      models.BookStatusCurrent,
		WeeklyPlans: []models.WeeklyPlan{
			{ID: uuid.New(), WeekNumber: 1, Title: "The Mountain", StartDate: start, EndDate: start.AddDate(0, 0, 6)},
			{
				ID: uuid.New(), WeekNumber: 2, Title: "Self-Sabotage", StartDate: start.AddDate(0, 0, 7), EndDate: start.AddDate(0, 0, 13),
				Prompts: []models.Prompt{{Question: "What are you protecting yourself from?", Order: 1}},
			},
		},
	}
}

func TestHomeShowsCurrentWeek(t *testing.T) {
	book := januaryBook()

	src := &testSource{
		current:  book,
		books:    map[uuid.UUID]*models.Book{book.ID: book},
		upcoming: []models.Book{{ID: uuid.New(), Title: "Atomic Habits", Author: "James Clear"}},
	}

	rr := serve(t, src, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "The Mountain Is You")
	assert.Contains(t, body, "Week 2: Self-Sabotage")
	assert.Contains(t, body, "What are you protecting yourself from?")
	assert.Contains(t, body, "Atomic Habits")
}

func TestHomeListsNextThreeUpcoming(t *testing.T) {
	date := func(month time.Month) *time.Time {
		d := time.Date(2026, month, 1, 0, 0, 0, 0, time.UTC)
		return &d
	}

	src := &testSource{
		upcoming: []models.Book{
			{ID: uuid.New(), Title: "Atomic Habits", Author: "James Clear", StartDate: date(time.February)},
			{ID: uuid.New(), Title: "Deep Work", Author: "Cal Newport", StartDate: date(time.March)},
			{ID: uuid.New(), Title: "Four Thousand Weeks", Author: "Oliver Burkeman", StartDate: date(time.April)},
			{ID: uuid.New(), Title: "Untitled Pick", Author: "Unknown"},
		},
	}

	rr := serve(t, src, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, src.limit)

	body := rr.Body.String()
	feb := strings.Index(body, "Atomic Habits")
	mar := strings.Index(body, "Deep Work")
	apr := strings.Index(body, "Four Thousand Weeks")

	require.NotEqual(t, -1, feb)
	assert.Less(t, feb, mar)
	assert.Less(t, mar, apr)
	assert.Contains(t, body, "Feb 1")
	assert.NotContains(t, body, "Untitled Pick")
}

func TestHomeWithoutCurrentBook(t *testing.T) {
	rr := serve(t, &testSource{}, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No book this month yet")
}

func TestBookPageEscapesContent(t *testing.T) {
	book := januaryBook()
	book.Description = "<script>alert(1)</script>"

	rr := serve(t, &testSource{books: map[uuid.UUID]*models.Book{book.ID: book}}, httptest.NewRequest(http.MethodGet, "/books/"+book.ID.String(), nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rr.Body.String(), `class="week current"`)
}

func TestBookPageNotFound(t *testing.T) {
	rr := serve(t, &testSource{}, httptest.NewRequest(http.MethodGet, "/books/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, &testSource{}, httptest.NewRequest(http.MethodGet, "/books/not-an-id", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDiscussionPageShowsReplies(t *testing.T) {
	id := uuid.New()
	root := models.Comment{ID: uuid.New(), DiscussionID: id, Content: "Week one hit hard", User: models.UserSummary{Name: "Wanjiru"}}
	reply := models.Comment{ID: uuid.New(), DiscussionID: id, ParentID: &root.ID, Content: "Same here", User: models.UserSummary{Name: "Baraka"}, CreatedAt: time.Now()}

	src := &testSource{
		discussions: map[uuid.UUID]*models.Discussion{id: {ID: id, Title: "Week one check-in"}},
		comments:    []models.Comment{root, reply},
	}

	rr := serve(t, src, httptest.NewRequest(http.MethodGet, "/discussions/"+id.String(), nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "2 comments")
	assert.Contains(t, body, "Week one hit hard")
	assert.Contains(t, body, `class="reply"`)
	assert.Contains(t, body, "Same here")
}

func TestDiscussionPageCountsShownComments(t *testing.T) {
	id := uuid.New()
	root := models.Comment{ID: uuid.New(), DiscussionID: id, Content: "Week one hit hard", User: models.UserSummary{Name: "Wanjiru"}}
	reply := models.Comment{ID: uuid.New(), DiscussionID: id, ParentID: &root.ID, Content: "Same here", User: models.UserSummary{Name: "Baraka"}, CreatedAt: time.Now()}
	nested := models.Comment{ID: uuid.New(), DiscussionID: id, ParentID: &reply.ID, Content: "Chapter three especially", User: models.UserSummary{Name: "Achieng"}, CreatedAt: time.Now().Add(time.Minute)}

	src := &testSource{
		discussions: map[uuid.UUID]*models.Discussion{id: {ID: id, Title: "Week one check-in"}},
		comments:    []models.Comment{root, reply, nested},
	}

	rr := serve(t, src, httptest.NewRequest(http.MethodGet, "/discussions/"+id.String(), nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "2 comments")
	assert.NotContains(t, body, "Chapter three especially")
}

func TestAdminPage(t *testing.T) {
	src := &testSource{stats: &models.AdminStats{TotalBooks: 4, RecentBooks: []models.Book{}}}

	tests := []struct {
		name         string
		user         *models.User
		expectedCode int
	}{
		{name: "should redirect anonymous browsers", expectedCode: http.StatusFound},
		{name: "should redirect members", user: &models.User{Role: models.RoleMember}, expectedCode: http.StatusFound},
		{name: "should render for admins", user: &models.User{Name: "Njeri", Role: models.RoleAdmin}, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)

			if tt.user != nil {
				req = req.WithContext(auth.WithUser(req.Context(), tt.user))
			}

			rr := serve(t, src, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusFound {
				assert.Equal(t, "/", rr.Header().Get("Location"))
			}
		})
	}
}
