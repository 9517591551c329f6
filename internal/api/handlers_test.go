package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/config"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

var (
	memberUser = &models.User{ID: uuid.MustParse("6f1c7a52-3f1e-4a8e-9d7c-2b8f0e1a4c11"), Name: "Wanjiru", Email: "wanjiru@example.com", Role: models.RoleMember}
	otherUser  = &models.User{ID: uuid.MustParse("0b9d2e44-7a63-4c1f-8e25-91d3f6a7b802"), Name: "Baraka", Email: "baraka@example.com", Role: models.RoleMember}
	adminUser  = &models.User{ID: uuid.MustParse("c4e8a1f0-5b2d-4e7a-a9c3-7d6e5f4b3a21"), Name: "Njeri", Email: "njeri@example.com", Role: models.RoleAdmin}
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}
func (l *testLogger) Warn(msg string, args ...any)  {}

type testObjectStore struct {
	uploadFileFunc func(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
}

func (s *testObjectStore) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	if s.uploadFileFunc != nil {
		return s.uploadFileFunc(ctx, file, key, contentType)
	}
	return "http://mock-url.com/" + key, nil
}

func newTestApi(t *testing.T, s *testStore) *Api {
	t.Helper()

	sessions, err := auth.NewSessions("test-session-secret", false)
	require.NoError(t, err)

	return &Api{
		router:      chi.NewRouter(),
		logger:      &testLogger{},
		objectStore: &testObjectStore{},
		store:       s,
		sessions:    sessions,
		config:      &config.Config{},
		now:         func() time.Time { return testNow },
	}
}

func withUser(r *http.Request, user *models.User) *http.Request {
	if user == nil {
		return r
	}
	return r.WithContext(auth.WithUser(r.Context(), user))
}

func withURLParams(r *http.Request, kv ...string) *http.Request {
	ctx := chi.NewRouteContext()

	for i := 0; i+1 < len(kv); i += 2 {
		ctx.URLParams.Add(kv[i], kv[i+1])
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, ctx))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(b)
}

func decodeError(t *testing.T, body []byte) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))

	return resp
}

// serveRoutes sends req through the full /api/v1 router, signed in as user when it is not nil.
func serveRoutes(t *testing.T, s *testStore, req *http.Request, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	a := newTestApi(t, s)

	if user != nil {
		rec := httptest.NewRecorder()
		require.NoError(t, a.sessions.SignIn(rec, httptest.NewRequest(http.MethodGet, "/", nil), user.ID))

		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		if s.getUserByIDFunc == nil {
			s.getUserByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.User, error) {
				if id == user.ID {
					return user, nil
				}
				return nil, store.ErrUserNotFound
			}
		}
	}

	a.RegisterRoutes()

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	return rr
}

func ptr[T any](v T) *T {
	return &v
}

type testStore struct {
	createUserFunc           func(ctx context.Context, user *models.User) (*models.User, error)
	getUserByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.User, error)
	getUserByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	upsertOAuthUserFunc      func(ctx context.Context, user *models.User) (*models.User, error)
	listUsersFunc            func(ctx context.Context) ([]models.User, error)
	setUserRoleFunc          func(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	setUserRoleByEmailFunc   func(ctx context.Context, email string, role string) (*models.User, error)
	createBookFunc           func(ctx context.Context, book *models.Book) (*models.Book, error)
	listBooksFunc            func(ctx context.Context, status string, limit int) ([]models.Book, error)
	getBookFunc              func(ctx context.Context, id uuid.UUID) (*models.Book, error)
	getBookDetailFunc        func(ctx context.Context, id uuid.UUID) (*models.Book, error)
	getCurrentBookFunc       func(ctx context.Context) (*models.Book, error)
	updateBookFunc           func(ctx context.Context, id uuid.UUID, patch *models.BookPatch) (*models.Book, error)
	updateBookCoverFunc      func(ctx context.Context, id uuid.UUID, url string) error
	deleteBookFunc           func(ctx context.Context, id uuid.UUID) error
	listWeeklyPlansFunc      func(ctx context.Context, bookID uuid.UUID) ([]models.WeeklyPlan, error)
	getWeeklyPlanFunc        func(ctx context.Context, id uuid.UUID) (*models.WeeklyPlan, error)
	createWeeklyPlanFunc     func(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error)
	updateWeeklyPlanFunc     func(ctx context.Context, id uuid.UUID, patch *models.WeeklyPlanPatch) (*models.WeeklyPlan, error)
	deleteWeeklyPlanFunc     func(ctx context.Context, id uuid.UUID) error
	createPromptFunc         func(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	deletePromptFunc         func(ctx context.Context, id uuid.UUID) error
	listDiscussionsFunc      func(ctx context.Context, bookID *uuid.UUID, limit int) ([]models.Discussion, error)
	getDiscussionFunc        func(ctx context.Context, id uuid.UUID) (*models.Discussion, error)
	createDiscussionFunc     func(ctx context.Context, discussion *models.Discussion) (*models.Discussion, error)
	updateDiscussionFunc     func(ctx context.Context, id uuid.UUID, patch *models.DiscussionPatch) (*models.Discussion, error)
	deleteDiscussionFunc     func(ctx context.Context, id uuid.UUID) error
	listCommentsFunc         func(ctx context.Context, discussionID uuid.UUID) ([]models.Comment, error)
	getCommentFunc           func(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	createCommentFunc        func(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	updateCommentFunc        func(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	deleteCommentFunc        func(ctx context.Context, id uuid.UUID) error
	listLiveSessionsFunc     func(ctx context.Context, filter models.LiveSessionFilter) ([]models.LiveSession, error)
	getLiveSessionFunc       func(ctx context.Context, id uuid.UUID) (*models.LiveSession, error)
	createLiveSessionFunc    func(ctx context.Context, session *models.LiveSession) (*models.LiveSession, error)
	updateLiveSessionFunc    func(ctx context.Context, id uuid.UUID, patch *models.LiveSessionPatch) (*models.LiveSession, error)
	deleteLiveSessionFunc    func(ctx context.Context, id uuid.UUID) error
	listQuotesFunc           func(ctx context.Context, filter models.VisibilityFilter) ([]models.Quote, error)
	getQuoteFunc             func(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	createQuoteFunc          func(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	likeQuoteFunc            func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error)
	deleteQuoteFunc          func(ctx context.Context, id uuid.UUID) error
	listGalleryPostsFunc     func(ctx context.Context, filter models.VisibilityFilter) ([]models.GalleryPost, error)
	getGalleryPostFunc       func(ctx context.Context, id uuid.UUID) (*models.GalleryPost, error)
	createGalleryPostFunc    func(ctx context.Context, post *models.GalleryPost) (*models.GalleryPost, error)
	likeGalleryPostFunc      func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error)
	deleteGalleryPostFunc    func(ctx context.Context, id uuid.UUID) error
	listNewslettersFunc      func(ctx context.Context, status string, limit int) ([]models.Newsletter, error)
	getNewsletterFunc        func(ctx context.Context, id uuid.UUID) (*models.Newsletter, error)
	createNewsletterFunc     func(ctx context.Context, newsletter *models.Newsletter) (*models.Newsletter, error)
	updateNewsletterFunc     func(ctx context.Context, id uuid.UUID, patch *models.NewsletterPatch) (*models.Newsletter, error)
	publishNewsletterFunc    func(ctx context.Context, id uuid.UUID, at time.Time) (*models.Newsletter, error)
	getMonthlySummaryFunc    func(ctx context.Context, bookID uuid.UUID) (*models.MonthlySummary, error)
	upsertMonthlySummaryFunc func(ctx context.Context, summary *models.MonthlySummary) (*models.MonthlySummary, error)
	createReflectionFunc     func(ctx context.Context, reflection *models.Reflection) (*models.Reflection, error)
	getAdminStatsFunc        func(ctx context.Context, now time.Time) (*models.AdminStats, error)
}

func (s *testStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createUserFunc != nil {
		return s.createUserFunc(ctx, user)
	}
	return user, nil
}

func (s *testStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.getUserByIDFunc != nil {
		return s.getUserByIDFunc(ctx, id)
	}
	return &models.User{}, nil
}

func (s *testStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getUserByEmailFunc != nil {
		return s.getUserByEmailFunc(ctx, email)
	}
	return &models.User{}, nil
}

func (s *testStore) UpsertOAuthUser(ctx context.Context, user *models.User) (*models.User, error) {
	if s.upsertOAuthUserFunc != nil {
		return s.upsertOAuthUserFunc(ctx, user)
	}
	return user, nil
}

func (s *testStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if s.listUsersFunc != nil {
		return s.listUsersFunc(ctx)
	}
	return []models.User{}, nil
}

func (s *testStore) SetUserRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	if s.setUserRoleFunc != nil {
		return s.setUserRoleFunc(ctx, id, role)
	}
	return &models.User{}, nil
}

func (s *testStore) SetUserRoleByEmail(ctx context.Context, email string, role string) (*models.User, error) {
	if s.setUserRoleByEmailFunc != nil {
		return s.setUserRoleByEmailFunc(ctx, email, role)
	}
	return &models.User{}, nil
}

func (s *testStore) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if s.createBookFunc != nil {
		return s.createBookFunc(ctx, book)
	}
	return book, nil
}

func (s *testStore) ListBooks(ctx context.Context, status string, limit int) ([]models.Book, error) {
	if s.listBooksFunc != nil {
		return s.listBooksFunc(ctx, status, limit)
	}
	return []models.Book{}, nil
}

func (s *testStore) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	if s.getBookFunc != nil {
		return s.getBookFunc(ctx, id)
	}
	return &models.Book{}, nil
}

func (s *testStore) GetBookDetail(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	if s.getBookDetailFunc != nil {
		return s.getBookDetailFunc(ctx, id)
	}
	return &models.Book{}, nil
}

func (s *testStore) GetCurrentBook(ctx context.Context) (*models.Book, error) {
	if s.getCurrentBookFunc != nil {
		return s.getCurrentBookFunc(ctx)
	}
	return &models.Book{}, nil
}

func (s *testStore) UpdateBook(ctx context.Context, id uuid.UUID, patch *models.BookPatch) (*models.Book, error) {
	if s.updateBookFunc != nil {
		return s.updateBookFunc(ctx, id, patch)
	}
	return &models.Book{}, nil
}

func (s *testStore) UpdateBookCover(ctx context.Context, id uuid.UUID, url string) error {
	if s.updateBookCoverFunc != nil {
		return s.updateBookCoverFunc(ctx, id, url)
	}
	return nil
}

func (s *testStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if s.deleteBookFunc != nil {
		return s.deleteBookFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListWeeklyPlans(ctx context.Context, bookID uuid.UUID) ([]models.WeeklyPlan, error) {
	if s.listWeeklyPlansFunc != nil {
		return s.listWeeklyPlansFunc(ctx, bookID)
	}
	return []models.WeeklyPlan{}, nil
}

func (s *testStore) GetWeeklyPlan(ctx context.Context, id uuid.UUID) (*models.WeeklyPlan, error) {
	if s.getWeeklyPlanFunc != nil {
		return s.getWeeklyPlanFunc(ctx, id)
	}
	return &models.WeeklyPlan{}, nil
}

func (s *testStore) CreateWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error) {
	if s.createWeeklyPlanFunc != nil {
		return s.createWeeklyPlanFunc(ctx, plan)
	}
	return plan, nil
}

func (s *testStore) UpdateWeeklyPlan(ctx context.Context, id uuid.UUID, patch *models.WeeklyPlanPatch) (*models.WeeklyPlan, error) {
	if s.updateWeeklyPlanFunc != nil {
		return s.updateWeeklyPlanFunc(ctx, id, patch)
	}
	return &models.WeeklyPlan{}, nil
}

func (s *testStore) DeleteWeeklyPlan(ctx context.Context, id uuid.UUID) error {
	if s.deleteWeeklyPlanFunc != nil {
		return s.deleteWeeklyPlanFunc(ctx, id)
	}
	return nil
}

func (s *testStore) CreatePrompt(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	if s.createPromptFunc != nil {
		return s.createPromptFunc(ctx, prompt)
	}
	return prompt, nil
}

func (s *testStore) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	if s.deletePromptFunc != nil {
		return s.deletePromptFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListDiscussions(ctx context.Context, bookID *uuid.UUID, limit int) ([]models.Discussion, error) {
	if s.listDiscussionsFunc != nil {
		return s.listDiscussionsFunc(ctx, bookID, limit)
	}
	return []models.Discussion{}, nil
}

func (s *testStore) GetDiscussion(ctx context.Context, id uuid.UUID) (*models.Discussion, error) {
	if s.getDiscussionFunc != nil {
		return s.getDiscussionFunc(ctx, id)
	}
	return &models.Discussion{}, nil
}

func (s *testStore) CreateDiscussion(ctx context.Context, discussion *models.Discussion) (*models.Discussion, error) {
	if s.createDiscussionFunc != nil {
		return s.createDiscussionFunc(ctx, discussion)
	}
	return discussion, nil
}

func (s *testStore) UpdateDiscussion(ctx context.Context, id uuid.UUID, patch *models.DiscussionPatch) (*models.Discussion, error) {
	if s.updateDiscussionFunc != nil {
		return s.updateDiscussionFunc(ctx, id, patch)
	}
	return &models.Discussion{}, nil
}

func (s *testStore) DeleteDiscussion(ctx context.Context, id uuid.UUID) error {
	if s.deleteDiscussionFunc != nil {
		return s.deleteDiscussionFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListComments(ctx context.Context, discussionID uuid.UUID) ([]models.Comment, error) {
	if s.listCommentsFunc != nil {
		return s.listCommentsFunc(ctx, discussionID)
	}
	return []models.Comment{}, nil
}

func (s *testStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	if s.getCommentFunc != nil {
		return s.getCommentFunc(ctx, id)
	}
	return &models.Comment{}, nil
}

func (s *testStore) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if s.createCommentFunc != nil {
		return s.createCommentFunc(ctx, comment)
	}
	return comment, nil
}

func (s *testStore) UpdateComment(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	if s.updateCommentFunc != nil {
		return s.updateCommentFunc(ctx, id, content)
	}
	return &models.Comment{}, nil
}

func (s *testStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if s.deleteCommentFunc != nil {
		return s.deleteCommentFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListLiveSessions(ctx context.Context, filter models.LiveSessionFilter) ([]models.LiveSession, error) {
	if s.listLiveSessionsFunc != nil {
		return s.listLiveSessionsFunc(ctx, filter)
	}
	return []models.LiveSession{}, nil
}

func (s *testStore) GetLiveSession(ctx context.Context, id uuid.UUID) (*models.LiveSession, error) {
	if s.getLiveSessionFunc != nil {
		return s.getLiveSessionFunc(ctx, id)
	}
	return &models.LiveSession{}, nil
}

func (s *testStore) CreateLiveSession(ctx context.Context, session *models.LiveSession) (*models.LiveSession, error) {
	if s.createLiveSessionFunc != nil {
		return s.createLiveSessionFunc(ctx, session)
	}
	return session, nil
}

func (s *testStore) UpdateLiveSession(ctx context.Context, id uuid.UUID, patch *models.LiveSessionPatch) (*models.LiveSession, error) {
	if s.updateLiveSessionFunc != nil {
		return s.updateLiveSessionFunc(ctx, id, patch)
	}
	return &models.LiveSession{}, nil
}

func (s *testStore) DeleteLiveSession(ctx context.Context, id uuid.UUID) error {
	if s.deleteLiveSessionFunc != nil {
		return s.deleteLiveSessionFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListQuotes(ctx context.Context, filter models.VisibilityFilter) ([]models.Quote, error) {
	if s.listQuotesFunc != nil {
		return s.listQuotesFunc(ctx, filter)
	}
	return []models.Quote{}, nil
}

func (s *testStore) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	if s.getQuoteFunc != nil {
		return s.getQuoteFunc(ctx, id)
	}
	return &models.Quote{}, nil
}

func (s *testStore) CreateQuote(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if s.createQuoteFunc != nil {
		return s.createQuoteFunc(ctx, quote)
	}
	return quote, nil
}

func (s *testStore) LikeQuote(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error) {
	if s.likeQuoteFunc != nil {
		return s.likeQuoteFunc(ctx, id, viewerID)
	}
	return 0, nil
}

func (s *testStore) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if s.deleteQuoteFunc != nil {
		return s.deleteQuoteFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListGalleryPosts(ctx context.Context, filter models.VisibilityFilter) ([]models.GalleryPost, error) {
	if s.listGalleryPostsFunc != nil {
		return s.listGalleryPostsFunc(ctx, filter)
	}
	return []models.GalleryPost{}, nil
}

func (s *testStore) GetGalleryPost(ctx context.Context, id uuid.UUID) (*models.GalleryPost, error) {
	if s.getGalleryPostFunc != nil {
		return s.getGalleryPostFunc(ctx, id)
	}
	return &models.GalleryPost{}, nil
}

func (s *testStore) CreateGalleryPost(ctx context.Context, post *models.GalleryPost) (*models.GalleryPost, error) {
	if s.createGalleryPostFunc != nil {
		return s.createGalleryPostFunc(ctx, post)
	}
	return post, nil
}

func (s *testStore) LikeGalleryPost(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error) {
	if s.likeGalleryPostFunc != nil {
		return s.likeGalleryPostFunc(ctx, id, viewerID)
	}
	return 0, nil
}

func (s *testStore) DeleteGalleryPost(ctx context.Context, id uuid.UUID) error {
	if s.deleteGalleryPostFunc != nil {
		return s.deleteGalleryPostFunc(ctx, id)
	}
	return nil
}

func (s *testStore) ListNewsletters(ctx context.Context, status string, limit int) ([]models.Newsletter, error) {
	if s.listNewslettersFunc != nil {
		return s.listNewslettersFunc(ctx, status, limit)
	}
	return []models.Newsletter{}, nil
}

func (s *testStore) GetNewsletter(ctx context.Context, id uuid.UUID) (*models.Newsletter, error) {
	if s.getNewsletterFunc != nil {
		return s.getNewsletterFunc(ctx, id)
	}
	return &models.Newsletter{}, nil
}

func (s *testStore) CreateNewsletter(ctx context.Context, newsletter *models.Newsletter) (*models.Newsletter, error) {
	if s.createNewsletterFunc != nil {
		return s.createNewsletterFunc(ctx, newsletter)
	}
	return newsletter, nil
}

func (s *testStore) UpdateNewsletter(ctx context.Context, id uuid.UUID, patch *models.NewsletterPatch) (*models.Newsletter, error) {
	if s.updateNewsletterFunc != nil {
		return s.updateNewsletterFunc(ctx, id, patch)
	}
	return &models.Newsletter{}, nil
}

func (s *testStore) PublishNewsletter(ctx context.Context, id uuid.UUID, at time.Time) (*models.Newsletter, error) {
	if s.publishNewsletterFunc != nil {
		return s.publishNewsletterFunc(ctx, id, at)
	}
	return &models.Newsletter{}, nil
}

func (s *testStore) GetMonthlySummary(ctx context.Context, bookID uuid.UUID) (*models.MonthlySummary, error) {
	if s.getMonthlySummaryFunc != nil {
		return s.getMonthlySummaryFunc(ctx, bookID)
	}
	return &models.MonthlySummary{}, nil
}

func (s *testStore) UpsertMonthlySummary(ctx context.Context, summary *models.MonthlySummary) (*models.MonthlySummary, error) {
	if s.upsertMonthlySummaryFunc != nil {
		return s.upsertMonthlySummaryFunc(ctx, summary)
	}
	return summary, nil
}

func (s *testStore) CreateReflection(ctx context.Context, reflection *models.Reflection) (*models.Reflection, error) {
	if s.createReflectionFunc != nil {
		return s.createReflectionFunc(ctx, reflection)
	}
	return reflection, nil
}

func (s *testStore) GetAdminStats(ctx context.Context, now time.Time) (*models.AdminStats, error) {
	if s.getAdminStatsFunc != nil {
		return s.getAdminStatsFunc(ctx, now)
	}
	return &models.AdminStats{}, nil
}
