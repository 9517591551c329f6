package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/oseayemenre/upepo/internal/models"
)

var ErrNothingToUpdate = errors.New("one field at least is required to update")

type Store interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertOAuthUser(ctx context.Context, user *models.User) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetUserRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	SetUserRoleByEmail(ctx context.Context, email string, role string) (*models.User, error)

	CreateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	ListBooks(ctx context.Context, status string, limit int) ([]models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	GetBookDetail(ctx context.Context, id uuid.UUID) (*models.Book, error)
	GetCurrentBook(ctx context.Context) (*models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, patch *models.BookPatch) (*models.Book, error)
	UpdateBookCover(ctx context.Context, id uuid.UUID, url string) error
	DeleteBook(ctx context.Context, id uuid.UUID) error

	ListWeeklyPlans(ctx context.Context, bookID uuid.UUID) ([]models.WeeklyPlan, error)
	GetWeeklyPlan(ctx context.Context, id uuid.UUID) (*models.WeeklyPlan, error)
	CreateWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error)
	UpdateWeeklyPlan(ctx context.Context, id uuid.UUID, patch *models.WeeklyPlanPatch) (*models.WeeklyPlan, error)
	DeleteWeeklyPlan(ctx context.Context, id uuid.UUID) error
	CreatePrompt(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	DeletePrompt(ctx context.Context, id uuid.UUID) error

	ListDiscussions(ctx context.Context, bookID *uuid.UUID, limit int) ([]models.Discussion, error)
	GetDiscussion(ctx context.Context, id uuid.UUID) (*models.Discussion, error)
	CreateDiscussion(ctx context.Context, discussion *models.Discussion) (*models.Discussion, error)
	UpdateDiscussion(ctx context.Context, id uuid.UUID, patch *models.DiscussionPatch) (*models.Discussion, error)
	DeleteDiscussion(ctx context.Context, id uuid.UUID) error

	ListComments(ctx context.Context, discussionID uuid.UUID) ([]models.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error

	ListLiveSessions(ctx context.Context, filter models.LiveSessionFilter) ([]models.LiveSession, error)
	GetLiveSession(ctx context.Context, id uuid.UUID) (*models.LiveSession, error)
	CreateLiveSession(ctx context.Context, session *models.LiveSession) (*models.LiveSession, error)
	UpdateLiveSession(ctx context.Context, id uuid.UUID, patch *models.LiveSessionPatch) (*models.LiveSession, error)
	DeleteLiveSession(ctx context.Context, id uuid.UUID) error

	ListQuotes(ctx context.Context, filter models.VisibilityFilter) ([]models.Quote, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	CreateQuote(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	LikeQuote(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error)
	DeleteQuote(ctx context.Context, id uuid.UUID) error

	ListGalleryPosts(ctx context.Context, filter models.VisibilityFilter) ([]models.GalleryPost, error)
	GetGalleryPost(ctx context.Context, id uuid.UUID) (*models.GalleryPost, error)
	CreateGalleryPost(ctx context.Context, post *models.GalleryPost) (*models.GalleryPost, error)
	LikeGalleryPost(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (int, error)
	DeleteGalleryPost(ctx context.Context, id uuid.UUID) error

	ListNewsletters(ctx context.Context, status string, limit int) ([]models.Newsletter, error)
	GetNewsletter(ctx context.Context, id uuid.UUID) (*models.Newsletter, error)
	CreateNewsletter(ctx context.Context, newsletter *models.Newsletter) (*models.Newsletter, error)
	UpdateNewsletter(ctx context.Context, id uuid.UUID, patch *models.NewsletterPatch) (*models.Newsletter, error)
	PublishNewsletter(ctx context.Context, id uuid.UUID, at time.Time) (*models.Newsletter, error)

	GetMonthlySummary(ctx context.Context, bookID uuid.UUID) (*models.MonthlySummary, error)
	UpsertMonthlySummary(ctx context.Context, summary *models.MonthlySummary) (*models.MonthlySummary, error)
	CreateReflection(ctx context.Context, reflection *models.Reflection) (*models.Reflection, error)

	GetAdminStats(ctx context.Context, now time.Time) (*models.AdminStats, error)
}

type PostgresStore struct {
	*sqlx.DB
}

func NewPostgresStore(conn string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", conn)

	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging db: %w", err)
	}

	return &PostgresStore{
		DB: db,
	}, nil
}

// executor is satisfied by both *sqlx.DB and *sqlx.Tx.
type executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

func (s *PostgresStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.DB.BeginTxx(ctx, nil)

	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error

	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// updateSet collects "column = $n" clauses for partial updates.
type updateSet struct {
	clauses []string
	args    []any
}

func (u *updateSet) add(column string, value any) {
	u.args = append(u.args, value)
	u.clauses = append(u.clauses, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func (u *updateSet) empty() bool {
	return len(u.clauses) == 0
}

// query builds "UPDATE table SET ..., updated_at = now() WHERE id = $n RETURNING returning".
func (u *updateSet) query(table string, id uuid.UUID, touch bool, returning string) (string, []any) {
	clauses := u.clauses

	if touch {
		clauses = append(clauses, "updated_at = now()")
	}

	args := append(u.args, id)

	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table,
		strings.Join(clauses, ", "),
		len(args),
		returning,
	), args
}

func uuidArray(ids []uuid.UUID) any {
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		out = append(out, id.String())
	}

	return pq.Array(out)
}
