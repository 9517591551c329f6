package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var ErrBookNotFound = errors.New("book not found")

const bookColumns = `id, title, author, cover_image, description, themes, status, start_date, end_date, created_at, updated_at`

const bookListQuery = `
	SELECT b.id, b.title, b.author, b.cover_image, b.description, b.themes, b.status,
		b.start_date, b.end_date, b.created_at, b.updated_at,
		(SELECT COUNT(*) FROM discussions d WHERE d.book_id = b.id) AS discussion_count
	FROM books b
`

func (s *PostgresStore) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	status := book.Status

	if status == "" {
		status = models.BookStatusUpcoming
	}

	var created models.Book

	query := `
		INSERT INTO books (title, author, cover_image, description, themes, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns

	err := s.DB.GetContext(ctx, &created, query,
		book.Title, book.Author, book.CoverImage, book.Description, book.Themes, status, book.StartDate, book.EndDate)

	if err != nil {
		return nil, fmt.Errorf("error inserting book: %w", err)
	}

	return &created, nil
}

// ListBooks returns books newest first, each with its weekly plans and live session.
func (s *PostgresStore) ListBooks(ctx context.Context, status string, limit int) ([]models.Book, error) {
	books := []models.Book{}

	query := bookListQuery
	args := []any{}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE b.status = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY b.created_at DESC, b.id DESC LIMIT $%d", len(args))

	if err := s.DB.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}

	return s.attachSchedules(ctx, books)
}

// ListUpcomingBooks returns the next upcoming books by start date, undated ones last.
func (s *PostgresStore) ListUpcomingBooks(ctx context.Context, limit int) ([]models.Book, error) {
	books := []models.Book{}

	query := bookListQuery + ` WHERE b.status = $1 ORDER BY b.start_date ASC NULLS LAST, b.created_at DESC, b.id DESC LIMIT $2`

	if err := s.DB.SelectContext(ctx, &books, query, models.BookStatusUpcoming, limit); err != nil {
		return nil, fmt.Errorf("error listing upcoming books: %w", err)
	}

	return s.attachSchedules(ctx, books)
}

// attachSchedules fills in weekly plans and live sessions for a page of books.
func (s *PostgresStore) attachSchedules(ctx context.Context, books []models.Book) ([]models.Book, error) {
	if len(books) == 0 {
		return books, nil
	}

	ids := make([]uuid.UUID, 0, len(books))

	for _, b := range books {
		ids = append(ids, b.ID)
	}

	plans, err := s.weeklyPlansByBook(ctx, ids, false)

	if err != nil {
		return nil, err
	}

	sessions, err := s.liveSessionsByBook(ctx, ids)

	if err != nil {
		return nil, err
	}

	for i := range books {
		books[i].WeeklyPlans = plans[books[i].ID]
		books[i].LiveSession = sessions[books[i].ID]
	}

	return books, nil
}

func (s *PostgresStore) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book

	if err := s.DB.GetContext(ctx, &book, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error getting book: %w", err)
	}

	return &book, nil
}

// GetBookDetail loads a book with plans and prompts, discussions, live session and
// monthly summary with its most recent public reflections.
func (s *PostgresStore) GetBookDetail(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.GetBook(ctx, id)

	if err != nil {
		return nil, err
	}

	plans, err := s.weeklyPlansByBook(ctx, []uuid.UUID{id}, true)

	if err != nil {
		return nil, err
	}

	book.WeeklyPlans = plans[id]

	if book.WeeklyPlans == nil {
		book.WeeklyPlans = []models.WeeklyPlan{}
	}

	discussions, err := s.ListDiscussions(ctx, &id, 100)

	if err != nil {
		return nil, err
	}

	book.Discussions = discussions
	book.DiscussionCount = len(discussions)

	sessions, err := s.liveSessionsByBook(ctx, []uuid.UUID{id})

	if err != nil {
		return nil, err
	}

	book.LiveSession = sessions[id]

	summary, err := s.GetMonthlySummary(ctx, id)

	if err != nil && !errors.Is(err, ErrSummaryNotFound) {
		return nil, err
	}

	book.MonthlySummary = summary

	return book, nil
}

// GetCurrentBook returns the most recently created CURRENT book with its plans,
// prompts and live session. Ties on creation time resolve by id.
func (s *PostgresStore) GetCurrentBook(ctx context.Context) (*models.Book, error) {
	var book models.Book

	query := bookListQuery + ` WHERE b.status = $1 ORDER BY b.created_at DESC, b.id DESC LIMIT 1`

	if err := s.DB.GetContext(ctx, &book, query, models.BookStatusCurrent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error getting current book: %w", err)
	}

	plans, err := s.weeklyPlansByBook(ctx, []uuid.UUID{book.ID}, true)

	if err != nil {
		return nil, err
	}

	book.WeeklyPlans = plans[book.ID]

	sessions, err := s.liveSessionsByBook(ctx, []uuid.UUID{book.ID})

	if err != nil {
		return nil, err
	}

	book.LiveSession = sessions[book.ID]

	return &book, nil
}

func (s *PostgresStore) UpdateBook(ctx context.Context, id uuid.UUID, patch *models.BookPatch) (*models.Book, error) {
	set := &updateSet{}

	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Author != nil {
		set.add("author", *patch.Author)
	}
	if patch.CoverImage != nil {
		set.add("cover_image", *patch.CoverImage)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Themes != nil {
		set.add("themes", *patch.Themes)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.StartDate != nil {
		set.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set.add("end_date", *patch.EndDate)
	}

	if set.empty() {
		return nil, ErrNothingToUpdate
	}

	query, args := set.query("books", id, true, bookColumns)

	var book models.Book

	if err := s.DB.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	return &book, nil
}

func (s *PostgresStore) UpdateBookCover(ctx context.Context, id uuid.UUID, url string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE books SET cover_image = $1, updated_at = now() WHERE id = $2`, url, id)

	if err != nil {
		return fmt.Errorf("error updating book cover: %w", err)
	}

	return expectAffected(res, ErrBookNotFound)
}

func (s *PostgresStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	return expectAffected(res, ErrBookNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()

	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
