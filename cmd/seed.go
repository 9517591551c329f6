package main

import (
	"context"
	"fmt"
	"time"

	"github.com/oseayemenre/upepo/internal/logger"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/reading"
	"github.com/spf13/cobra"
)

const seedLookupLimit = 100

type seedStore interface {
	ListBooks(ctx context.Context, status string, limit int) ([]models.Book, error)
	CreateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	CreateWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error)
	CreatePrompt(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	CreateLiveSession(ctx context.Context, session *models.LiveSession) (*models.LiveSession, error)
}

type seedWeek struct {
	plan    models.WeeklyPlan
	prompts []string
}

type seedData struct {
	book    models.Book
	weeks   []seedWeek
	session models.LiveSession
}

func day(s string) time.Time {
	t, err := reading.ParseDate(s)

	if err != nil {
		panic(err)
	}

	return t
}

func str(s string) *string {
	return &s
}

func januaryBook() seedData {
	start, end := day("2026-01-01"), day("2026-01-31")

	week := func(n int, title, focus, chapters, from, to string, prompts ...string) seedWeek {
		return seedWeek{
			plan: models.WeeklyPlan{
				WeekNumber: n,
				Title:      title,
				Focus:      str(focus),
				Chapters:   str(chapters),
				StartDate:  day(from),
				EndDate:    day(to),
			},
			prompts: prompts,
		}
	}

	return seedData{
		book: models.Book{
			Title:       "The Mountain Is You",
			Author:      "Brianna Wiest",
			CoverImage:  str("/assets/books/the-mountain-is-you.jpg"),
			Description: "A guide to overcoming self-sabotage. Our biggest obstacles are often the mountains we build within ourselves: the patterns, fears and limiting beliefs that keep us from becoming who we are meant to be.",
			Themes:      "Self-sabotage,Personal growth,Emotional healing,Self-awareness,Mindset",
			Status:      models.BookStatusCurrent,
			StartDate:   &start,
			EndDate:     &end,
		},
		weeks: []seedWeek{
			week(1, "Understanding Self-Sabotage", "Recognizing the patterns that hold us back", "Introduction & Chapters 1-2", "2026-01-01", "2026-01-07",
				"Which pattern from the opening chapters felt most familiar?",
				"What does your mountain look like right now?",
			),
			week(2, "The Root of Our Resistance", "Understanding why we sabotage our own success", "Chapters 3-5", "2026-01-08", "2026-01-14",
				"What are you protecting yourself from?",
			),
			week(3, "Breaking Free", "Practical strategies for change", "Chapters 6-8", "2026-01-15", "2026-01-21",
				"Which strategy will you try this week?",
			),
			week(4, "Building Your Mountain", "Creating lasting transformation", "Chapters 9-10 & Conclusion", "2026-01-22", "2026-01-31",
				"Who are you becoming after this month?",
			),
		},
		session: models.LiveSession{
			Title:       "The Mountain Is You - End of Month Reflection",
			Description: str("A discussion about overcoming self-sabotage and the insights gained this month."),
			ScheduledAt: time.Date(2026, time.January, 30, 19, 0, 0, 0, time.UTC),
			Duration:    models.DefaultSessionDuration,
		},
	}
}

// seed skips the book when one with the same title already exists.
func seed(ctx context.Context, s seedStore, log logger.Logger, data seedData) error {
	existing, err := s.ListBooks(ctx, "", seedLookupLimit)

	if err != nil {
		return err
	}

	for _, b := range existing {
		if b.Title == data.book.Title {
			log.Info("seed", "status", "book already exists", "book", b.Title, "id", b.ID)
			return nil
		}
	}

	book, err := s.CreateBook(ctx, &data.book)

	if err != nil {
		return err
	}

	log.Info("seed", "status", "book created", "book", book.Title, "id", book.ID)

	var created []models.WeeklyPlan

	for _, w := range data.weeks {
		w.plan.BookID = book.ID

		if errs := reading.ValidateWeek(w.plan, book, created); len(errs) > 0 {
			return fmt.Errorf("week %d: %s %s", w.plan.WeekNumber, errs[0].Field, errs[0].Message)
		}

		plan, err := s.CreateWeeklyPlan(ctx, &w.plan)

		if err != nil {
			return fmt.Errorf("error creating week %d: %w", w.plan.WeekNumber, err)
		}

		for _, q := range w.prompts {
			if _, err := s.CreatePrompt(ctx, &models.Prompt{WeeklyPlanID: plan.ID, Question: q}); err != nil {
				return fmt.Errorf("error creating prompt for week %d: %w", plan.WeekNumber, err)
			}
		}

		created = append(created, *plan)
	}

	log.Info("seed", "status", "weekly plans created", "weeks", len(created))

	data.session.BookID = book.ID

	if _, err := s.CreateLiveSession(ctx, &data.session); err != nil {
		return err
	}

	log.Info("seed", "status", "live session scheduled", "at", data.session.ScheduledAt)
	return nil
}

func SeedCommand(ctx context.Context, envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "create the January 2026 book with its reading plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(*envFile, "")

			if err != nil {
				return err
			}

			defer d.close()

			return seed(ctx, d.store, d.logger, januaryBook())
		},
	}
}
