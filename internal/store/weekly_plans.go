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
	ErrWeeklyPlanNotFound = errors.New("weekly plan not found")
	ErrWeekNumberTaken    = errors.New("this book already has a plan for that week number")
	ErrPromptNotFound     = errors.New("prompt not found")
)

const weeklyPlanColumns = `id, book_id, week_number, title, focus, chapters, start_date, end_date, created_at, updated_at`

const promptColumns = `id, weekly_plan_id, question, display_order, created_at`

// weeklyPlansByBook groups the plans of the given books by book, week ascending.
// Prompts are attached only when withPrompts is set.
func (s *PostgresStore) weeklyPlansByBook(ctx context.Context, bookIDs []uuid.UUID, withPrompts bool) (map[uuid.UUID][]models.WeeklyPlan, error) {
	var plans []models.WeeklyPlan

	query := `SELECT ` + weeklyPlanColumns + ` FROM weekly_plans WHERE book_id = ANY($1::uuid[]) ORDER BY week_number ASC`

	if err := s.DB.SelectContext(ctx, &plans, query, uuidArray(bookIDs)); err != nil {
		return nil, fmt.Errorf("error getting weekly plans: %w", err)
	}

	if withPrompts && len(plans) > 0 {
		if err := s.attachPrompts(ctx, plans); err != nil {
			return nil, err
		}
	}

	byBook := make(map[uuid.UUID][]models.WeeklyPlan, len(bookIDs))

	for _, p := range plans {
		if p.Prompts == nil {
			p.Prompts = []models.Prompt{}
		}
		byBook[p.BookID] = append(byBook[p.BookID], p)
	}

	return byBook, nil
}

func (s *PostgresStore) attachPrompts(ctx context.Context, plans []models.WeeklyPlan) error {
	ids := make([]uuid.UUID, 0, len(plans))
	index := make(map[uuid.UUID]int, len(plans))

	for i, p := range plans {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	var prompts []models.Prompt

	query := `SELECT ` + promptColumns + ` FROM prompts WHERE weekly_plan_id = ANY($1::uuid[]) ORDER BY display_order ASC, created_at ASC`

	if err := s.DB.SelectContext(ctx, &prompts, query, uuidArray(ids)); err != nil {
		return fmt.Errorf("error getting prompts: %w", err)
	}

	for _, pr := range prompts {
		if i, ok := index[pr.WeeklyPlanID]; ok {
			plans[i].Prompts = append(plans[i].Prompts, pr)
		}
	}

	return nil
}

func (s *PostgresStore) ListWeeklyPlans(ctx context.Context, bookID uuid.UUID) ([]models.WeeklyPlan, error) {
	byBook, err := s.weeklyPlansByBook(ctx, []uuid.UUID{bookID}, true)

	if err != nil {
		return nil, err
	}

	if plans, ok := byBook[bookID]; ok {
		return plans, nil
	}

	return []models.WeeklyPlan{}, nil
}

func (s *PostgresStore) GetWeeklyPlan(ctx context.Context, id uuid.UUID) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan

	if err := s.DB.GetContext(ctx, &plan, `SELECT `+weeklyPlanColumns+` FROM weekly_plans WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWeeklyPlanNotFound
		}
		return nil, fmt.Errorf("error getting weekly plan: %w", err)
	}

	plans := []models.WeeklyPlan{plan}

	if err := s.attachPrompts(ctx, plans); err != nil {
		return nil, err
	}

	if plans[0].Prompts == nil {
		plans[0].Prompts = []models.Prompt{}
	}

	return &plans[0], nil
}

func (s *PostgresStore) CreateWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error) {
	var created models.WeeklyPlan

	query := `
		INSERT INTO weekly_plans (book_id, week_number, title, focus, chapters, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + weeklyPlanColumns

	err := s.DB.GetContext(ctx, &created, query,
		plan.BookID, plan.WeekNumber, plan.Title, plan.Focus, plan.Chapters, plan.StartDate, plan.EndDate)

	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, ErrWeekNumberTaken
		}
		if isForeignKeyViolation(err) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error inserting weekly plan: %w", err)
	}

	created.Prompts = []models.Prompt{}

	return &created, nil
}

func (s *PostgresStore) UpdateWeeklyPlan(ctx context.Context, id uuid.UUID, patch *models.WeeklyPlanPatch) (*models.WeeklyPlan, error) {
	set := &updateSet{}

	if patch.WeekNumber != nil {
		set.add("week_number", *patch.WeekNumber)
	}
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Focus != nil {
		set.add("focus", *patch.Focus)
	}
	if patch.Chapters != nil {
		set.add("chapters", *patch.Chapters)
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

	query, args := set.query("weekly_plans", id, true, weeklyPlanColumns)

	var plan models.WeeklyPlan

	if err := s.DB.GetContext(ctx, &plan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWeeklyPlanNotFound
		}
		if isUniqueViolation(err, "") {
			return nil, ErrWeekNumberTaken
		}
		return nil, fmt.Errorf("error updating weekly plan: %w", err)
	}

	return s.GetWeeklyPlan(ctx, plan.ID)
}

func (s *PostgresStore) DeleteWeeklyPlan(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM weekly_plans WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting weekly plan: %w", err)
	}

	return expectAffected(res, ErrWeeklyPlanNotFound)
}

// CreatePrompt appends the prompt after the plan's last one unless an order is given.
func (s *PostgresStore) CreatePrompt(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	var created models.Prompt

	query := `
		INSERT INTO prompts (weekly_plan_id, question, display_order)
		VALUES ($1, $2, COALESCE($3, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM prompts WHERE weekly_plan_id = $1)))
		RETURNING ` + promptColumns

	var order *int

	if prompt.Order > 0 {
		order = &prompt.Order
	}

	if err := s.DB.GetContext(ctx, &created, query, prompt.WeeklyPlanID, prompt.Question, order); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrWeeklyPlanNotFound
		}
		return nil, fmt.Errorf("error inserting prompt: %w", err)
	}

	return &created, nil
}

func (s *PostgresStore) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM prompts WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting prompt: %w", err)
	}

	return expectAffected(res, ErrPromptNotFound)
}
