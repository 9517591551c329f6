package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oseayemenre/upepo/internal/models"
)

func (s *PostgresStore) GetAdminStats(ctx context.Context, now time.Time) (*models.AdminStats, error) {
	var stats models.AdminStats

	query := `
		SELECT
			(SELECT COUNT(*) FROM books) AS total_books,
			(SELECT COUNT(*) FROM users) AS total_members,
			(SELECT COUNT(*) FROM discussions) AS total_discussions,
			(SELECT COUNT(*) FROM live_sessions WHERE scheduled_at >= $1 AND status IN ('SCHEDULED', 'LIVE')) AS upcoming_sessions
	`

	if err := s.DB.GetContext(ctx, &stats, query, now); err != nil {
		return nil, fmt.Errorf("error getting admin stats: %w", err)
	}

	stats.RecentBooks = []models.Book{}

	recent := bookListQuery + ` ORDER BY b.created_at DESC, b.id DESC LIMIT 5`

	if err := s.DB.SelectContext(ctx, &stats.RecentBooks, recent); err != nil {
		return nil, fmt.Errorf("error getting recent books: %w", err)
	}

	return &stats, nil
}
