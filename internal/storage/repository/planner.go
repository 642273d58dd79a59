package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// CreatePlannerEvent вставляет запланированную публикацию и возвращает её ID.
func (s *Storage) CreatePlannerEvent(ctx context.Context, event models.PlannerEvent) (int64, error) {
	const op = "storage.CreatePlannerEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO planner_events (user_id, title, content, platform, start_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		event.UserID, event.Title, event.Content, event.Platform,
		event.StartDate, event.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPlannerEvents возвращает публикации пользователя по дате начала.
func (s *Storage) ListPlannerEvents(ctx context.Context, userID int64) ([]*models.PlannerEvent, error) {
	const op = "storage.ListPlannerEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, title, content, platform, start_date, status, created_at
			  FROM planner_events
			  WHERE user_id = $1
			  ORDER BY start_date ASC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PlannerEvent
	for rows.Next() {
		var e models.PlannerEvent
		if err = rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content,
			&e.Platform, &e.StartDate, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemovePlannerEvent удаляет публикацию пользователя.
// Условие по user_id защищает от удаления чужих записей.
func (s *Storage) RemovePlannerEvent(ctx context.Context, id, userID int64) error {
	const op = "storage.RemovePlannerEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM planner_events WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
