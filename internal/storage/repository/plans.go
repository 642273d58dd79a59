package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// ListPlans возвращает справочник тарифных планов по возрастанию цены.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, arts_count, has_ads, has_dashboard
			  FROM plans
			  ORDER BY price ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		if err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.ArtsCount,
			&p.HasAds, &p.HasDashboard); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlanByID возвращает тарифный план по ID или ErrNotFound.
func (s *Storage) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "storage.GetPlanByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, arts_count, has_ads, has_dashboard
			  FROM plans
			  WHERE id = $1`
	var p models.Plan
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price,
		&p.ArtsCount, &p.HasAds, &p.HasDashboard); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetCheapestPlan возвращает самый дешёвый план справочника.
// Используется как план по умолчанию при отсутствии активной подписки.
func (s *Storage) GetCheapestPlan(ctx context.Context) (*models.Plan, error) {
	const op = "storage.GetCheapestPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, arts_count, has_ads, has_dashboard
			  FROM plans
			  ORDER BY price ASC
			  LIMIT 1`
	var p models.Plan
	if err := s.DB.QueryRowContext(ctx, query).Scan(&p.ID, &p.Name, &p.Price,
		&p.ArtsCount, &p.HasAds, &p.HasDashboard); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetSegmentByID возвращает сегмент рынка по его ID или ErrNotFound.
func (s *Storage) GetSegmentByID(ctx context.Context, id int64) (*models.Segment, error) {
	const op = "storage.GetSegmentByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name FROM segments WHERE id = $1`
	var seg models.Segment
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&seg.ID, &seg.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &seg, nil
}

// ListSegments возвращает справочник сегментов рынка по алфавиту.
func (s *Storage) ListSegments(ctx context.Context) ([]*models.Segment, error) {
	const op = "storage.ListSegments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name FROM segments ORDER BY name ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Segment
	for rows.Next() {
		var seg models.Segment
		if err = rows.Scan(&seg.ID, &seg.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &seg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
