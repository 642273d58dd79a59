package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// CreateCampaign вставляет новую рекламную кампанию и возвращает её ID.
// Кампания создаётся в статусе draft без метрик.
func (s *Storage) CreateCampaign(ctx context.Context, campaign models.AdCampaign) (int64, error) {
	const op = "storage.CreateCampaign"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO ad_campaigns (user_id, name, platform, budget, start_date, end_date, status, metrics)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		campaign.UserID, campaign.Name, campaign.Platform, campaign.Budget,
		campaign.StartDate, campaign.EndDate, models.CampaignStatusDraft).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCampaigns возвращает кампании пользователя от новых к старым.
func (s *Storage) ListCampaigns(ctx context.Context, userID int64) ([]*models.AdCampaign, error) {
	const op = "storage.ListCampaigns"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, name, platform, budget, start_date, end_date, status, metrics, created_at
			  FROM ad_campaigns
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdCampaign
	for rows.Next() {
		var c models.AdCampaign
		if err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Platform, &c.Budget,
			&c.StartDate, &c.EndDate, &c.Status, &c.Metrics, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCampaignStatus обновляет статус кампании пользователя.
// Условие по user_id гарантирует, что чужую кампанию изменить нельзя:
// отсутствие строки даёт ErrNotFound.
func (s *Storage) UpdateCampaignStatus(ctx context.Context, id, userID int64, status string) (*models.AdCampaign, error) {
	const op = "storage.UpdateCampaignStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE ad_campaigns
			  SET status = $1
			  WHERE id = $2 AND user_id = $3
			  RETURNING id, user_id, name, platform, budget, start_date, end_date, status, created_at`
	var c models.AdCampaign
	if err := s.DB.QueryRowContext(ctx, query, status, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Platform, &c.Budget,
		&c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
