package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// FindActiveSubscriptionWithPlan возвращает последнюю активную подписку
// пользователя вместе с данными её плана или ErrNotFound.
func (s *Storage) FindActiveSubscriptionWithPlan(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error) {
	const op = "storage.FindActiveSubscriptionWithPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_id, s.plan_id, s.status,
			      s.current_period_start, s.current_period_end, s.created_at,
			      p.id, p.name, p.price, p.arts_count, p.has_ads, p.has_dashboard
			  FROM subscriptions s
			  JOIN plans p ON s.plan_id = p.id
			  WHERE s.user_id = $1 AND s.status = $2
			  ORDER BY s.created_at DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userID, models.SubscriptionStatusActive)

	var result models.SubscriptionWithPlan
	if err := row.Scan(&result.ID, &result.UserID, &result.PlanID, &result.Status,
		&result.CurrentPeriodStart, &result.CurrentPeriodEnd, &result.CreatedAt,
		&result.Plan.ID, &result.Plan.Name, &result.Plan.Price,
		&result.Plan.ArtsCount, &result.Plan.HasAds, &result.Plan.HasDashboard); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// Число повторов смены плана при конкурентном конфликте активных строк.
const changeSubscriptionRetries = 5

// ChangeSubscription в одной транзакции деактивирует текущую активную
// подписку пользователя и создаёт новую активную на план planID.
//
// Деактивация в READ COMMITTED не видит активную строку, вставленную
// конкурентной транзакцией после начала своей. Инвариант "не больше
// одной активной подписки" держит частичный уникальный индекс
// uq_subscriptions_user_active: проигравшая транзакция получает
// unique violation и повторяется, уже видя зафиксированную строку.
func (s *Storage) ChangeSubscription(ctx context.Context, userID, planID int64, periodStart, periodEnd time.Time) (*models.Subscription, error) {
	const op = "storage.ChangeSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sub *models.Subscription
	var err error
	for attempt := 0; attempt < changeSubscriptionRetries; attempt++ {
		sub, err = s.changeSubscriptionTx(ctx, userID, planID, periodStart, periodEnd)
		if err == nil {
			return sub, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			continue
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

func (s *Storage) changeSubscriptionTx(ctx context.Context, userID, planID int64, periodStart, periodEnd time.Time) (*models.Subscription, error) {
	const op = "storage.changeSubscriptionTx"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE subscriptions
			  SET status = $1, updated_at = NOW()
			  WHERE user_id = $2 AND status = $3`
	if _, err = tx.ExecContext(ctx, query,
		models.SubscriptionStatusInactive, userID, models.SubscriptionStatusActive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO subscriptions (user_id, plan_id, status, current_period_start, current_period_end)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, user_id, plan_id, status, current_period_start, current_period_end, created_at`
	var sub models.Subscription
	if err = tx.QueryRowContext(ctx, query,
		userID, planID, models.SubscriptionStatusActive, periodStart, periodEnd).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// CountActiveSubscriptions возвращает число активных подписок пользователя.
func (s *Storage) CountActiveSubscriptions(ctx context.Context, userID int64) (int, error) {
	const op = "storage.CountActiveSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1 AND status = $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userID, models.SubscriptionStatusActive).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
