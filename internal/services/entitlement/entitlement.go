// Package entitlement реализует шлюз авторизации: вычисляет текущую
// подписку пользователя и права доступа, которые даёт её тарифный план
// (квота контента, модуль рекламы, дашборд аналитики).
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// Feature — именованная возможность тарифного плана.
type Feature string

const (
	// FeatureAds — доступ к модулю рекламных кампаний.
	FeatureAds Feature = "ads"
	// FeatureDashboard — доступ к дашборду аналитики.
	FeatureDashboard Feature = "dashboard"
)

// ErrFeatureNotAvailable возвращается, когда план пользователя
// не включает запрошенную возможность.
var ErrFeatureNotAvailable = errors.New("feature not available on current plan")

// ErrQuotaExceeded возвращается при исчерпании квоты контента плана.
var ErrQuotaExceeded = errors.New("content quota exceeded")

// ErrPlanNotFound возвращается при смене на несуществующий план.
var ErrPlanNotFound = errors.New("plan not found")

// Длительность периода подписки при смене плана.
const subscriptionPeriod = time.Hour * 24 * 30

const cacheTTL = time.Hour

// SubscriptionRepository определяет методы хранилища для подписок и планов.
type SubscriptionRepository interface {
	// FindActiveSubscriptionWithPlan возвращает активную подписку с планом
	// или repository.ErrNotFound.
	FindActiveSubscriptionWithPlan(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error)
	// ChangeSubscription атомарно деактивирует текущую подписку и создаёт новую.
	ChangeSubscription(ctx context.Context, userID, planID int64, periodStart, periodEnd time.Time) (*models.Subscription, error)
	// GetPlanByID возвращает план по ID или repository.ErrNotFound.
	GetPlanByID(ctx context.Context, id int64) (*models.Plan, error)
	// GetCheapestPlan возвращает самый дешёвый план справочника.
	GetCheapestPlan(ctx context.Context) (*models.Plan, error)
	// ListPlans возвращает справочник планов.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует шлюз авторизации с кешированием подписки и планов.
type Service struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo SubscriptionRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func subscriptionCacheKey(userID int64) string {
	return fmt.Sprintf("subscription:user:%d", userID)
}

const plansCacheKey = "plans:catalog"

// CurrentSubscription возвращает активную подписку пользователя с планом.
//
// Если активной подписки нет, пользователь получает самый дешёвый план
// справочника: доступ по умолчанию не запрещается, а опускается до
// нижнего тарифа. Это явная политика, а не побочный эффект.
func (s *Service) CurrentSubscription(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error) {
	cacheKey := subscriptionCacheKey(userID)
	var cached models.SubscriptionWithPlan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read subscription from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	sub, err := s.repo.FindActiveSubscriptionWithPlan(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		plan, err := s.repo.GetCheapestPlan(ctx)
		if err != nil {
			return nil, err
		}
		sub = &models.SubscriptionWithPlan{
			Subscription: models.Subscription{
				UserID: userID,
				PlanID: plan.ID,
				Status: models.SubscriptionStatusInactive,
			},
			Plan: *plan,
		}
	}

	if err := s.cache.Set(cacheKey, sub, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return sub, nil
}

// HasFeature сообщает, даёт ли подписка запрошенную возможность.
func (s *Service) HasFeature(sub *models.SubscriptionWithPlan, feature Feature) bool {
	switch feature {
	case FeatureAds:
		return sub.Plan.HasAds
	case FeatureDashboard:
		return sub.Plan.HasDashboard
	default:
		return false
	}
}

// RemainingQuota возвращает остаток квоты контента: arts_count минус
// использовано. Значение может быть отрицательным, это означает
// перерасход; операции, расходующие квоту, требуют остаток больше нуля.
func (s *Service) RemainingQuota(sub *models.SubscriptionWithPlan, usedCount int) int {
	return sub.Plan.ArtsCount - usedCount
}

// ChangePlan переводит пользователя на план planID: старая активная
// подписка деактивируется и создаётся новая активная в одной транзакции,
// кеш подписки инвалидируется.
func (s *Service) ChangePlan(ctx context.Context, userID, planID int64) (*models.Subscription, error) {
	if _, err := s.repo.GetPlanByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	sub, err := s.repo.ChangeSubscription(ctx, userID, planID, now, now.Add(subscriptionPeriod))
	if err != nil {
		return nil, err
	}
	s.log.Info("plan changed", slog.Int64("user_id", userID), slog.Int64("plan_id", planID))

	cacheKey := subscriptionCacheKey(userID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return sub, nil
}

// ListPlans возвращает справочник планов, используя кеш.
func (s *Service) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(plansCacheKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", slog.Any("err", err))
	}
	return plans, nil
}
