// Package content содержит бизнес-логику работы с контентом пользователя.
// Создание контента ограничено квотой arts_count текущего тарифного плана.
package content

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/marketing-hub/internal/events"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
)

// Repository определяет методы хранилища для контента.
type Repository interface {
	CreateContent(ctx context.Context, content models.Content) (int64, error)
	ListContents(ctx context.Context, userID int64) ([]*models.Content, error)
	CountContents(ctx context.Context, userID int64) (int, error)
}

// Entitlements описывает нужную часть шлюза авторизации.
type Entitlements interface {
	CurrentSubscription(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error)
	RemainingQuota(sub *models.SubscriptionWithPlan, usedCount int) int
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(eventType string, userID int64, payload any) error
}

// Service реализует операции с контентом.
type Service struct {
	repo     Repository
	gate     Entitlements
	eventPub Publisher
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, gate Entitlements, eventPub Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		gate:     gate,
		eventPub: eventPub,
		log:      log,
	}
}

// Create создает единицу контента, если квота плана не исчерпана.
// Требуется строго положительный остаток: при used == arts_count
// создание отклоняется с entitlement.ErrQuotaExceeded.
func (s *Service) Create(ctx context.Context, userID int64, req models.DummyContent) (int64, error) {
	sub, err := s.gate.CurrentSubscription(ctx, userID)
	if err != nil {
		return 0, err
	}
	used, err := s.repo.CountContents(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.gate.RemainingQuota(sub, used) <= 0 {
		return 0, entitlement.ErrQuotaExceeded
	}

	id, err := s.repo.CreateContent(ctx, models.Content{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      "draft",
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created new content", slog.Int64("id", id), slog.Int64("user_id", userID))

	if err := s.eventPub.Publish(events.ContentCreated, userID, map[string]any{"content_id": id}); err != nil {
		s.log.Warn("failed to publish content event", sl.Err(err))
	}
	return id, nil
}

// List возвращает контент пользователя вместе с остатком квоты.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Content, int, error) {
	contents, err := s.repo.ListContents(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	sub, err := s.gate.CurrentSubscription(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return contents, s.gate.RemainingQuota(sub, len(contents)), nil
}
