// Package planner содержит бизнес-логику календаря публикаций.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/marketing-hub/internal/events"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// Repository определяет методы хранилища для записей планировщика.
type Repository interface {
	CreatePlannerEvent(ctx context.Context, event models.PlannerEvent) (int64, error)
	ListPlannerEvents(ctx context.Context, userID int64) ([]*models.PlannerEvent, error)
	RemovePlannerEvent(ctx context.Context, id, userID int64) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(eventType string, userID int64, payload any) error
}

// Service реализует операции планировщика.
type Service struct {
	repo     Repository
	eventPub Publisher
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, eventPub Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventPub: eventPub,
		log:      log,
	}
}

// Create планирует публикацию и возвращает её ID.
func (s *Service) Create(ctx context.Context, userID int64, req models.DummyPlannerEvent) (int64, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}

	id, err := s.repo.CreatePlannerEvent(ctx, models.PlannerEvent{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Platform:  req.Platform,
		StartDate: startDate,
		Status:    "pending",
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("scheduled new post", slog.Int64("id", id), slog.Int64("user_id", userID))

	if err := s.eventPub.Publish(events.PostScheduled, userID, map[string]any{"post_id": id}); err != nil {
		s.log.Warn("failed to publish planner event", sl.Err(err))
	}
	return id, nil
}

// List возвращает публикации пользователя по дате начала.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.PlannerEvent, error) {
	return s.repo.ListPlannerEvents(ctx, userID)
}

// Remove удаляет публикацию пользователя.
func (s *Service) Remove(ctx context.Context, userID, postID int64) error {
	return s.repo.RemovePlannerEvent(ctx, postID, userID)
}
