// Package campaign содержит бизнес-логику рекламных кампаний.
// Доступ к модулю целиком закрыт возможностью ads тарифного плана,
// проверка выполняется middleware до вызова сервиса.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/marketing-hub/internal/events"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// ErrInvalidDates возвращается, когда дата окончания не позже даты начала.
var ErrInvalidDates = errors.New("end date must be after start date")

// ErrInvalidStatus возвращается при неизвестном целевом статусе кампании.
var ErrInvalidStatus = errors.New("invalid campaign status")

// Repository определяет методы хранилища для кампаний.
type Repository interface {
	CreateCampaign(ctx context.Context, campaign models.AdCampaign) (int64, error)
	ListCampaigns(ctx context.Context, userID int64) ([]*models.AdCampaign, error)
	UpdateCampaignStatus(ctx context.Context, id, userID int64, status string) (*models.AdCampaign, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(eventType string, userID int64, payload any) error
}

// Service реализует операции с кампаниями.
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

// Create создает кампанию в статусе draft и возвращает её ID.
func (s *Service) Create(ctx context.Context, userID int64, req models.DummyCampaign) (int64, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if !endDate.After(startDate) {
		return 0, ErrInvalidDates
	}

	id, err := s.repo.CreateCampaign(ctx, models.AdCampaign{
		UserID:    userID,
		Name:      req.Name,
		Platform:  req.Platform,
		Budget:    req.Budget,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("created new campaign", slog.Int64("id", id), slog.Int64("user_id", userID))
	return id, nil
}

// List возвращает кампании пользователя.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.AdCampaign, error) {
	return s.repo.ListCampaigns(ctx, userID)
}

// UpdateStatus переводит кампанию пользователя в новый статус.
// Чужая или несуществующая кампания даёт repository.ErrNotFound.
func (s *Service) UpdateStatus(ctx context.Context, userID, campaignID int64, status string) (*models.AdCampaign, error) {
	switch status {
	case models.CampaignStatusDraft, models.CampaignStatusActive,
		models.CampaignStatusPaused, models.CampaignStatusCompleted:
	default:
		return nil, ErrInvalidStatus
	}

	campaign, err := s.repo.UpdateCampaignStatus(ctx, campaignID, userID, status)
	if err != nil {
		return nil, err
	}

	if err := s.eventPub.Publish(events.CampaignStatusChanged, userID, map[string]any{
		"campaign_id": campaignID,
		"status":      status,
	}); err != nil {
		s.log.Warn("failed to publish campaign event", sl.Err(err))
	}
	return campaign, nil
}
