// Package inbox содержит бизнес-логику ящика входящих сообщений.
package inbox

import (
	"context"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// Repository определяет методы хранилища для сообщений.
type Repository interface {
	ListMessages(ctx context.Context, userID int64) ([]*models.Message, error)
	ArchiveMessage(ctx context.Context, id, userID int64) error
}

// Service реализует операции с входящими сообщениями.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает сообщения пользователя.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Message, error) {
	return s.repo.ListMessages(ctx, userID)
}

// Archive помечает сообщение пользователя архивированным.
// Чужое или несуществующее сообщение даёт repository.ErrNotFound.
func (s *Service) Archive(ctx context.Context, userID, messageID int64) error {
	return s.repo.ArchiveMessage(ctx, messageID, userID)
}
