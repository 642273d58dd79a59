// Package account содержит бизнес-логику настроек учётной записи:
// профиль, смена пароля и настройки уведомлений.
package account

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/marketing-hub/internal/lib/password"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// ErrWrongPassword возвращается, когда текущий пароль не подходит.
var ErrWrongPassword = errors.New("current password is incorrect")

// ErrEmailTaken возвращается, если новый email уже занят.
var ErrEmailTaken = errors.New("email already taken")

// Repository определяет методы хранилища для настроек учётной записи.
type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id int64, name, email string, segmentID *int64) error
	UpdatePasswordHash(ctx context.Context, id int64, newHash string) error
	UpsertNotificationSettings(ctx context.Context, settings models.NotificationSettings) error
	ListSegments(ctx context.Context) ([]*models.Segment, error)
}

// Service реализует операции над учётной записью.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// UpdateProfile обновляет имя, email и сегмент пользователя.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name, email string, segmentID *int64) error {
	if err := s.repo.UpdateUserProfile(ctx, userID, name, email, segmentID); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdatePassword проверяет текущий пароль и сохраняет хэш нового.
func (s *Service) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return ErrWrongPassword
	}
	newHash, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, userID, newHash)
}

// UpdateNotificationSettings сохраняет настройки уведомлений пользователя.
func (s *Service) UpdateNotificationSettings(ctx context.Context, settings models.NotificationSettings) error {
	return s.repo.UpsertNotificationSettings(ctx, settings)
}

// ListSegments возвращает справочник сегментов рынка.
func (s *Service) ListSegments(ctx context.Context) ([]*models.Segment, error) {
	return s.repo.ListSegments(ctx)
}
