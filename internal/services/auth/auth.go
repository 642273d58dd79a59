// Package auth содержит логику бизнес-уровня для регистрации, входа
// и разрешения сессий пользователей.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/marketing-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/password"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Причина (неизвестный email или неверный пароль) наружу не раскрывается.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается, если email уже зарегистрирован.
var ErrEmailTaken = errors.New("email already taken")

// ErrNotAuthenticated возвращается, когда токен сессии отсутствует,
// просрочен, подделан или ссылается на исчезнувшего пользователя.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrPlanNotFound возвращается при регистрации с несуществующим планом.
var ErrPlanNotFound = errors.New("plan not found")

// ErrSegmentNotFound возвращается при регистрации с несуществующим сегментом.
var ErrSegmentNotFound = errors.New("segment not found")

// Длительность первого оплаченного периода подписки.
const initialPeriod = time.Hour * 24 * 30

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет пользователя вместе с начальной подпиской
	// и возвращает его ID.
	CreateUser(ctx context.Context, user models.User, sub models.Subscription) (int64, error)

	// GetUserByEmail возвращает пользователя по email или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID возвращает пользователя по ID или repository.ErrNotFound.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// CatalogRepository описывает справочники, на которые ссылается регистрация.
type CatalogRepository interface {
	// GetPlanByID возвращает план по ID или repository.ErrNotFound.
	GetPlanByID(ctx context.Context, id int64) (*models.Plan, error)

	// GetSegmentByID возвращает сегмент по ID или repository.ErrNotFound.
	GetSegmentByID(ctx context.Context, id int64) (*models.Segment, error)
}

// Service отвечает за регистрацию, вход и разрешение сессионных токенов.
type Service struct {
	users    UserRepository
	catalogs CatalogRepository
	maker    jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, catalogs CatalogRepository, maker jwt.Maker) *Service {
	return &Service{
		users:    users,
		catalogs: catalogs,
		maker:    maker,
	}
}

// Register создает пользователя с хэшированным паролем и начальной
// активной подпиской на план planID, затем выпускает сессионный токен.
//
// Ссылки на справочники проверяются до создания пользователя: иначе
// несуществующий план или сегмент всплыл бы нарушением внешнего ключа.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string, segmentID *int64, planID int64) (string, error) {
	if _, err := s.catalogs.GetPlanByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPlanNotFound
		}
		return "", err
	}
	if segmentID != nil {
		if _, err := s.catalogs.GetSegmentByID(ctx, *segmentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", ErrSegmentNotFound
			}
			return "", err
		}
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		SegmentID:    segmentID,
	}
	sub := models.Subscription{
		PlanID:             planID,
		Status:             models.SubscriptionStatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.Add(initialPeriod),
	}

	userID, err := s.users.CreateUser(ctx, user, sub)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return s.maker.GenerateToken(userID)
}

// Login проверяет пару email/пароль и выпускает сессионный токен.
// Неизвестный email и неверный пароль дают одинаковый результат.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.maker.GenerateToken(user.ID)
}

// ResolveSession разбирает сессионный токен и возвращает пользователя.
//
// Любой невалидный токен (пустой, просроченный, с подменённой нагрузкой),
// а также токен удалённого пользователя дают ErrNotAuthenticated:
// разрешённый токен никогда не фабрикует пользователя.
func (s *Service) ResolveSession(ctx context.Context, rawToken string) (*models.User, error) {
	claims, err := s.maker.ParseToken(rawToken)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}
