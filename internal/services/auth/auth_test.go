package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/marketing-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/password"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/auth"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User, sub models.Subscription) (int64, error) {
	args := m.Called(ctx, user, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для CatalogRepository
type CatalogRepoMock struct {
	mock.Mock
}

func (m *CatalogRepoMock) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *CatalogRepoMock) GetSegmentByID(ctx context.Context, id int64) (*models.Segment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Segment), args.Error(1)
}

func newMaker() *customjwt.MakerImpl {
	return customjwt.NewMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	segmentID := int64(3)

	tests := []struct {
		name       string
		segmentID  *int64
		setupMocks func(r *UserRepoMock, c *CatalogRepoMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			setupMocks: func(r *UserRepoMock, c *CatalogRepoMock) {
				c.On("GetPlanByID", mock.Anything, int64(1)).
					Return(&models.Plan{ID: 1, Name: "Start"}, nil).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Name == "Tester" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123"
				}), mock.MatchedBy(func(sub models.Subscription) bool {
					return sub.PlanID == 1 &&
						sub.Status == models.SubscriptionStatusActive &&
						sub.CurrentPeriodEnd.After(sub.CurrentPeriodStart)
				})).Return(int64(7), nil).Once()
			},
		},
		{
			name:      "successful registration with segment",
			segmentID: &segmentID,
			setupMocks: func(r *UserRepoMock, c *CatalogRepoMock) {
				c.On("GetPlanByID", mock.Anything, int64(1)).
					Return(&models.Plan{ID: 1, Name: "Start"}, nil).Once()
				c.On("GetSegmentByID", mock.Anything, segmentID).
					Return(&models.Segment{ID: segmentID, Name: "E-commerce"}, nil).Once()
				r.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).
					Return(int64(7), nil).Once()
			},
		},
		{
			name: "unknown plan",
			setupMocks: func(r *UserRepoMock, c *CatalogRepoMock) {
				c.On("GetPlanByID", mock.Anything, int64(1)).
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrPlanNotFound,
		},
		{
			name:      "unknown segment",
			segmentID: &segmentID,
			setupMocks: func(r *UserRepoMock, c *CatalogRepoMock) {
				c.On("GetPlanByID", mock.Anything, int64(1)).
					Return(&models.Plan{ID: 1, Name: "Start"}, nil).Once()
				c.On("GetSegmentByID", mock.Anything, segmentID).
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrSegmentNotFound,
		},
		{
			name: "email already taken",
			setupMocks: func(r *UserRepoMock, c *CatalogRepoMock) {
				c.On("GetPlanByID", mock.Anything, int64(1)).
					Return(&models.Plan{ID: 1, Name: "Start"}, nil).Once()
				r.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).
					Return(int64(0), repository.ErrEmailTaken).Once()
			},
			wantErr: auth.ErrEmailTaken,
		},
		{
			name: "repository error",
			setupMocks: func(r *UserRepoMock, c *CatalogRepoMock) {
				c.On("GetPlanByID", mock.Anything, int64(1)).
					Return(&models.Plan{ID: 1, Name: "Start"}, nil).Once()
				r.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).
					Return(int64(0), errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			catalogs := new(CatalogRepoMock)
			tt.setupMocks(repo, catalogs)
			svc := auth.New(repo, catalogs, newMaker())

			token, err := svc.Register(context.Background(), "Tester", "test@example.com", "password123", tt.segmentID, 1)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			repo.AssertExpectations(t)
			catalogs.AssertExpectations(t)
			if errors.Is(tt.wantErr, auth.ErrPlanNotFound) || errors.Is(tt.wantErr, auth.ErrSegmentNotFound) {
				repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	user := &models.User{ID: 7, Email: "test@example.com", PasswordHash: hash}

	tests := []struct {
		name       string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
			},
		},
		{
			name:     "wrong password",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := auth.New(repo, new(CatalogRepoMock), newMaker())

			token, err := svc.Login(context.Background(), "test@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveSession(t *testing.T) {
	maker := newMaker()
	user := &models.User{ID: 7, Email: "test@example.com"}

	validToken, err := maker.GenerateToken(user.ID)
	require.NoError(t, err)

	expiredToken, err := customjwt.NewMaker("test-secret", -time.Minute).GenerateToken(user.ID)
	require.NoError(t, err)

	foreignToken, err := customjwt.NewMaker("other-secret", time.Hour).GenerateToken(user.ID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:  "valid session",
			token: validToken,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()
			},
		},
		{
			name:       "empty token",
			token:      "",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    auth.ErrNotAuthenticated,
		},
		{
			name:       "expired token",
			token:      expiredToken,
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    auth.ErrNotAuthenticated,
		},
		{
			name:       "token signed with another secret",
			token:      foreignToken,
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    auth.ErrNotAuthenticated,
		},
		{
			name:  "user vanished",
			token: validToken,
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByID", mock.Anything, user.ID).
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := auth.New(repo, new(CatalogRepoMock), maker)

			got, err := svc.ResolveSession(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)
			}

			repo.AssertExpectations(t)
		})
	}
}
