package content_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/content"
	"github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateContent(ctx context.Context, c models.Content) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListContents(ctx context.Context, userID int64) ([]*models.Content, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Content), args.Error(1)
}

func (m *RepoMock) CountContents(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// Мок для Entitlements
type GateMock struct {
	mock.Mock
}

func (m *GateMock) CurrentSubscription(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithPlan), args.Error(1)
}

func (m *GateMock) RemainingQuota(sub *models.SubscriptionWithPlan, usedCount int) int {
	return sub.Plan.ArtsCount - usedCount
}

// Мок для Publisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(eventType string, userID int64, payload any) error {
	args := m.Called(eventType, userID, payload)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func subWithQuota(artsCount int) *models.SubscriptionWithPlan {
	return &models.SubscriptionWithPlan{
		Subscription: models.Subscription{UserID: 7, Status: models.SubscriptionStatusActive},
		Plan:         models.Plan{ID: 1, ArtsCount: artsCount},
	}
}

func TestContentService_Create(t *testing.T) {
	req := models.DummyContent{Title: "New art"}

	tests := []struct {
		name       string
		artsCount  int
		used       int
		setupMocks func(r *RepoMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name:      "quota available",
			artsCount: 4,
			used:      3,
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("CreateContent", mock.Anything, mock.MatchedBy(func(c models.Content) bool {
					return c.UserID == 7 && c.Title == "New art" && c.Status == "draft"
				})).Return(int64(5), nil).Once()
				p.On("Publish", "content.created", int64(7), mock.Anything).Return(nil).Once()
			},
		},
		{
			name:       "quota exhausted",
			artsCount:  4,
			used:       4,
			setupMocks: func(_ *RepoMock, _ *PublisherMock) {},
			wantErr:    entitlement.ErrQuotaExceeded,
		},
		{
			name:       "quota overdrawn",
			artsCount:  4,
			used:       10,
			setupMocks: func(_ *RepoMock, _ *PublisherMock) {},
			wantErr:    entitlement.ErrQuotaExceeded,
		},
		{
			name:      "publisher failure does not fail creation",
			artsCount: 4,
			used:      0,
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("CreateContent", mock.Anything, mock.Anything).Return(int64(5), nil).Once()
				p.On("Publish", "content.created", int64(7), mock.Anything).
					Return(errors.New("broker down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			gate := new(GateMock)
			pub := new(PublisherMock)

			gate.On("CurrentSubscription", mock.Anything, int64(7)).
				Return(subWithQuota(tt.artsCount), nil).Once()
			repo.On("CountContents", mock.Anything, int64(7)).Return(tt.used, nil).Once()
			tt.setupMocks(repo, pub)

			svc := content.New(repo, gate, pub, newNoopLogger())

			id, err := svc.Create(context.Background(), 7, req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(5), id)
			}

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestContentService_List(t *testing.T) {
	repo := new(RepoMock)
	gate := new(GateMock)
	contents := []*models.Content{{ID: 1, UserID: 7}, {ID: 2, UserID: 7}}

	repo.On("ListContents", mock.Anything, int64(7)).Return(contents, nil).Once()
	gate.On("CurrentSubscription", mock.Anything, int64(7)).Return(subWithQuota(4), nil).Once()

	svc := content.New(repo, gate, new(PublisherMock), newNoopLogger())

	got, remaining, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, contents, got)
	assert.Equal(t, 2, remaining)
	repo.AssertExpectations(t)
}
