package entitlement_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// Мок для SubscriptionRepository
type SubRepoMock struct {
	mock.Mock
}

func (m *SubRepoMock) FindActiveSubscriptionWithPlan(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithPlan), args.Error(1)
}

func (m *SubRepoMock) ChangeSubscription(ctx context.Context, userID, planID int64, periodStart, periodEnd time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, userID, planID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *SubRepoMock) GetPlanByID(ctx context.Context, id int64) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *SubRepoMock) GetCheapestPlan(ctx context.Context) (*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *SubRepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func missCache() *CacheMock {
	c := new(CacheMock)
	c.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	c.On("Invalidate", mock.Anything).Return(nil)
	return c
}

func TestCurrentSubscription_Active(t *testing.T) {
	repo := new(SubRepoMock)
	sub := &models.SubscriptionWithPlan{
		Subscription: models.Subscription{ID: 1, UserID: 7, PlanID: 2, Status: models.SubscriptionStatusActive},
		Plan:         models.Plan{ID: 2, Name: "Plus", ArtsCount: 10, HasAds: true},
	}
	repo.On("FindActiveSubscriptionWithPlan", mock.Anything, int64(7)).Return(sub, nil).Once()

	svc := entitlement.New(repo, missCache(), newNoopLogger())

	got, err := svc.CurrentSubscription(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
	repo.AssertExpectations(t)
}

func TestCurrentSubscription_FallbackToCheapestPlan(t *testing.T) {
	repo := new(SubRepoMock)
	cheapest := &models.Plan{ID: 1, Name: "Start", Price: 97, ArtsCount: 4}
	repo.On("FindActiveSubscriptionWithPlan", mock.Anything, int64(7)).
		Return(nil, repository.ErrNotFound).Once()
	repo.On("GetCheapestPlan", mock.Anything).Return(cheapest, nil).Once()

	svc := entitlement.New(repo, missCache(), newNoopLogger())

	got, err := svc.CurrentSubscription(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusInactive, got.Status)
	assert.Equal(t, cheapest.ID, got.PlanID)
	assert.Equal(t, *cheapest, got.Plan)
	repo.AssertExpectations(t)
}

func TestCurrentSubscription_StorageError(t *testing.T) {
	repo := new(SubRepoMock)
	repo.On("FindActiveSubscriptionWithPlan", mock.Anything, int64(7)).
		Return(nil, errors.New("db error")).Once()

	svc := entitlement.New(repo, missCache(), newNoopLogger())

	got, err := svc.CurrentSubscription(context.Background(), 7)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestHasFeature(t *testing.T) {
	svc := entitlement.New(new(SubRepoMock), missCache(), newNoopLogger())

	tests := []struct {
		name    string
		plan    models.Plan
		feature entitlement.Feature
		want    bool
	}{
		{"ads enabled", models.Plan{HasAds: true}, entitlement.FeatureAds, true},
		{"ads disabled", models.Plan{HasAds: false}, entitlement.FeatureAds, false},
		{"dashboard enabled", models.Plan{HasDashboard: true}, entitlement.FeatureDashboard, true},
		{"dashboard disabled", models.Plan{HasDashboard: false}, entitlement.FeatureDashboard, false},
		{"unknown feature", models.Plan{HasAds: true, HasDashboard: true}, entitlement.Feature("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &models.SubscriptionWithPlan{Plan: tt.plan}
			assert.Equal(t, tt.want, svc.HasFeature(sub, tt.feature))
		})
	}
}

func TestRemainingQuota(t *testing.T) {
	svc := entitlement.New(new(SubRepoMock), missCache(), newNoopLogger())

	tests := []struct {
		name      string
		artsCount int
		used      int
		want      int
	}{
		{"quota untouched", 4, 0, 4},
		{"quota partially used", 4, 3, 1},
		{"quota exhausted", 4, 4, 0},
		{"quota overdrawn after downgrade", 4, 10, -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &models.SubscriptionWithPlan{Plan: models.Plan{ArtsCount: tt.artsCount}}
			assert.Equal(t, tt.want, svc.RemainingQuota(sub, tt.used))
		})
	}
}

func TestChangePlan(t *testing.T) {
	t.Run("successful change invalidates cache", func(t *testing.T) {
		repo := new(SubRepoMock)
		cache := missCache()
		plan := &models.Plan{ID: 3, Name: "Premium"}
		newSub := &models.Subscription{ID: 11, UserID: 7, PlanID: 3, Status: models.SubscriptionStatusActive}

		repo.On("GetPlanByID", mock.Anything, int64(3)).Return(plan, nil).Once()
		repo.On("ChangeSubscription", mock.Anything, int64(7), int64(3), mock.Anything, mock.Anything).
			Return(newSub, nil).Once()

		svc := entitlement.New(repo, cache, newNoopLogger())

		got, err := svc.ChangePlan(context.Background(), 7, 3)
		require.NoError(t, err)
		assert.Equal(t, newSub, got)
		repo.AssertExpectations(t)
		cache.AssertCalled(t, "Invalidate", "subscription:user:7")
	})

	t.Run("unknown plan", func(t *testing.T) {
		repo := new(SubRepoMock)
		repo.On("GetPlanByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound).Once()

		svc := entitlement.New(repo, missCache(), newNoopLogger())

		got, err := svc.ChangePlan(context.Background(), 7, 99)
		assert.ErrorIs(t, err, entitlement.ErrPlanNotFound)
		assert.Nil(t, got)
	})

	t.Run("storage error", func(t *testing.T) {
		repo := new(SubRepoMock)
		repo.On("GetPlanByID", mock.Anything, int64(3)).Return(&models.Plan{ID: 3}, nil).Once()
		repo.On("ChangeSubscription", mock.Anything, int64(7), int64(3), mock.Anything, mock.Anything).
			Return(nil, errors.New("db error")).Once()

		svc := entitlement.New(repo, missCache(), newNoopLogger())

		got, err := svc.ChangePlan(context.Background(), 7, 3)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestListPlans_CacheMiss(t *testing.T) {
	repo := new(SubRepoMock)
	plans := []*models.Plan{{ID: 1, Name: "Start"}, {ID: 2, Name: "Plus"}}
	repo.On("ListPlans", mock.Anything).Return(plans, nil).Once()

	svc := entitlement.New(repo, missCache(), newNoopLogger())

	got, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plans, got)
	repo.AssertExpectations(t)
}
