package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/auth"
	"github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
)

type SessionResolverMock struct {
	mock.Mock
}

func (m *SessionResolverMock) ResolveSession(ctx context.Context, rawToken string) (*models.User, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type EntitlementMock struct {
	mock.Mock
}

func (m *EntitlementMock) CurrentSubscription(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithPlan), args.Error(1)
}

func (m *EntitlementMock) HasFeature(sub *models.SubscriptionWithPlan, feature entitlement.Feature) bool {
	args := m.Called(sub, feature)
	return args.Bool(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMocks     func(r *SessionResolverMock)
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name:   "valid session",
			cookie: &http.Cookie{Name: SessionCookieName, Value: "valid-token"},
			setupMocks: func(r *SessionResolverMock) {
				r.On("ResolveSession", mock.Anything, "valid-token").
					Return(&models.User{ID: 7}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing cookie",
			cookie:         nil,
			setupMocks:     func(_ *SessionResolverMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "session not resolved",
			cookie: &http.Cookie{Name: SessionCookieName, Value: "bad-token"},
			setupMocks: func(r *SessionResolverMock) {
				r.On("ResolveSession", mock.Anything, "bad-token").
					Return(nil, auth.ErrNotAuthenticated).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(SessionResolverMock)
			tt.setupMocks(resolver)

			nextCalled := false
			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = UserIDFromContext(r.Context())
			})

			handler := SessionMiddleware(resolver, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/contents", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantNextCalled {
				assert.Equal(t, int64(7), gotUserID)
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestRequireFeature(t *testing.T) {
	subWithAds := &models.SubscriptionWithPlan{Plan: models.Plan{HasAds: true}}
	subWithoutAds := &models.SubscriptionWithPlan{Plan: models.Plan{HasAds: false}}

	tests := []struct {
		name           string
		userInContext  bool
		setupMocks     func(g *EntitlementMock)
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name:          "plan includes feature",
			userInContext: true,
			setupMocks: func(g *EntitlementMock) {
				g.On("CurrentSubscription", mock.Anything, int64(7)).Return(subWithAds, nil).Once()
				g.On("HasFeature", subWithAds, entitlement.FeatureAds).Return(true).Once()
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:          "plan lacks feature",
			userInContext: true,
			setupMocks: func(g *EntitlementMock) {
				g.On("CurrentSubscription", mock.Anything, int64(7)).Return(subWithoutAds, nil).Once()
				g.On("HasFeature", subWithoutAds, entitlement.FeatureAds).Return(false).Once()
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "no user in context",
			userInContext:  false,
			setupMocks:     func(_ *EntitlementMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:          "subscription lookup error",
			userInContext: true,
			setupMocks: func(g *EntitlementMock) {
				g.On("CurrentSubscription", mock.Anything, int64(7)).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := new(EntitlementMock)
			tt.setupMocks(gate)

			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})

			handler := RequireFeature(entitlement.FeatureAds, gate, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/ad-campaigns", nil)
			if tt.userInContext {
				req = req.WithContext(context.WithValue(req.Context(), UserID, int64(7)))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			gate.AssertExpectations(t)
		})
	}
}
