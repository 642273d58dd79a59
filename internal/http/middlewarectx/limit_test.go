package middlewarectx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware_PerUser(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(limiter, newNoopLogger())(next)

	doRequest := func(userID int64) int {
		req := httptest.NewRequest(http.MethodGet, "/contents", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserID, userID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Первый пользователь исчерпывает свой burst.
	assert.Equal(t, http.StatusOK, doRequest(1))
	assert.Equal(t, http.StatusOK, doRequest(1))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(1))

	// Лимит первого пользователя не затрагивает второго.
	assert.Equal(t, http.StatusOK, doRequest(2))
	assert.Equal(t, http.StatusOK, doRequest(2))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(2))
}
