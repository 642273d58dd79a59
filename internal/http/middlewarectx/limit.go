package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
)

// RateLimiter выдаёт каждому пользователю отдельный token bucket:
// один клиент, исчерпавший свой лимит, не затрагивает остальных.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter создает лимитер с заданной скоростью и burst на пользователя.
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (rl *RateLimiter) allow(userID int64) bool {
	rl.mu.Lock()
	lim, ok := rl.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[userID] = lim
	}
	rl.mu.Unlock()
	return lim.Allow()
}

// RateLimitMiddleware ограничивает частоту запросов к защищённым маршрутам.
// Ключом служит идентификатор пользователя из контекста, выставленный
// SessionMiddleware; запросы без пользователя считаются одним клиентом.
func RateLimitMiddleware(rl *RateLimiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := UserIDFromContext(r.Context())
			if !rl.allow(userID) {
				log.Warn("too many requests", slog.Int64("user_id", userID))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
