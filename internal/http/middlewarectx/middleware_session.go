// Package middlewarectx содержит HTTP middleware для разрешения сессий
// и проверки прав тарифного плана.
//
// SessionMiddleware читает cookie "session", разрешает её в пользователя
// через сервис аутентификации и кладёт идентификатор пользователя
// в контекст запроса. Любая причина отказа (нет cookie, токен просрочен,
// подделан, пользователь удалён) даёт одинаковый HTTP 401 Unauthorized —
// клиенту причина не раскрывается.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ для идентификатора пользователя в контексте.
const UserID Key = "user_id"

// SessionCookieName — имя cookie с сессионным токеном.
const SessionCookieName = "session"

// SessionResolver описывает интерфейс сервиса для разрешения сессионного токена.
type SessionResolver interface {
	ResolveSession(ctx context.Context, rawToken string) (*models.User, error)
}

// SessionMiddleware возвращает HTTP middleware, который разрешает
// сессионную cookie в пользователя до любой бизнес-логики обработчика.
func SessionMiddleware(resolver SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				log.Info("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}

			user, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				log.Info("session not resolved")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext извлекает идентификатор пользователя из контекста.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserID).(int64)
	return id, ok
}
