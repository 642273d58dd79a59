package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
)

// EntitlementService описывает нужную часть шлюза авторизации.
type EntitlementService interface {
	CurrentSubscription(ctx context.Context, userID int64) (*models.SubscriptionWithPlan, error)
	HasFeature(sub *models.SubscriptionWithPlan, feature entitlement.Feature) bool
}

// RequireFeature возвращает middleware, пропускающий запрос только если
// текущий план пользователя включает возможность feature. Отказ даёт
// HTTP 403 Forbidden — пользователь аутентифицирован, но план
// не даёт доступа, и это отличается от 401.
func RequireFeature(feature entitlement.Feature, gate EntitlementService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}

			sub, err := gate.CurrentSubscription(r.Context(), userID)
			if err != nil {
				log.Error("failed to get current subscription", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			if !gate.HasFeature(sub, feature) {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("feature not available on current plan"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
