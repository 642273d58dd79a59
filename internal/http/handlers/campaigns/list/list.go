// Package list реализует HTTP-обработчик списка рекламных кампаний.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketing-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики рекламных кампаний.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.AdCampaign, error)
}

// Handler обрабатывает HTTP-запросы списка кампаний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список рекламных кампаний
// @Description Возвращает кампании пользователя. Доступно только на планах с рекламой.
// @Tags Campaigns
// @Produce  json
// @Success 200 {object} map[string]any "Список кампаний"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Функция недоступна на текущем плане"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /ad-campaigns [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaigns.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	campaigns, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list campaigns", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"campaigns": campaigns,
	}))
}
