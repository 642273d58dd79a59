// Package list реализует HTTP-обработчик публичного справочника сегментов рынка.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// Service описывает интерфейс справочника сегментов.
type Service interface {
	ListSegments(ctx context.Context) ([]*models.Segment, error)
}

// Handler обрабатывает HTTP-запросы списка сегментов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список сегментов рынка
// @Description Возвращает справочник сегментов по алфавиту.
// @Tags Segments
// @Produce  json
// @Success 200 {object} map[string]any "Список сегментов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /segments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.segments.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	segments, err := h.service.ListSegments(r.Context())
	if err != nil {
		log.Error("failed to list segments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"segments": segments,
	}))
}
