// Package archive реализует HTTP-обработчик архивирования сообщения.
package archive

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketing-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики входящих сообщений.
type Service interface {
	Archive(ctx context.Context, userID, messageID int64) error
}

// Handler обрабатывает HTTP-запросы архивирования сообщения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Архивировать сообщение
// @Description Помечает сообщение пользователя как архивированное.
// @Tags Messages
// @Produce  json
// @Param id path int true "Идентификатор сообщения"
// @Success 200 {object} map[string]any "Сообщение архивировано"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Сообщение не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /messages/{id}/archive [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.messages.archive"

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

	messageID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid message id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid message id"))
		return
	}

	if err := h.service.Archive(r.Context(), userID, messageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("message not found", slog.Int64("message_id", messageID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("message not found"))
			return
		}
		log.Error("failed to archive message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("message archived",
		slog.Int64("user_id", userID),
		slog.Int64("message_id", messageID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "message archived",
	}))
}
