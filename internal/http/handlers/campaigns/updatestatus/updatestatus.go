// Package updatestatus реализует HTTP-обработчик смены статуса рекламной кампании.
package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/marketing-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/campaign"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// Request — входные данные для смены статуса кампании.
type Request struct {
	Status string `json:"status" validate:"required"`
}

// Service описывает интерфейс бизнес-логики рекламных кампаний.
type Service interface {
	UpdateStatus(ctx context.Context, userID, campaignID int64, status string) (*models.AdCampaign, error)
}

// Handler обрабатывает HTTP-запросы смены статуса кампании.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сменить статус кампании
// @Description Переводит кампанию пользователя в один из статусов: draft, active, paused, completed.
// @Tags Campaigns
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор кампании"
// @Param request body Request true "Новый статус"
// @Success 200 {object} map[string]any "Обновленная кампания"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, идентификатор или статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Функция недоступна на текущем плане"
// @Failure 404 {object} response.ErrorResponse "Кампания не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /ad-campaigns/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaigns.updatestatus"

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

	campaignID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid campaign id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid campaign id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), userID, campaignID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrInvalidStatus):
			log.Info("invalid campaign status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown campaign status"))
		case errors.Is(err, repository.ErrNotFound):
			log.Info("campaign not found", slog.Int64("campaign_id", campaignID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("campaign not found"))
		default:
			log.Error("failed to update campaign status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("campaign status updated",
		slog.Int64("campaign_id", campaignID),
		slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"campaign": updated,
	}))
}
