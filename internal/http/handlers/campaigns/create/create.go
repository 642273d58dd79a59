// Package create реализует HTTP-обработчик создания рекламной кампании.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/marketing-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/models"
	"github.com/magabrotheeeer/marketing-hub/internal/services/campaign"
)

// Service описывает интерфейс бизнес-логики рекламных кампаний.
type Service interface {
	Create(ctx context.Context, userID int64, req models.DummyCampaign) (int64, error)
}

// Handler обрабатывает HTTP-запросы создания кампании.
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
// @Summary Создать рекламную кампанию
// @Description Создает кампанию в статусе draft. Доступно только на планах с рекламой.
// @Tags Campaigns
// @Accept  json
// @Produce  json
// @Param request body models.DummyCampaign true "Данные кампании"
// @Success 200 {object} map[string]any "Идентификатор созданной кампании"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или даты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Функция недоступна на текущем плане"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /ad-campaigns [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaigns.create"

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

	var req models.DummyCampaign
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

	id, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, campaign.ErrInvalidDates) {
			log.Info("invalid campaign dates", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("end date must be after start date"))
			return
		}
		log.Error("failed to create campaign", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("campaign created",
		slog.Int64("user_id", userID),
		slog.Int64("campaign_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
