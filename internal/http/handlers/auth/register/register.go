// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Обработчик декодирует и валидирует JSON-запрос, делегирует создание
// пользователя и начальной подписки сервису аутентификации и при успехе
// выставляет сессионную cookie.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/http/sessioncookie"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/sl"
	"github.com/magabrotheeeer/marketing-hub/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	SegmentID *int64 `json:"segment_id"`
	PlanID    int64  `json:"plan_id" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, name, email, rawPassword string, segmentID *int64, planID int64) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log          *slog.Logger
	service      Service
	validate     *validator.Validate
	cookieTTL    time.Duration
	cookieSecure bool
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookieTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		validate:     validator.New(),
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя с начальной подпиской и выставляет сессионную cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или несуществующий план/сегмент"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, req.SegmentID, req.PlanID)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			log.Info("email already taken", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already taken"))
			return
		}
		if errors.Is(err, auth.ErrPlanNotFound) {
			log.Info("unknown plan", slog.Int64("plan_id", req.PlanID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("plan not found"))
			return
		}
		if errors.Is(err, auth.ErrSegmentNotFound) {
			log.Info("unknown segment")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("segment not found"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	sessioncookie.Set(w, token, h.cookieTTL, h.cookieSecure)
	log.Info("user registered", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "user created successfully",
	}))
}
