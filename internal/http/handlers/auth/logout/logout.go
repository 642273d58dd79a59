// Package logout реализует HTTP-обработчик выхода из системы.
// Сервер не ведёт список отозванных сессий: достаточно удалить cookie.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/marketing-hub/internal/http/response"
	"github.com/magabrotheeeer/marketing-hub/internal/http/sessioncookie"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log          *slog.Logger
	cookieSecure bool
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cookieSecure bool) *Handler {
	return &Handler{log: log, cookieSecure: cookieSecure}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Удаляет сессионную cookie на стороне клиента.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Выход выполнен"
// @Router /logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessioncookie.Clear(w, h.cookieSecure)
	log.Info("user logged out")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged out",
	}))
}
