// Package marketinghub предоставляет маршруты для основного приложения.
package marketinghub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/marketing-hub/internal/config"
	"github.com/magabrotheeeer/marketing-hub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/marketing-hub/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/marketing-hub/internal/http/handlers/auth/register"
	campaigncreate "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/campaigns/create"
	campaignlist "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/campaigns/list"
	"github.com/magabrotheeeer/marketing-hub/internal/http/handlers/campaigns/updatestatus"
	contentcreate "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/contents/create"
	contentlist "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/contents/list"
	messagearchive "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/messages/archive"
	messagelist "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/messages/list"
	notificationsupdate "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/notifications/update"
	planslist "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/plans/list"
	postcreate "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/posts/create"
	postlist "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/posts/list"
	postremove "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/posts/remove"
	profileread "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/profile/update"
	securityupdate "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/security/update"
	segmentslist "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/segments/list"
	subchange "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/subscription/change"
	subread "github.com/magabrotheeeer/marketing-hub/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/marketing-hub/internal/http/middlewarectx"
	accountservice "github.com/magabrotheeeer/marketing-hub/internal/services/account"
	authservice "github.com/magabrotheeeer/marketing-hub/internal/services/auth"
	campaignservice "github.com/magabrotheeeer/marketing-hub/internal/services/campaign"
	contentservice "github.com/magabrotheeeer/marketing-hub/internal/services/content"
	entitlementservice "github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
	inboxservice "github.com/magabrotheeeer/marketing-hub/internal/services/inbox"
	plannerservice "github.com/magabrotheeeer/marketing-hub/internal/services/planner"
)

// Services объединяет сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth        *authservice.Service
	Entitlement *entitlementservice.Service
	Account     *accountservice.Service
	Content     *contentservice.Service
	Campaign    *campaignservice.Service
	Planner     *plannerservice.Service
	Inbox       *inboxservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	cookieTTL := cfg.Session.TokenTTL
	cookieSecure := cfg.IsProd()
	limiter := middlewarectx.NewRateLimiter(10, 30)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth, cookieTTL, cookieSecure).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth, cookieTTL, cookieSecure).ServeHTTP)
		r.Get("/logout", logout.New(logger, cookieSecure).ServeHTTP)
		r.Get("/plans", planslist.New(logger, s.Entitlement).ServeHTTP)
		r.Get("/segments", segmentslist.New(logger, s.Account).ServeHTTP)

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

			r.Get("/user/profile", profileread.New(logger, s.Account).ServeHTTP)
			r.Patch("/user/profile", profileupdate.New(logger, s.Account).ServeHTTP)
			r.Patch("/user/security", securityupdate.New(logger, s.Account).ServeHTTP)
			r.Patch("/user/notifications", notificationsupdate.New(logger, s.Account).ServeHTTP)
			r.Get("/user/subscription", subread.New(logger, s.Entitlement).ServeHTTP)
			r.Post("/user/subscription", subchange.New(logger, s.Entitlement).ServeHTTP)

			r.Post("/contents", contentcreate.New(logger, s.Content).ServeHTTP)
			r.Get("/contents", contentlist.New(logger, s.Content).ServeHTTP)

			r.Post("/scheduled-posts", postcreate.New(logger, s.Planner).ServeHTTP)
			r.Get("/scheduled-posts", postlist.New(logger, s.Planner).ServeHTTP)
			r.Delete("/scheduled-posts/{id}", postremove.New(logger, s.Planner).ServeHTTP)

			r.Get("/messages", messagelist.New(logger, s.Inbox).ServeHTTP)
			r.Patch("/messages/{id}/archive", messagearchive.New(logger, s.Inbox).ServeHTTP)

			// Рекламные кампании доступны только на планах с has_ads
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireFeature(entitlementservice.FeatureAds, s.Entitlement, logger))
				r.Post("/ad-campaigns", campaigncreate.New(logger, s.Campaign).ServeHTTP)
				r.Get("/ad-campaigns", campaignlist.New(logger, s.Campaign).ServeHTTP)
				r.Patch("/ad-campaigns/{id}", updatestatus.New(logger, s.Campaign).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
