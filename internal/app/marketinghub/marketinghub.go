// Package marketinghub собирает основное приложение: хранилище, кеш,
// издатель событий, сервисы и HTTP-сервер.
package marketinghub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/marketing-hub/internal/cache"
	"github.com/magabrotheeeer/marketing-hub/internal/config"
	"github.com/magabrotheeeer/marketing-hub/internal/events"
	"github.com/magabrotheeeer/marketing-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/marketing-hub/internal/migrations"
	accountservice "github.com/magabrotheeeer/marketing-hub/internal/services/account"
	authservice "github.com/magabrotheeeer/marketing-hub/internal/services/auth"
	campaignservice "github.com/magabrotheeeer/marketing-hub/internal/services/campaign"
	contentservice "github.com/magabrotheeeer/marketing-hub/internal/services/content"
	entitlementservice "github.com/magabrotheeeer/marketing-hub/internal/services/entitlement"
	inboxservice "github.com/magabrotheeeer/marketing-hub/internal/services/inbox"
	plannerservice "github.com/magabrotheeeer/marketing-hub/internal/services/planner"
	"github.com/magabrotheeeer/marketing-hub/internal/storage/repository"
)

// App хранит ресурсы приложения на время его жизни.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *events.Publisher
}

// New создает приложение: подключается к PostgreSQL, применяет миграции,
// подключается к Redis и RabbitMQ и регистрирует все маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = db.CheckReady(ctx); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := amqp.Dial(cfg.RabbitConnection)
	if err != nil {
		return nil, err
	}
	publisher, err := events.NewPublisher(amqpConn, cfg.EventsExchange)
	if err != nil {
		return nil, err
	}

	maker := jwt.NewMaker(cfg.Session.SecretKey, cfg.Session.TokenTTL)

	authService := authservice.New(db, db, maker)
	entitlementService := entitlementservice.New(db, cacheRedis, logger)
	accountService := accountservice.New(db)
	contentService := contentservice.New(db, entitlementService, publisher, logger)
	campaignService := campaignservice.New(db, publisher, logger)
	plannerService := plannerservice.New(db, publisher, logger)
	inboxService := inboxservice.New(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, &Services{
		Auth:        authService,
		Entitlement: entitlementService,
		Account:     accountService,
		Content:     contentService,
		Campaign:    campaignService,
		Planner:     plannerService,
		Inbox:       inboxService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
		amqpConn:  amqpConn,
		publisher: publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.publisher.Close()
		a.amqpConn.Close()
		a.db.DB.Close()
		return err
	}
}
