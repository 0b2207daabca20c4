package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"content-planner/domain/repository"
	"content-planner/infrastructure/cache"
	"content-planner/infrastructure/clients/publications"
	"content-planner/infrastructure/configuration"
	"content-planner/infrastructure/logger"
	"content-planner/infrastructure/persistence"
	"content-planner/infrastructure/pubsub"
	"content-planner/infrastructure/realtime"
	"content-planner/infrastructure/servicebus"
	httpHandler "content-planner/interfaces/http"
	"content-planner/server"
	"content-planner/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// env files never override the process environment
	loaded := configuration.LoadEnvFromFile("config.env", ".env")
	logger.GetLogger().WithField("files", loaded).Info("Environment files loaded")
	configuration.Reload()
	logger.ApplyEnvLevel()

	app := configuration.C.App
	loc := app.Location()
	components := map[string]bool{}

	backend := publications.NewClient(publications.Config{
		BaseURL:        configuration.C.Backend.BaseURL,
		PublishNowPath: configuration.C.Backend.PublishNowPath,
		Timeout:        configuration.C.Backend.Timeout(),
	}, nil)

	var publicationCache repository.IPublicationCache
	if configuration.C.RedisClient.Host != "" {
		redisClient, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
			configuration.C.RedisClient.Username,
			configuration.C.RedisClient.Password,
		)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - calendar reads go straight to the backend")
		} else {
			publicationCache = cache.NewPublicationCache(redisClient)
			components["redis"] = true
			defer redisClient.Close()
		}
	}

	auditRepo, db := initiateAudit()
	if db != nil {
		components["audit"] = true
		defer db.Close()
	}

	events, stopEvents := initiateEvents(ctx)
	if events != nil {
		components["events"] = true
		defer stopEvents()
	}

	hub := realtime.NewCalendarHub()
	cacheTTL := time.Duration(configuration.C.Calendar.CacheTTLSeconds) * time.Second
	calendarUsecase := usecase.NewCalendarUsecase(backend, publicationCache, cacheTTL, loc, nil)
	refresh := func(ctx context.Context, userID string) {
		calendarUsecase.Refresh(ctx, userID)
		hub.BroadcastRefresh(userID, "publication_changed")
	}

	opts := []usecase.ComposeOption{}
	if auditRepo != nil {
		opts = append(opts, usecase.WithAudit(auditRepo))
	}
	if events != nil {
		opts = append(opts, usecase.WithEvents(events))
	}
	composeUsecase := usecase.NewComposeUsecase(backend, refresh, opts...)
	publicationUsecase := usecase.NewPublicationUsecase(backend, calendarUsecase, refresh)

	router := server.InitiateRouter(server.Handlers{
		Calendar:    httpHandler.NewCalendarHandler(calendarUsecase),
		Publication: httpHandler.NewPublicationHandler(publicationUsecase, composeUsecase),
		Compose:     httpHandler.NewComposeHandler(composeUsecase),
		Hub:         hub,
		Health:      httpHandler.Healthz(components),
	}, app.SecretKey, app.CorsOrigins)

	// Compose session janitor
	sessionTTL := time.Duration(configuration.C.Compose.SessionTTLMinutes) * time.Minute
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := composeUsecase.PurgeIdle(sessionTTL); n > 0 {
					logger.GetLogger().WithField("purged", n).Info("Purged idle compose sessions")
				}
			}
		}
	})

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":       port,
		"tls":        app.TLSEnabled,
		"backend":    configuration.C.Backend.BaseURL,
		"timezone":   loc.String(),
		"components": components,
	}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			// SSE streams stay open, so no write timeout
			WriteTimeout: 0,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
			logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
			if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateAudit opens the audit store selected by DB_VENDOR (postgres, mssql or none).
// Without a reachable database submissions simply go unaudited.
func initiateAudit() (repository.IComposeAudit, *sql.DB) {
	vendor := strings.ToLower(os.Getenv("DB_VENDOR"))
	if vendor == "" {
		if configuration.C.Database.Psql.Host != "" {
			vendor = "postgres"
		} else {
			vendor = "none"
		}
	}

	switch vendor {
	case "mssql":
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Cannot connect to MSSQL - compose audit disabled")
			return nil, nil
		}
		if err := persistence.EnsureComposeAuditSchemaMSSQL(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring compose audit schema")
		}
		return persistence.NewComposeAuditRepositoryMSSQL(db), db
	case "postgres", "postgresql":
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Cannot connect to PostgreSQL - compose audit disabled")
			return nil, nil
		}
		if err := persistence.EnsureComposeAuditSchema(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring compose audit schema")
		}
		return persistence.NewComposeAuditRepository(db), db
	default:
		logger.GetLogger().Info("No audit database configured")
		return nil, nil
	}
}

// initiateEvents builds the publication event publisher for events.driver.
func initiateEvents(ctx context.Context) (repository.IPublicationEvents, func()) {
	cfg := configuration.C.Events
	switch cfg.Driver {
	case "pubsub":
		client, err := pubsub.NewPubSub(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("PubSub not available - publication events disabled")
			return nil, nil
		}
		events := pubsub.NewPublicationEvents(client, cfg.Topic)
		return events, func() {
			events.Stop()
			_ = client.Close()
		}
	case "servicebus":
		client, err := servicebus.NewServiceBus(cfg.Namespace, cfg.ConnectionString)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - publication events disabled")
			return nil, nil
		}
		return servicebus.NewPublicationEvents(client, cfg.Queue), func() {
			_ = client.Close(context.Background())
		}
	default:
		return nil, nil
	}
}
