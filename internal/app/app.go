// Package app assembles the diagnosis service from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/db"
	httpserver "github.com/yungbote/motodiag-backend/internal/http"
	"github.com/yungbote/motodiag-backend/internal/observability"
	"github.com/yungbote/motodiag-backend/internal/platform/config"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
	"github.com/yungbote/motodiag-backend/internal/realtime"
	"github.com/yungbote/motodiag-backend/internal/realtime/bus"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      config.Config
	Repos    Repos
	Services Services
	Events   bus.Bus

	otelShutdown func(context.Context) error
}

// New opens storage and wires every layer. It does not migrate; call
// Migrate before serving a fresh database.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg)

	log.Info("Opening database...", "driver", cfg.DB.Driver)
	theDB, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	events, err := bus.New(log, cfg.Redis)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init consultation bus: %w", err)
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, events)
	if err != nil {
		_ = events.Close()
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, cfg, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Events:       events,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Migrate() error {
	a.Log.Info("Running migrations...")
	if err := db.AutoMigrateAll(a.DB); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := httpserver.NewServer(a.Router, a.Cfg.Addr())

	if err := a.Events.StartForwarder(ctx, func(m realtime.ConsultationEvent) {
		a.Log.Debug("Consultation event",
			"consultation_id", m.ConsultationID,
			"damage_id", m.DamageID,
			"rule_id", m.RuleID,
		)
	}); err != nil {
		a.Log.Warn("Consultation event forwarder not started", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", srv.Addr())
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Log.Info("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Log.Warn("Closing consultation bus", "error", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
