package app

import (
	"github.com/yungbote/motodiag-backend/internal/http/handlers"
	"github.com/yungbote/motodiag-backend/internal/platform/config"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Catalog      *handlers.CatalogHandler
	Rule         *handlers.RuleHandler
	Diagnosis    *handlers.DiagnosisHandler
	Consultation *handlers.ConsultationHandler
	Seed         *handlers.SeedHandler
	Health       *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg config.Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	h := Handlers{
		Auth:         handlers.NewAuthHandler(services.Auth),
		Catalog:      handlers.NewCatalogHandler(services.Catalog),
		Rule:         handlers.NewRuleHandler(services.Rule),
		Diagnosis:    handlers.NewDiagnosisHandler(services.Diagnosis),
		Consultation: handlers.NewConsultationHandler(services.Consultation),
		Health:       handlers.NewHealthHandler(cfg.Version),
	}
	if cfg.SeedEndpointEnabled {
		log.Warn("Seed endpoint enabled")
		h.Seed = handlers.NewSeedHandler(services.Seed)
	}
	return h
}
