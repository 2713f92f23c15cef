package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/seed"
	"github.com/yungbote/motodiag-backend/internal/platform/config"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
	"github.com/yungbote/motodiag-backend/internal/realtime/bus"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Catalog      services.CatalogService
	Rule         services.RuleService
	Diagnosis    services.DiagnosisService
	Consultation services.ConsultationService
	Seed         services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg config.Config, repos Repos, events bus.Bus) (Services, error) {
	log.Info("Wiring services...")
	knowledge, err := seed.Bundled()
	if err != nil {
		return Services{}, fmt.Errorf("load knowledge base: %w", err)
	}
	return Services{
		Auth:    services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Catalog: services.NewCatalogService(db, log, repos.Motorcycle, repos.Symptom, repos.Damage),
		Rule:    services.NewRuleService(db, log, repos.Rule, repos.Damage, repos.Symptom),
		Diagnosis: services.NewDiagnosisService(
			db, log,
			repos.Motorcycle, repos.Symptom, repos.Rule, repos.Damage, repos.Consultation,
			events,
		),
		Consultation: services.NewConsultationService(db, log, repos.Consultation),
		Seed: services.NewSeedService(
			db, log, knowledge,
			repos.Motorcycle, repos.Symptom, repos.Damage, repos.Rule, repos.User,
		),
	}, nil
}
