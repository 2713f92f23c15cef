package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/motodiag-backend/internal/http"
	"github.com/yungbote/motodiag-backend/internal/platform/config"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg config.Config, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.OTel.Enabled {
		serviceName = cfg.OTel.ServiceName
	}
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:                 log,
		ServiceName:         serviceName,
		AllowOrigins:        cfg.CORSAllowOrigins,
		AuthMiddleware:      middleware.Auth,
		AuthHandler:         handlers.Auth,
		CatalogHandler:      handlers.Catalog,
		RuleHandler:         handlers.Rule,
		DiagnosisHandler:    handlers.Diagnosis,
		ConsultationHandler: handlers.Consultation,
		SeedHandler:         handlers.Seed,
		HealthHandler:       handlers.Health,
	})
}
