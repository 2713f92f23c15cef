package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/motodiag-backend/internal/domain"
	httpH "github.com/yungbote/motodiag-backend/internal/http/handlers"
	httpMW "github.com/yungbote/motodiag-backend/internal/http/middleware"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowOrigins   []string
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler         *httpH.AuthHandler
	CatalogHandler      *httpH.CatalogHandler
	RuleHandler         *httpH.RuleHandler
	DiagnosisHandler    *httpH.DiagnosisHandler
	ConsultationHandler *httpH.ConsultationHandler
	// SeedHandler is nil unless the seed endpoint is enabled.
	SeedHandler *httpH.SeedHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	if len(cfg.AllowOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.AllowOrigins))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Index)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Auth (public)
	if cfg.AuthHandler != nil {
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// Catalog and rules: reads are public.
	if cfg.CatalogHandler != nil {
		api.GET("/motorcycles", cfg.CatalogHandler.ListMotorcycles)
		api.GET("/symptoms", cfg.CatalogHandler.ListSymptoms)
		api.GET("/damages", cfg.CatalogHandler.ListDamages)
		api.GET("/damages/:id", cfg.CatalogHandler.GetDamage)
	}
	if cfg.RuleHandler != nil {
		api.GET("/rules", cfg.RuleHandler.List)
	}

	if cfg.SeedHandler != nil {
		api.POST("/seed", cfg.SeedHandler.Seed)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	// Diagnose (optional auth)
	if cfg.DiagnosisHandler != nil {
		api.POST("/diagnose", cfg.AuthMiddleware.OptionalAuth(), cfg.DiagnosisHandler.Diagnose)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		if cfg.ConsultationHandler != nil {
			protected.GET("/consultations", cfg.ConsultationHandler.List)
		}
	}

	admin := api.Group("/")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireRole(domain.RoleAdmin))
	{
		if cfg.CatalogHandler != nil {
			admin.POST("/motorcycles", cfg.CatalogHandler.CreateMotorcycle)
			admin.POST("/symptoms", cfg.CatalogHandler.CreateSymptom)
			admin.POST("/damages", cfg.CatalogHandler.CreateDamage)
			admin.DELETE("/damages/:id", cfg.CatalogHandler.DeleteDamage)
			admin.POST("/damages/:id/causes", cfg.CatalogHandler.AddCauses)
			admin.POST("/damages/:id/solutions", cfg.CatalogHandler.AddSolutions)
		}
		if cfg.RuleHandler != nil {
			admin.POST("/rules", cfg.RuleHandler.Create)
		}
	}

	return r
}
