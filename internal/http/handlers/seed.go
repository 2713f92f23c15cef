package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/http/response"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type SeedHandler struct {
	seed services.SeedService
}

func NewSeedHandler(seed services.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

func (h *SeedHandler) Seed(c *gin.Context) {
	report, err := h.seed.Seed(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	msg := "Database seeded successfully"
	if report.Skipped {
		msg = "Database already seeded"
	}
	response.RespondOK(c, gin.H{"message": msg, "report": report})
}
