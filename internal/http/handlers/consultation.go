package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/http/response"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type ConsultationHandler struct {
	consultations services.ConsultationService
}

func NewConsultationHandler(consultations services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultations: consultations}
}

func (h *ConsultationHandler) List(c *gin.Context) {
	out, err := h.consultations.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
