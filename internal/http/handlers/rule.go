package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/http/response"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type RuleHandler struct {
	rules services.RuleService
}

func NewRuleHandler(rules services.RuleService) *RuleHandler {
	return &RuleHandler{rules: rules}
}

func (h *RuleHandler) List(c *gin.Context) {
	out, err := h.rules.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *RuleHandler) Create(c *gin.Context) {
	var req struct {
		DamageID   uint   `json:"damage_id"`
		SymptomIDs []uint `json:"symptom_ids"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	r, err := h.rules.Create(c.Request.Context(), req.DamageID, req.SymptomIDs)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, r)
}
