package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/http/response"
	"github.com/yungbote/motodiag-backend/internal/platform/ctxutil"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type DiagnosisHandler struct {
	diagnosis services.DiagnosisService
}

func NewDiagnosisHandler(diagnosis services.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosis: diagnosis}
}

type diagnoseResponse struct {
	ConsultationID uint           `json:"consultation_id"`
	Diagnosis      *domain.Damage `json:"diagnosis"`
	RuleID         *uint          `json:"rule_id,omitempty"`
	Message        string         `json:"message,omitempty"`
}

// Diagnose records a consultation for the caller, or anonymously when no
// token was sent.
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	var req struct {
		MotorcycleID uint   `json:"motorcycle_id"`
		SymptomIDs   []uint `json:"symptom_ids"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ctx := c.Request.Context()
	out, err := h.diagnosis.Diagnose(ctx, services.DiagnoseInput{
		MotorcycleID: req.MotorcycleID,
		SymptomIDs:   req.SymptomIDs,
		UserID:       ctxutil.UserID(ctx),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	resp := diagnoseResponse{ConsultationID: out.Consultation.ID}
	if out.Matched() {
		resp.Diagnosis = out.Damage
		resp.RuleID = &out.Rule.ID
	} else {
		resp.Message = services.NoMatchMessage
	}
	response.RespondOK(c, resp)
}
