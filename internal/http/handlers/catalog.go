package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/http/response"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type entryRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r entryRequest) input() services.EntryInput {
	return services.EntryInput{Code: r.Code, Name: r.Name, Description: r.Description}
}

func (h *CatalogHandler) ListMotorcycles(c *gin.Context) {
	out, err := h.catalog.ListMotorcycles(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *CatalogHandler) CreateMotorcycle(c *gin.Context) {
	var req struct {
		Brand string `json:"brand"`
		Model string `json:"model"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	m, err := h.catalog.CreateMotorcycle(c.Request.Context(), req.Brand, req.Model)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, m)
}

func (h *CatalogHandler) ListSymptoms(c *gin.Context) {
	out, err := h.catalog.ListSymptoms(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *CatalogHandler) CreateSymptom(c *gin.Context) {
	var req entryRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	s, err := h.catalog.CreateSymptom(c.Request.Context(), req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, s)
}

func (h *CatalogHandler) ListDamages(c *gin.Context) {
	out, err := h.catalog.ListDamages(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *CatalogHandler) GetDamage(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	d, err := h.catalog.GetDamage(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, d)
}

func (h *CatalogHandler) CreateDamage(c *gin.Context) {
	var req entryRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	d, err := h.catalog.CreateDamage(c.Request.Context(), req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, d)
}

func (h *CatalogHandler) DeleteDamage(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.catalog.DeleteDamage(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

type descriptionsRequest struct {
	Descriptions []string `json:"descriptions"`
}

func (h *CatalogHandler) AddCauses(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req descriptionsRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	d, err := h.catalog.AddCauses(c.Request.Context(), id, req.Descriptions)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, d)
}

func (h *CatalogHandler) AddSolutions(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req descriptionsRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	d, err := h.catalog.AddSolutions(c.Request.Context(), id, req.Descriptions)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, d)
}
