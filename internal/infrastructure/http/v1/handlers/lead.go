package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/domain/catalogs/lead"
	"salesdesk/internal/infrastructure/http/v1/dto"
)

// LeadHandler extends the generic catalog handler with the lead
// status transition endpoint.
type LeadHandler struct {
	*CatalogHandler[*lead.Lead, dto.CreateLeadRequest, dto.UpdateLeadRequest]
	service *lead.Service
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(base *BaseHandler, service *lead.Service) *LeadHandler {
	config := CatalogHandlerConfig[
		*lead.Lead,
		dto.CreateLeadRequest,
		dto.UpdateLeadRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "lead",
		MapCreateDTO: func(req dto.CreateLeadRequest) *lead.Lead {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateLeadRequest, existing *lead.Lead) *lead.Lead {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *lead.Lead) any {
			return dto.FromLead(entity)
		},
	}

	return &LeadHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// UpdateStatus handles POST /catalog/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateLeadStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(ctx, leadID, lead.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLead(updated))
}
