package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/infrastructure/http/v1/dto"
	"salesdesk/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes entity change history.
type AuditHandler struct {
	*BaseHandler
	audit      *postgres.AuditService
	entityType string
	maxEntries int
}

// NewAuditHandler creates a history handler for one entity type.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService, entityType string, maxEntries int) *AuditHandler {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &AuditHandler{
		BaseHandler: base,
		audit:       audit,
		entityType:  entityType,
		maxEntries:  maxEntries,
	}
}

// History handles GET /{entity}/:id/history
func (h *AuditHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", h.maxEntries)
	if limit > h.maxEntries {
		limit = h.maxEntries
	}

	entries, err := h.audit.GetEntityHistory(ctx, h.entityType, entityID, limit)
	if err != nil {
		h.Error(c, apperror.NewDatabase(err))
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		item := dto.AuditEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			ActorID:   e.ActorID,
			ActorName: e.ActorName,
			CreatedAt: e.CreatedAt,
		}
		if len(e.Changes) > 0 {
			_ = json.Unmarshal(e.Changes, &item.Changes)
		}
		items[i] = item
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
