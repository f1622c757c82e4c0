package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/domain"
	"salesdesk/internal/domain/documents/priceddoc"
	"salesdesk/internal/infrastructure/http/v1/dto"
)

// PricedDocumentHandler handles HTTP requests for one priced document kind.
// The same handler type serves both invoices and sales orders; the kind is
// fixed at construction and pinned on every document that passes through.
type PricedDocumentHandler struct {
	*BaseHandler
	service *priceddoc.Service
	kind    priceddoc.Kind
}

// NewPricedDocumentHandler creates a handler bound to a document kind.
func NewPricedDocumentHandler(base *BaseHandler, service *priceddoc.Service, kind priceddoc.Kind) *PricedDocumentHandler {
	return &PricedDocumentHandler{
		BaseHandler: base,
		service:     service,
		kind:        kind,
	}
}

// List handles GET /{kind} - list with filtering.
func (h *PricedDocumentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := priceddoc.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	kind := h.kind
	filter.Kind = &kind
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if status := c.Query("status"); status != "" {
		if !h.kind.ValidStatus(status) {
			h.Error(c, apperror.NewValidation("unknown status").WithDetail("status", status))
			return
		}
		filter.Status = &status
	}

	if accountID := c.Query("accountId"); accountID != "" {
		parsed, err := id.Parse(accountID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid accountId").WithDetail("value", accountID))
			return
		}
		filter.AccountID = &parsed
	}

	if contactID := c.Query("contactId"); contactID != "" {
		parsed, err := id.Parse(contactID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid contactId").WithDetail("value", contactID))
			return
		}
		filter.ContactID = &parsed
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		parsed, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom, want RFC 3339").WithDetail("value", dateFrom))
			return
		}
		filter.DateFrom = &parsed
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		parsed, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo, want RFC 3339").WithDetail("value", dateTo))
			return
		}
		filter.DateTo = &parsed
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.PricedDocumentResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromPricedDocument(doc)
	}

	c.JSON(http.StatusOK, dto.PricedDocumentListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{kind}/:id
func (h *PricedDocumentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if doc.Kind != h.kind {
		h.Error(c, apperror.NewNotFound(h.kind.EntityName(), docID.String()))
		return
	}

	c.JSON(http.StatusOK, dto.FromPricedDocument(doc))
}

// GetByNumber handles GET /{kind}/by-number/:number
func (h *PricedDocumentHandler) GetByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	number := c.Param("number")
	if number == "" {
		h.Error(c, apperror.NewValidation("number is required"))
		return
	}

	doc, err := h.service.GetByNumber(ctx, h.kind, number)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPricedDocument(doc))
}

// Create handles POST /{kind}
func (h *PricedDocumentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePricedDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity(h.kind)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPricedDocument(doc))
}

// Update handles PUT /{kind}/:id
func (h *PricedDocumentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdatePricedDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if doc.Kind != h.kind {
		h.Error(c, apperror.NewNotFound(h.kind.EntityName(), docID.String()))
		return
	}

	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPricedDocument(doc))
}

// Delete handles DELETE /{kind}/:id - removes the document and its items.
func (h *PricedDocumentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Copy handles POST /{kind}/:id/copy - clones the document without its
// number, so the copy is numbered as a new document on save.
func (h *PricedDocumentHandler) Copy(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	copied, err := h.service.Copy(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPricedDocument(copied))
}

// RegisterRoutes registers priced document routes on the group.
func (h *PricedDocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/by-number/:number", h.GetByNumber)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/copy", h.Copy)
}
