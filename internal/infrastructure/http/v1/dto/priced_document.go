package dto

import (
	"time"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/core/types"
	"salesdesk/internal/domain/documents/priceddoc"
)

// --- Request DTOs ---

// PricedDocumentItemRequest represents a line item in create/update requests.
// Amount and total are accepted as supplied, never recomputed here.
type PricedDocumentItemRequest struct {
	ProductReference string      `json:"productReference,omitempty"`
	Name             string      `json:"name" binding:"required"`
	Description      string      `json:"description,omitempty"`
	Quantity         float64     `json:"quantity" binding:"gte=1"`
	UnitPrice        types.Money `json:"unitPrice"`
	Amount           types.Money `json:"amount"`
	Discount         types.Money `json:"discount"`
	Tax              types.Money `json:"tax"`
	Total            types.Money `json:"total"`
}

func (r PricedDocumentItemRequest) toItem() priceddoc.Item {
	return priceddoc.Item{
		ProductReference: r.ProductReference,
		Name:             r.Name,
		Description:      r.Description,
		Quantity:         types.NewQuantityFromFloat64(r.Quantity),
		UnitPrice:        r.UnitPrice,
		Amount:           r.Amount,
		Discount:         r.Discount,
		Tax:              r.Tax,
		Total:            r.Total,
	}
}

// CreatePricedDocumentRequest represents a request to create an invoice or sales order.
type CreatePricedDocumentRequest struct {
	Number          string                      `json:"documentNumber,omitempty"`
	Subject         string                      `json:"subject" binding:"required"`
	Date            time.Time                   `json:"date" binding:"required"`
	Status          string                      `json:"status,omitempty"`
	AccountName     string                      `json:"accountName" binding:"required"`
	AccountID       *string                     `json:"accountId,omitempty"`
	ContactID       *string                     `json:"contactId,omitempty"`
	Currency        string                      `json:"currency,omitempty"`
	BillingAddress  *priceddoc.Address          `json:"billingAddress,omitempty"`
	ShippingAddress *priceddoc.Address          `json:"shippingAddress,omitempty"`
	ShippingCost    types.Money                 `json:"shippingCost"`
	Adjustment      types.Money                 `json:"adjustment"`
	Comment         string                      `json:"comment,omitempty"`
	Items           []PricedDocumentItemRequest `json:"items"`
}

// parseRef parses an optional catalog reference, rejecting malformed ids
// instead of dropping them.
func parseRef(field, value string) (*id.ID, error) {
	parsed, err := id.Parse(value)
	if err != nil {
		return nil, apperror.NewValidation("invalid "+field).
			WithDetail("field", field).
			WithDetail("value", value)
	}
	return &parsed, nil
}

// ToEntity converts request to domain entity of the given kind.
func (r *CreatePricedDocumentRequest) ToEntity(kind priceddoc.Kind) (*priceddoc.PricedDocument, error) {
	doc := priceddoc.New(kind)
	doc.Number = r.Number
	doc.Subject = r.Subject
	doc.Date = r.Date
	if r.Status != "" {
		doc.Status = r.Status
	}
	doc.AccountName = r.AccountName
	if r.AccountID != nil {
		ref, err := parseRef("accountId", *r.AccountID)
		if err != nil {
			return nil, err
		}
		doc.AccountID = ref
	}
	if r.ContactID != nil {
		ref, err := parseRef("contactId", *r.ContactID)
		if err != nil {
			return nil, err
		}
		doc.ContactID = ref
	}
	if r.Currency != "" {
		doc.Currency = r.Currency
	}
	if r.BillingAddress != nil {
		doc.BillingAddress = *r.BillingAddress
	}
	if r.ShippingAddress != nil {
		doc.ShippingAddress = *r.ShippingAddress
	}
	doc.ShippingCost = r.ShippingCost
	doc.Adjustment = r.Adjustment
	doc.Comment = r.Comment

	for _, item := range r.Items {
		doc.AddItem(item.toItem())
	}

	return doc, nil
}

// UpdatePricedDocumentRequest represents a request to update an invoice or sales order.
// Items are replaced only when present in the payload; a request without items
// leaves the stored lines and totals untouched.
type UpdatePricedDocumentRequest struct {
	Subject         *string                     `json:"subject,omitempty"`
	Date            *time.Time                  `json:"date,omitempty"`
	Status          *string                     `json:"status,omitempty"`
	AccountName     *string                     `json:"accountName,omitempty"`
	AccountID       *string                     `json:"accountId,omitempty"`
	ContactID       *string                     `json:"contactId,omitempty"`
	Currency        *string                     `json:"currency,omitempty"`
	BillingAddress  *priceddoc.Address          `json:"billingAddress,omitempty"`
	ShippingAddress *priceddoc.Address          `json:"shippingAddress,omitempty"`
	ShippingCost    *types.Money                `json:"shippingCost,omitempty"`
	Adjustment      *types.Money                `json:"adjustment,omitempty"`
	Comment         *string                     `json:"comment,omitempty"`
	Items           []PricedDocumentItemRequest `json:"items,omitempty"`
	Version         int                         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdatePricedDocumentRequest) ApplyTo(doc *priceddoc.PricedDocument) error {
	if r.Subject != nil {
		doc.Subject = *r.Subject
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.Status != nil {
		doc.Status = *r.Status
	}
	if r.AccountName != nil {
		doc.AccountName = *r.AccountName
	}
	if r.AccountID != nil {
		if *r.AccountID == "" {
			doc.AccountID = nil
		} else {
			ref, err := parseRef("accountId", *r.AccountID)
			if err != nil {
				return err
			}
			doc.AccountID = ref
		}
	}
	if r.ContactID != nil {
		if *r.ContactID == "" {
			doc.ContactID = nil
		} else {
			ref, err := parseRef("contactId", *r.ContactID)
			if err != nil {
				return err
			}
			doc.ContactID = ref
		}
	}
	if r.Currency != nil && *r.Currency != "" {
		doc.Currency = *r.Currency
	}
	if r.BillingAddress != nil {
		doc.BillingAddress = *r.BillingAddress
	}
	if r.ShippingAddress != nil {
		doc.ShippingAddress = *r.ShippingAddress
	}
	if r.ShippingCost != nil {
		doc.ShippingCost = *r.ShippingCost
	}
	if r.Adjustment != nil {
		doc.Adjustment = *r.Adjustment
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	if r.Items != nil {
		items := make([]priceddoc.Item, 0, len(r.Items))
		for _, item := range r.Items {
			items = append(items, item.toItem())
		}
		doc.SetItems(items)
	}

	doc.Version = r.Version
	return nil
}

// --- Response DTOs ---

// PricedDocumentItemResponse represents a line item in API responses.
type PricedDocumentItemResponse struct {
	LineID           string         `json:"lineId"`
	LineNo           int            `json:"lineNo"`
	ProductReference string         `json:"productReference,omitempty"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Quantity         types.Quantity `json:"quantity"`
	UnitPrice        types.Money    `json:"unitPrice"`
	Amount           types.Money    `json:"amount"`
	Discount         types.Money    `json:"discount"`
	Tax              types.Money    `json:"tax"`
	Total            types.Money    `json:"total"`
}

// PricedDocumentResponse represents an invoice or sales order in API responses.
type PricedDocumentResponse struct {
	ID              string                       `json:"id"`
	Kind            string                       `json:"kind"`
	Number          string                       `json:"documentNumber,omitempty"`
	Subject         string                       `json:"subject"`
	Date            time.Time                    `json:"date"`
	Status          string                       `json:"status"`
	AccountName     string                       `json:"accountName"`
	AccountID       *string                      `json:"accountId,omitempty"`
	ContactID       *string                      `json:"contactId,omitempty"`
	Currency        string                       `json:"currency"`
	BillingAddress  priceddoc.Address            `json:"billingAddress"`
	ShippingAddress priceddoc.Address            `json:"shippingAddress"`
	SubTotal        types.Money                  `json:"subTotal"`
	DiscountTotal   types.Money                  `json:"discountTotal"`
	TaxTotal        types.Money                  `json:"taxTotal"`
	ShippingCost    types.Money                  `json:"shippingCost"`
	Adjustment      types.Money                  `json:"adjustment"`
	GrandTotal      types.Money                  `json:"grandTotal"`
	Comment         string                       `json:"comment,omitempty"`
	Items           []PricedDocumentItemResponse `json:"items"`
	DeletionMark    bool                         `json:"deletionMark,omitempty"`
	Version         int                          `json:"version"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
	CreatedBy       string                       `json:"createdBy,omitempty"`
	UpdatedBy       string                       `json:"updatedBy,omitempty"`
}

// FromPricedDocument converts domain entity to response DTO.
func FromPricedDocument(doc *priceddoc.PricedDocument) *PricedDocumentResponse {
	resp := &PricedDocumentResponse{
		ID:              doc.ID.String(),
		Kind:            string(doc.Kind),
		Number:          doc.Number,
		Subject:         doc.Subject,
		Date:            doc.Date,
		Status:          doc.Status,
		AccountName:     doc.AccountName,
		Currency:        doc.Currency,
		BillingAddress:  doc.BillingAddress,
		ShippingAddress: doc.ShippingAddress,
		SubTotal:        doc.SubTotal,
		DiscountTotal:   doc.DiscountTotal,
		TaxTotal:        doc.TaxTotal,
		ShippingCost:    doc.ShippingCost,
		Adjustment:      doc.Adjustment,
		GrandTotal:      doc.GrandTotal,
		Comment:         doc.Comment,
		DeletionMark:    doc.DeletionMark,
		Version:         doc.Version,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
		CreatedBy:       doc.CreatedBy,
		UpdatedBy:       doc.UpdatedBy,
	}

	if doc.AccountID != nil {
		s := doc.AccountID.String()
		resp.AccountID = &s
	}
	if doc.ContactID != nil {
		s := doc.ContactID.String()
		resp.ContactID = &s
	}

	resp.Items = make([]PricedDocumentItemResponse, len(doc.Items))
	for i, item := range doc.Items {
		resp.Items[i] = PricedDocumentItemResponse{
			LineID:           item.LineID.String(),
			LineNo:           item.LineNo,
			ProductReference: item.ProductReference,
			Name:             item.Name,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Amount:           item.Amount,
			Discount:         item.Discount,
			Tax:              item.Tax,
			Total:            item.Total,
		}
	}

	return resp
}

// PricedDocumentListResponse represents a list of priced documents.
type PricedDocumentListResponse struct {
	Items      []*PricedDocumentResponse `json:"items"`
	TotalCount int64                     `json:"totalCount"`
	Limit      int                       `json:"limit"`
	Offset     int                       `json:"offset"`
}
