// Package priceddoc provides the priced document model shared by
// invoices and sales orders: a numbered document with line items,
// addresses and derived monetary totals.
package priceddoc

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/entity"
	"salesdesk/internal/core/id"
	"salesdesk/internal/core/types"
)

// DefaultCurrency is assigned to documents created without a currency.
const DefaultCurrency = "USD"

var minQuantity = types.NewQuantityFromFloat64(1)

// Address is a postal address stored as JSONB.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Code    string `json:"code,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsZero reports whether all address fields are empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Value implements driver.Valuer for JSONB storage.
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (a *Address) Scan(src any) error {
	if src == nil {
		*a = Address{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return fmt.Errorf("cannot scan %T into Address", src)
}

// PricedDocument represents an invoice or a sales order. The two kinds
// share identical pricing semantics and differ only in number prefix
// and status set.
type PricedDocument struct {
	entity.Document

	// Kind discriminates invoice vs sales order
	Kind Kind `db:"kind" json:"kind"`

	// Subject is the short human-readable title of the document
	Subject string `db:"subject" json:"subject"`

	// Status within the kind's status set
	Status string `db:"status" json:"status"`

	// AccountName is the customer name as entered on the document.
	// AccountID/ContactID additionally link to catalog entries when known.
	AccountName string `db:"account_name" json:"accountName"`
	AccountID   *id.ID `db:"account_id" json:"accountId,omitempty"`
	ContactID   *id.ID `db:"contact_id" json:"contactId,omitempty"`

	// Currency of all monetary fields, ISO code
	Currency string `db:"currency" json:"currency"`

	// Addresses
	BillingAddress  Address `db:"billing_address" json:"billingAddress"`
	ShippingAddress Address `db:"shipping_address" json:"shippingAddress"`

	// Derived totals. Recomputed from items on each prepare when the
	// document has at least one item, left untouched otherwise.
	SubTotal      types.Money `db:"sub_total" json:"subTotal"`
	DiscountTotal types.Money `db:"discount_total" json:"discountTotal"`
	TaxTotal      types.Money `db:"tax_total" json:"taxTotal"`

	// Caller-supplied charges participating in the grand total
	ShippingCost types.Money `db:"shipping_cost" json:"shippingCost"`
	Adjustment   types.Money `db:"adjustment" json:"adjustment"`

	GrandTotal types.Money `db:"grand_total" json:"grandTotal"`

	// Table part: line items
	Items []Item `db:"-" json:"items"`
}

// Item represents a line item of a priced document. Amount and Total
// are supplied by the caller and trusted as-is; neither is derived
// from quantity and unit price here.
type Item struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductReference string `db:"product_reference" json:"productReference,omitempty"`
	Name             string `db:"name" json:"name"`
	Description      string `db:"description" json:"description,omitempty"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`

	Amount   types.Money `db:"amount" json:"amount"`
	Discount types.Money `db:"discount" json:"discount"`
	Tax      types.Money `db:"tax" json:"tax"`
	Total    types.Money `db:"total" json:"total"`
}

// New creates a new priced document of the given kind with the kind's
// default status.
func New(kind Kind) *PricedDocument {
	return &PricedDocument{
		Document: entity.NewDocument(),
		Kind:     kind,
		Status:   kind.DefaultStatus(),
		Currency: DefaultCurrency,
		Items:    make([]Item, 0),
	}
}

// AddItem appends a line item, assigning line identity.
func (d *PricedDocument) AddItem(item Item) {
	if id.IsNil(item.LineID) {
		item.LineID = id.New()
	}
	item.LineNo = len(d.Items) + 1
	d.Items = append(d.Items, item)
}

// SetItems replaces the line items, renumbering them.
func (d *PricedDocument) SetItems(items []Item) {
	d.Items = make([]Item, 0, len(items))
	for _, item := range items {
		d.AddItem(item)
	}
}

// RecalculateTotals derives the document totals from its items.
//
// A document with no items is left untouched: totals keep whatever
// values they already carry. Items' amount, discount and tax are
// trusted as supplied by the caller.
func (d *PricedDocument) RecalculateTotals() {
	if len(d.Items) == 0 {
		return
	}

	subTotal := types.Zero()
	discountTotal := types.Zero()
	taxTotal := types.Zero()

	for _, item := range d.Items {
		subTotal = subTotal.Add(item.Amount)
		discountTotal = discountTotal.Add(item.Discount)
		taxTotal = taxTotal.Add(item.Tax)
	}

	d.SubTotal = subTotal
	d.DiscountTotal = discountTotal
	d.TaxTotal = taxTotal
	d.GrandTotal = subTotal.
		Sub(discountTotal).
		Add(taxTotal).
		Add(d.ShippingCost).
		Add(d.Adjustment)
}

// Validate implements entity.Validatable.
func (d *PricedDocument) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if _, err := ParseKind(string(d.Kind)); err != nil {
		return err
	}

	if d.Subject == "" {
		return apperror.NewValidation("subject is required").
			WithDetail("field", "subject")
	}
	if d.AccountName == "" {
		return apperror.NewValidation("accountName is required").
			WithDetail("field", "accountName")
	}
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}

	if d.Status == "" {
		d.Status = d.Kind.DefaultStatus()
	}
	if !d.Kind.ValidStatus(d.Status) {
		return apperror.NewValidation(fmt.Sprintf("invalid %s status %q", d.Kind.EntityName(), d.Status)).
			WithDetail("field", "status").
			WithDetail("allowed", d.Kind.Statuses())
	}

	for i, item := range d.Items {
		if err := item.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("lineNo", i+1)
			}
			return err
		}
	}

	return nil
}

// Validate checks the line item field minimums. Amount and Total stay
// caller-trusted for consistency; only their sign is checked.
func (it Item) Validate() error {
	if it.Name == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "items")
	}
	if it.Quantity < minQuantity {
		return apperror.NewValidation("item quantity must be at least 1").
			WithDetail("field", "quantity")
	}
	for _, m := range []struct {
		field string
		value types.Money
	}{
		{"unitPrice", it.UnitPrice},
		{"amount", it.Amount},
		{"discount", it.Discount},
		{"tax", it.Tax},
		{"total", it.Total},
	} {
		if m.value.IsNegative() {
			return apperror.NewValidation("item " + m.field + " cannot be negative").
				WithDetail("field", m.field)
		}
	}
	return nil
}

// EntityName returns the display name of the concrete document kind.
func (d *PricedDocument) EntityName() string {
	return d.Kind.EntityName()
}

var _ entity.Validatable = (*PricedDocument)(nil)
