package priceddoc

import (
	"fmt"

	"salesdesk/internal/core/apperror"
)

// Kind discriminates the priced document variants sharing one model.
type Kind string

const (
	KindInvoice    Kind = "invoice"
	KindSalesOrder Kind = "sales_order"
)

// Invoice statuses.
const (
	StatusDraft         = "draft"
	StatusSent          = "sent"
	StatusPaid          = "paid"
	StatusPartiallyPaid = "partially_paid"
	StatusOverdue       = "overdue"
)

// Sales order statuses.
const (
	StatusCreated   = "created"
	StatusApproved  = "approved"
	StatusDelivered = "delivered"
)

// StatusCancelled is shared by both kinds.
const StatusCancelled = "cancelled"

var invoiceStatuses = []string{
	StatusDraft, StatusSent, StatusPaid, StatusPartiallyPaid, StatusOverdue, StatusCancelled,
}

var salesOrderStatuses = []string{
	StatusCreated, StatusApproved, StatusDelivered, StatusCancelled,
}

// ParseKind validates a kind string from transport or storage.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindInvoice, KindSalesOrder:
		return Kind(s), nil
	}
	return "", apperror.NewValidation(fmt.Sprintf("unknown document kind %q", s)).
		WithDetail("field", "kind")
}

// Prefix returns the document number prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindInvoice:
		return "INV"
	case KindSalesOrder:
		return "SO"
	}
	return ""
}

// EntityName returns the display name used in errors and logs.
func (k Kind) EntityName() string {
	switch k {
	case KindInvoice:
		return "Invoice"
	case KindSalesOrder:
		return "SalesOrder"
	}
	return string(k)
}

// DefaultStatus returns the status assigned to new documents of the kind.
func (k Kind) DefaultStatus() string {
	switch k {
	case KindInvoice:
		return StatusDraft
	case KindSalesOrder:
		return StatusCreated
	}
	return ""
}

// Statuses returns the valid status set for the kind.
func (k Kind) Statuses() []string {
	switch k {
	case KindInvoice:
		return invoiceStatuses
	case KindSalesOrder:
		return salesOrderStatuses
	}
	return nil
}

// ValidStatus reports whether the status belongs to the kind's status set.
func (k Kind) ValidStatus(status string) bool {
	for _, s := range k.Statuses() {
		if s == status {
			return true
		}
	}
	return false
}
