package entity

import (
	"context"
	"time"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Invoice, SalesOrder.
type Document struct {
	BaseDocument

	// Number is the document number. Empty until the document is first
	// prepared for persistence, assigned exactly once after that.
	Number string `db:"document_number" json:"documentNumber,omitempty"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// HasNumber reports whether the document number has been assigned.
func (d *Document) HasNumber() bool {
	return d.Number != ""
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}
