package priceddoc

import (
	"context"
	"time"

	"salesdesk/internal/core/id"
	"salesdesk/internal/domain"
)

// Repository defines operations for priced documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *PricedDocument) error
	GetByID(ctx context.Context, docID id.ID) (*PricedDocument, error)
	GetByNumber(ctx context.Context, kind Kind, number string) (*PricedDocument, error)
	Update(ctx context.Context, doc *PricedDocument) error

	// Delete removes the document and its items permanently.
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error

	// CountByKind returns the number of stored documents of the kind.
	// Feeds sequence derivation: the next document gets count+1.
	CountByKind(ctx context.Context, kind Kind) (int64, error)

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PricedDocument], error)
}

// ListFilter for filtering priced documents.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Kind      *Kind
	Status    *string
	AccountID *id.ID
	ContactID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}
