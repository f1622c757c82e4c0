package priceddoc

import (
	"context"
	"fmt"
	"time"

	"salesdesk/internal/core/id"
	"salesdesk/internal/core/tx"
	"salesdesk/internal/domain"
	"salesdesk/pkg/logger"
)

// Service provides business operations for priced documents. One
// service instance handles both invoices and sales orders; the kind
// travels on the document itself.
type Service struct {
	repo      Repository
	txManager tx.Manager
	hooks     *domain.HookRegistry[*PricedDocument]

	now func() time.Time
}

// NewService creates a new priced document service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*PricedDocument](),
		now:       time.Now,
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*PricedDocument] {
	return s.hooks
}

// PrepareForPersist brings a document into a persistable state:
// assigns the document number when absent and re-derives totals.
//
// Numbering is idempotent by presence: a document that already carries
// a number keeps it. The sequence is the count of all stored documents
// of the kind plus one; it is read outside the write transaction, so
// two concurrent saves can derive the same number. The unique index on
// (kind, document_number) catches that and the caller sees a duplicate
// error rather than a silent retry.
func (s *Service) PrepareForPersist(ctx context.Context, doc *PricedDocument) error {
	if !doc.HasNumber() {
		count, err := s.repo.CountByKind(ctx, doc.Kind)
		if err != nil {
			return fmt.Errorf("count %s documents: %w", doc.Kind, err)
		}
		doc.Number = FormatNumber(doc.Kind, s.now().UTC(), count+1)
	}

	doc.RecalculateTotals()
	return nil
}

// Create persists a new priced document with its items.
func (s *Service) Create(ctx context.Context, doc *PricedDocument) error {
	// Run before-create hooks (for enrichment, validation, etc.)
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	// Validate
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Assign number and derive totals
	if err := s.PrepareForPersist(ctx, doc); err != nil {
		return err
	}

	// Create in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveItems(ctx, doc.ID, doc.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Run after-create hooks
	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "priced document created",
		"kind", doc.Kind,
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a priced document with items.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PricedDocument, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items

	return doc, nil
}

// GetByNumber retrieves a priced document by kind and number.
func (s *Service) GetByNumber(ctx context.Context, kind Kind, number string) (*PricedDocument, error) {
	doc, err := s.repo.GetByNumber(ctx, kind, number)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items

	return doc, nil
}

// Update persists changes to an existing priced document.
func (s *Service) Update(ctx context.Context, doc *PricedDocument) error {
	// Run before-update hooks
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	// Validate
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Number stays as assigned; totals are re-derived from items
	if err := s.PrepareForPersist(ctx, doc); err != nil {
		return err
	}

	// Update in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveItems(ctx, doc.ID, doc.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Run after-update hooks
	if err := s.hooks.RunAfterUpdate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	return nil
}

// Delete permanently removes a priced document and its items.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.hooks.RunBeforeDelete(ctx, doc); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterDelete(ctx, doc); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "error", err)
	}

	logger.Info(ctx, "priced document deleted",
		"kind", doc.Kind,
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// Copy creates a new document from an existing one. The copy gets a
// fresh identity and an empty number, so the next save numbers it as
// a new document. Status resets to the kind's default.
func (s *Service) Copy(ctx context.Context, docID id.ID) (*PricedDocument, error) {
	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	dst := New(src.Kind)
	dst.Subject = src.Subject
	dst.AccountName = src.AccountName
	dst.Currency = src.Currency
	dst.AccountID = src.AccountID
	dst.ContactID = src.ContactID
	dst.BillingAddress = src.BillingAddress
	dst.ShippingAddress = src.ShippingAddress
	dst.ShippingCost = src.ShippingCost
	dst.Adjustment = src.Adjustment
	dst.Comment = src.Comment
	for _, item := range src.Items {
		dst.AddItem(Item{
			ProductReference: item.ProductReference,
			Name:             item.Name,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Amount:           item.Amount,
			Discount:         item.Discount,
			Tax:              item.Tax,
			Total:            item.Total,
		})
	}

	if err := s.Create(ctx, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

// List retrieves priced documents with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PricedDocument], error) {
	return s.repo.List(ctx, filter)
}
