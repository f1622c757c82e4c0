// Package memory provides in-memory repository implementations,
// used in tests and for running the server without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/domain"
	"salesdesk/internal/domain/documents/priceddoc"
)

// PricedDocumentRepo is a thread-safe in-memory priced document store.
type PricedDocumentRepo struct {
	mu    sync.RWMutex
	docs  map[id.ID]*priceddoc.PricedDocument
	items map[id.ID][]priceddoc.Item
}

// NewPricedDocumentRepo creates an empty in-memory repository.
func NewPricedDocumentRepo() *PricedDocumentRepo {
	return &PricedDocumentRepo{
		docs:  make(map[id.ID]*priceddoc.PricedDocument),
		items: make(map[id.ID][]priceddoc.Item),
	}
}

func (r *PricedDocumentRepo) Create(_ context.Context, doc *priceddoc.PricedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[doc.ID]; exists {
		return apperror.NewDuplicate(doc.Kind.EntityName(), "id", doc.ID.String())
	}
	for _, existing := range r.docs {
		if existing.Kind == doc.Kind && existing.Number == doc.Number {
			return apperror.NewDuplicate(doc.Kind.EntityName(), "documentNumber", doc.Number)
		}
	}

	stored := *doc
	stored.Items = nil
	r.docs[doc.ID] = &stored
	return nil
}

func (r *PricedDocumentRepo) GetByID(_ context.Context, docID id.ID) (*priceddoc.PricedDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("document", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (r *PricedDocumentRepo) GetByNumber(_ context.Context, kind priceddoc.Kind, number string) (*priceddoc.PricedDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.docs {
		if doc.Kind == kind && doc.Number == number {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound(kind.EntityName(), number)
}

func (r *PricedDocumentRepo) Update(_ context.Context, doc *priceddoc.PricedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.docs[doc.ID]
	if !ok {
		return apperror.NewNotFound(doc.Kind.EntityName(), doc.ID.String())
	}
	if current.Version != doc.Version {
		return apperror.NewConcurrentModification(doc.Kind.EntityName(), doc.ID)
	}

	stored := *doc
	stored.Items = nil
	stored.Version = current.Version + 1
	r.docs[doc.ID] = &stored
	doc.Version = stored.Version
	return nil
}

func (r *PricedDocumentRepo) Delete(_ context.Context, docID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[docID]; !ok {
		return apperror.NewNotFound("document", docID.String())
	}
	delete(r.docs, docID)
	delete(r.items, docID)
	return nil
}

func (r *PricedDocumentRepo) GetItems(_ context.Context, docID id.ID) ([]priceddoc.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]priceddoc.Item, len(r.items[docID]))
	copy(items, r.items[docID])
	return items, nil
}

func (r *PricedDocumentRepo) SaveItems(_ context.Context, docID id.ID, items []priceddoc.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]priceddoc.Item, len(items))
	copy(stored, items)
	r.items[docID] = stored
	return nil
}

func (r *PricedDocumentRepo) CountByKind(_ context.Context, kind priceddoc.Kind) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, doc := range r.docs {
		if doc.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (r *PricedDocumentRepo) List(_ context.Context, filter priceddoc.ListFilter) (domain.ListResult[*priceddoc.PricedDocument], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*priceddoc.PricedDocument
	for _, doc := range r.docs {
		if !matches(doc, filter) {
			continue
		}
		copied := *doc
		matched = append(matched, &copied)
	}

	// Newest first, stable across calls
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].Number > matched[j].Number
	})

	result := domain.ListResult[*priceddoc.PricedDocument]{
		TotalCount: int64(len(matched)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	result.Items = matched[start:end]

	return result, nil
}

func matches(doc *priceddoc.PricedDocument, filter priceddoc.ListFilter) bool {
	if filter.Kind != nil && doc.Kind != *filter.Kind {
		return false
	}
	if filter.Status != nil && doc.Status != *filter.Status {
		return false
	}
	if filter.AccountID != nil && (doc.AccountID == nil || *doc.AccountID != *filter.AccountID) {
		return false
	}
	if filter.ContactID != nil && (doc.ContactID == nil || *doc.ContactID != *filter.ContactID) {
		return false
	}
	if filter.DateFrom != nil && doc.Date.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && doc.Date.After(*filter.DateTo) {
		return false
	}
	if !filter.IncludeDeleted && doc.DeletionMark {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(doc.Number), needle) &&
			!strings.Contains(strings.ToLower(doc.Subject), needle) &&
			!strings.Contains(strings.ToLower(doc.Comment), needle) {
			return false
		}
	}
	if len(filter.IDs) > 0 {
		found := false
		for _, want := range filter.IDs {
			if doc.ID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
