package memory

import (
	"context"
	"testing"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/types"
	"salesdesk/internal/domain/documents/priceddoc"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newDoc(t *testing.T, kind priceddoc.Kind) *priceddoc.PricedDocument {
	t.Helper()
	doc := priceddoc.New(kind)
	doc.Subject = "Quarterly services"
	doc.AccountName = "Acme Corp"
	doc.AddItem(priceddoc.Item{
		Name:     "Consulting",
		Quantity: types.NewQuantityFromFloat64(2),
		Amount:   types.MustMoney("100.00"),
		Tax:      types.MustMoney("20.00"),
	})
	return doc
}

func TestServiceOverMemoryStore_CreateAssignsSequentialNumbers(t *testing.T) {
	repo := NewPricedDocumentRepo()
	svc := priceddoc.NewService(repo, passthroughTx{})
	ctx := context.Background()

	first := newDoc(t, priceddoc.KindInvoice)
	if err := svc.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := newDoc(t, priceddoc.KindInvoice)
	if err := svc.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	if first.Number == "" || second.Number == "" {
		t.Fatalf("expected numbers assigned, got %q and %q", first.Number, second.Number)
	}
	if first.Number == second.Number {
		t.Fatalf("expected distinct numbers, both %q", first.Number)
	}
	if !priceddoc.NumberPattern.MatchString(first.Number) {
		t.Errorf("number %q does not match expected format", first.Number)
	}
}

func TestServiceOverMemoryStore_SequencesAreIndependentPerKind(t *testing.T) {
	repo := NewPricedDocumentRepo()
	svc := priceddoc.NewService(repo, passthroughTx{})
	ctx := context.Background()

	inv := newDoc(t, priceddoc.KindInvoice)
	if err := svc.Create(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	so := newDoc(t, priceddoc.KindSalesOrder)
	if err := svc.Create(ctx, so); err != nil {
		t.Fatalf("create sales order: %v", err)
	}

	if got := inv.Number[:3]; got != "INV" {
		t.Errorf("invoice prefix = %q, want INV", got)
	}
	if got := so.Number[:2]; got != "SO" {
		t.Errorf("sales order prefix = %q, want SO", got)
	}
}

func TestMemoryStore_DuplicateNumberRejected(t *testing.T) {
	repo := NewPricedDocumentRepo()
	ctx := context.Background()

	doc := newDoc(t, priceddoc.KindInvoice)
	doc.Number = "INV-202601-0001"
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	clash := newDoc(t, priceddoc.KindInvoice)
	clash.Number = "INV-202601-0001"
	err := repo.Create(ctx, clash)
	if !apperror.IsDuplicate(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestMemoryStore_UpdateDetectsStaleVersion(t *testing.T) {
	repo := NewPricedDocumentRepo()
	ctx := context.Background()

	doc := newDoc(t, priceddoc.KindSalesOrder)
	doc.Number = "SO-202601-0001"
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	stale := *doc
	if err := repo.Update(ctx, doc); err != nil {
		t.Fatalf("first update: %v", err)
	}

	err := repo.Update(ctx, &stale)
	if !apperror.IsConcurrentModification(err) {
		t.Fatalf("expected concurrent modification error, got %v", err)
	}
}

func TestMemoryStore_DeleteRemovesDocumentAndItems(t *testing.T) {
	repo := NewPricedDocumentRepo()
	svc := priceddoc.NewService(repo, passthroughTx{})
	ctx := context.Background()

	doc := newDoc(t, priceddoc.KindInvoice)
	if err := svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, doc.ID); !apperror.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	items, err := repo.GetItems(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items after delete, got %d", len(items))
	}
}

func TestMemoryStore_ListFiltersByKindAndStatus(t *testing.T) {
	repo := NewPricedDocumentRepo()
	svc := priceddoc.NewService(repo, passthroughTx{})
	ctx := context.Background()

	for range 3 {
		if err := svc.Create(ctx, newDoc(t, priceddoc.KindInvoice)); err != nil {
			t.Fatalf("create invoice: %v", err)
		}
	}
	if err := svc.Create(ctx, newDoc(t, priceddoc.KindSalesOrder)); err != nil {
		t.Fatalf("create sales order: %v", err)
	}

	kind := priceddoc.KindInvoice
	status := priceddoc.StatusDraft
	res, err := repo.List(ctx, priceddoc.ListFilter{Kind: &kind, Status: &status})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", res.TotalCount)
	}
	for _, doc := range res.Items {
		if doc.Kind != priceddoc.KindInvoice {
			t.Errorf("unexpected kind %q in result", doc.Kind)
		}
	}
}
