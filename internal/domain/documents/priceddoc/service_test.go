package priceddoc

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/core/types"
	"salesdesk/internal/domain"
)

// mockRepository is a func-field test double for Repository.
type mockRepository struct {
	CreateFunc      func(ctx context.Context, doc *PricedDocument) error
	GetByIDFunc     func(ctx context.Context, docID id.ID) (*PricedDocument, error)
	GetByNumberFunc func(ctx context.Context, kind Kind, number string) (*PricedDocument, error)
	UpdateFunc      func(ctx context.Context, doc *PricedDocument) error
	DeleteFunc      func(ctx context.Context, docID id.ID) error
	GetItemsFunc    func(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItemsFunc   func(ctx context.Context, docID id.ID, items []Item) error
	CountByKindFunc func(ctx context.Context, kind Kind) (int64, error)
	ListFunc        func(ctx context.Context, filter ListFilter) (domain.ListResult[*PricedDocument], error)

	countCalls int
}

func (m *mockRepository) Create(ctx context.Context, doc *PricedDocument) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, docID id.ID) (*PricedDocument, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, docID)
	}
	return nil, apperror.NewNotFound("PricedDocument", docID.String())
}

func (m *mockRepository) GetByNumber(ctx context.Context, kind Kind, number string) (*PricedDocument, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, kind, number)
	}
	return nil, apperror.NewNotFound("PricedDocument", number)
}

func (m *mockRepository) Update(ctx context.Context, doc *PricedDocument) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, doc)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, docID id.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, docID)
	}
	return nil
}

func (m *mockRepository) GetItems(ctx context.Context, docID id.ID) ([]Item, error) {
	if m.GetItemsFunc != nil {
		return m.GetItemsFunc(ctx, docID)
	}
	return nil, nil
}

func (m *mockRepository) SaveItems(ctx context.Context, docID id.ID, items []Item) error {
	if m.SaveItemsFunc != nil {
		return m.SaveItemsFunc(ctx, docID, items)
	}
	return nil
}

func (m *mockRepository) CountByKind(ctx context.Context, kind Kind) (int64, error) {
	m.countCalls++
	if m.CountByKindFunc != nil {
		return m.CountByKindFunc(ctx, kind)
	}
	return 0, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PricedDocument], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return domain.ListResult[*PricedDocument]{}, nil
}

var _ Repository = (*mockRepository)(nil)

// mockTxManager runs the callback without a real transaction.
type mockTxManager struct{}

func (mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *mockRepository) *Service {
	svc := NewService(repo, mockTxManager{})
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestServiceCreate_AssignsNumberFromCount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		kind  Kind
		count int64
		want  string
	}{
		{"first invoice", KindInvoice, 0, "INV-202603-0001"},
		{"later invoice", KindInvoice, 41, "INV-202603-0042"},
		{"first sales order", KindSalesOrder, 0, "SO-202603-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				CountByKindFunc: func(ctx context.Context, kind Kind) (int64, error) {
					if kind != tt.kind {
						t.Errorf("counted kind %q, want %q", kind, tt.kind)
					}
					return tt.count, nil
				},
			}
			svc := newTestService(repo)

			doc := validDoc(tt.kind)
			doc.AddItem(item("Widget", "10.00", "0", "0"))

			if err := svc.Create(ctx, doc); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.Number != tt.want {
				t.Errorf("Number = %q, want %q", doc.Number, tt.want)
			}
		})
	}
}

func TestServiceCreate_DerivesTotals(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc := newTestService(repo)

	doc := validDoc(KindInvoice)
	doc.ShippingCost = types.MustMoney("5.00")
	doc.AddItem(item("Widget", "100.00", "10.00", "18.00"))

	if err := svc.Create(ctx, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := doc.GrandTotal, types.MustMoney("113.00"); !got.Equal(want) {
		t.Errorf("GrandTotal = %s, want %s", got, want)
	}
}

func TestPrepareForPersist_NumberingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{
		CountByKindFunc: func(ctx context.Context, kind Kind) (int64, error) {
			t.Fatal("CountByKind must not be called for a numbered document")
			return 0, nil
		},
	}
	svc := newTestService(repo)

	doc := New(KindInvoice)
	doc.Number = "INV-202601-0003"
	doc.AddItem(item("Widget", "10.00", "0", "0"))

	if err := svc.PrepareForPersist(ctx, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Number != "INV-202601-0003" {
		t.Errorf("Number changed to %q, want original preserved", doc.Number)
	}
	if repo.countCalls != 0 {
		t.Errorf("CountByKind called %d times, want 0", repo.countCalls)
	}
}

func TestServiceCreate_DuplicateNumberSurfacesWithoutRetry(t *testing.T) {
	// Two concurrent creates can derive the same sequence before either
	// commits. The second insert fails on the unique index; the error
	// must reach the caller unchanged, with no renumbering attempt.
	ctx := context.Background()
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, doc *PricedDocument) error {
			return apperror.NewDuplicate("Invoice", "document_number", doc.Number)
		},
	}
	svc := newTestService(repo)

	doc := validDoc(KindInvoice)
	doc.AddItem(item("Widget", "10.00", "0", "0"))

	err := svc.Create(ctx, doc)
	if !apperror.IsDuplicate(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if repo.countCalls != 1 {
		t.Errorf("CountByKind called %d times, want exactly 1 (no retry)", repo.countCalls)
	}
}

func TestServiceCreate_CountFailureAbortsBeforeWrite(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{
		CountByKindFunc: func(ctx context.Context, kind Kind) (int64, error) {
			return 0, apperror.NewDatabase(errors.New("connection refused"))
		},
		CreateFunc: func(ctx context.Context, doc *PricedDocument) error {
			t.Fatal("Create must not be called when the count fails")
			return nil
		},
	}
	svc := newTestService(repo)

	doc := validDoc(KindInvoice)
	doc.AddItem(item("Widget", "10.00", "0", "0"))

	err := svc.Create(ctx, doc)
	if err == nil {
		t.Fatal("expected error when the numbering count fails")
	}
	if doc.Number != "" {
		t.Errorf("Number = %q, want empty on aborted create", doc.Number)
	}
}

func TestServiceUpdate_NoItemsLeavesTotalsAlone(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc := newTestService(repo)

	doc := validDoc(KindSalesOrder)
	doc.Number = "SO-202602-0009"
	doc.SubTotal = types.MustMoney("75.00")
	doc.GrandTotal = types.MustMoney("75.00")

	if err := svc.Update(ctx, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := doc.GrandTotal, types.MustMoney("75.00"); !got.Equal(want) {
		t.Errorf("GrandTotal = %s, want %s (untouched)", got, want)
	}
}

func TestServiceCopy_ClearsNumberAndResetsStatus(t *testing.T) {
	ctx := context.Background()

	src := validDoc(KindInvoice)
	src.Number = "INV-202601-0001"
	src.Status = StatusPaid
	src.AddItem(item("Widget", "10.00", "0", "2.00"))
	src.RecalculateTotals()

	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, docID id.ID) (*PricedDocument, error) {
			return src, nil
		},
		GetItemsFunc: func(ctx context.Context, docID id.ID) ([]Item, error) {
			return src.Items, nil
		},
		CountByKindFunc: func(ctx context.Context, kind Kind) (int64, error) {
			return 7, nil
		},
	}
	svc := newTestService(repo)

	dst, err := svc.Copy(ctx, src.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.ID == src.ID {
		t.Error("copy must get a fresh ID")
	}
	if dst.Number != "INV-202603-0008" {
		t.Errorf("copy Number = %q, want freshly assigned INV-202603-0008", dst.Number)
	}
	if dst.Status != StatusDraft {
		t.Errorf("copy Status = %q, want default %q", dst.Status, StatusDraft)
	}
	if len(dst.Items) != 1 || dst.Items[0].LineID == src.Items[0].LineID {
		t.Error("copy items must get fresh line IDs")
	}
}
