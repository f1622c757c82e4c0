package priceddoc

import (
	"context"
	"encoding/json"
	"testing"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/types"
)

func item(name, amount, discount, tax string) Item {
	return Item{
		Name:     name,
		Quantity: types.NewQuantityFromFloat64(1),
		Amount:   types.MustMoney(amount),
		Discount: types.MustMoney(discount),
		Tax:      types.MustMoney(tax),
	}
}

// validDoc builds a document that passes Validate.
func validDoc(kind Kind) *PricedDocument {
	doc := New(kind)
	doc.Subject = "Test document"
	doc.AccountName = "Acme Corp"
	return doc
}

func TestRecalculateTotals(t *testing.T) {
	doc := New(KindInvoice)
	doc.ShippingCost = types.MustMoney("10.00")
	doc.Adjustment = types.MustMoney("-2.50")
	doc.AddItem(item("Widget", "100.00", "5.00", "20.00"))
	doc.AddItem(item("Gadget", "49.99", "0.00", "10.00"))

	doc.RecalculateTotals()

	if got, want := doc.SubTotal, types.MustMoney("149.99"); !got.Equal(want) {
		t.Errorf("SubTotal = %s, want %s", got, want)
	}
	if got, want := doc.DiscountTotal, types.MustMoney("5.00"); !got.Equal(want) {
		t.Errorf("DiscountTotal = %s, want %s", got, want)
	}
	if got, want := doc.TaxTotal, types.MustMoney("30.00"); !got.Equal(want) {
		t.Errorf("TaxTotal = %s, want %s", got, want)
	}
	// 149.99 - 5.00 + 30.00 + 10.00 - 2.50
	if got, want := doc.GrandTotal, types.MustMoney("182.49"); !got.Equal(want) {
		t.Errorf("GrandTotal = %s, want %s", got, want)
	}
}

func TestRecalculateTotals_OrderIndependent(t *testing.T) {
	items := []Item{
		item("A", "10.10", "1.01", "2.02"),
		item("B", "20.20", "0.50", "4.04"),
		item("C", "0.03", "0.00", "0.01"),
	}

	a := New(KindSalesOrder)
	a.SetItems(items)
	a.RecalculateTotals()

	b := New(KindSalesOrder)
	b.SetItems([]Item{items[2], items[0], items[1]})
	b.RecalculateTotals()

	if !a.GrandTotal.Equal(b.GrandTotal) {
		t.Errorf("grand total depends on item order: %s vs %s", a.GrandTotal, b.GrandTotal)
	}
	if !a.SubTotal.Equal(b.SubTotal) {
		t.Errorf("sub total depends on item order: %s vs %s", a.SubTotal, b.SubTotal)
	}
}

func TestRecalculateTotals_EmptyItemsLeavesTotalsUntouched(t *testing.T) {
	doc := New(KindInvoice)
	doc.SubTotal = types.MustMoney("99.00")
	doc.GrandTotal = types.MustMoney("99.00")

	doc.RecalculateTotals()

	if got, want := doc.SubTotal, types.MustMoney("99.00"); !got.Equal(want) {
		t.Errorf("SubTotal = %s, want %s (untouched)", got, want)
	}
	if got, want := doc.GrandTotal, types.MustMoney("99.00"); !got.Equal(want) {
		t.Errorf("GrandTotal = %s, want %s (untouched)", got, want)
	}
}

func TestRecalculateTotals_TrustsSuppliedAmount(t *testing.T) {
	// Amount deliberately inconsistent with quantity * unitPrice.
	// Derivation must not second-guess the caller.
	doc := New(KindInvoice)
	doc.AddItem(Item{
		Name:      "Consulting",
		Quantity:  types.NewQuantityFromFloat64(3),
		UnitPrice: types.MustMoney("100.00"),
		Amount:    types.MustMoney("250.00"),
	})

	doc.RecalculateTotals()

	if got, want := doc.SubTotal, types.MustMoney("250.00"); !got.Equal(want) {
		t.Errorf("SubTotal = %s, want %s (caller-supplied amount)", got, want)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid invoice", func(t *testing.T) {
		doc := validDoc(KindInvoice)
		doc.AddItem(item("Widget", "10.00", "0", "0"))
		if err := doc.Validate(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Status != StatusDraft {
			t.Errorf("default status = %q, want %q", doc.Status, StatusDraft)
		}
	})

	t.Run("valid sales order default status", func(t *testing.T) {
		doc := validDoc(KindSalesOrder)
		if err := doc.Validate(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Status != StatusCreated {
			t.Errorf("default status = %q, want %q", doc.Status, StatusCreated)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		doc := validDoc(KindInvoice)
		doc.Subject = ""
		if err := doc.Validate(ctx); !apperror.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing account name", func(t *testing.T) {
		doc := validDoc(KindInvoice)
		doc.AccountName = ""
		if err := doc.Validate(ctx); !apperror.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("empty currency defaults to USD", func(t *testing.T) {
		doc := validDoc(KindInvoice)
		doc.Currency = ""
		if err := doc.Validate(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Currency != DefaultCurrency {
			t.Errorf("currency = %q, want %q", doc.Currency, DefaultCurrency)
		}
	})

	t.Run("invoice rejects sales order status", func(t *testing.T) {
		doc := validDoc(KindInvoice)
		doc.Status = StatusDelivered
		err := doc.Validate(ctx)
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		doc := New(Kind("quote"))
		if err := doc.Validate(ctx); err == nil {
			t.Fatal("expected validation error for unknown kind")
		}
	})

	t.Run("item without name", func(t *testing.T) {
		doc := validDoc(KindInvoice)
		doc.AddItem(item("", "10.00", "0", "0"))
		if err := doc.Validate(ctx); err == nil {
			t.Fatal("expected validation error for unnamed item")
		}
	})

	t.Run("quantity below one", func(t *testing.T) {
		for _, qty := range []float64{0, -1} {
			doc := validDoc(KindInvoice)
			bad := item("Widget", "10.00", "0", "0")
			bad.Quantity = types.NewQuantityFromFloat64(qty)
			doc.AddItem(bad)
			if err := doc.Validate(ctx); !apperror.IsValidation(err) {
				t.Fatalf("quantity %v: expected validation error, got %v", qty, err)
			}
		}
	})

	t.Run("negative money fields", func(t *testing.T) {
		base := func() Item { return item("Widget", "10.00", "0", "0") }
		cases := map[string]func(*Item){
			"unitPrice": func(it *Item) { it.UnitPrice = types.MustMoney("-5.00") },
			"amount":    func(it *Item) { it.Amount = types.MustMoney("-100.00") },
			"discount":  func(it *Item) { it.Discount = types.MustMoney("-1.00") },
			"tax":       func(it *Item) { it.Tax = types.MustMoney("-2.00") },
			"total":     func(it *Item) { it.Total = types.MustMoney("-10.00") },
		}
		for field, corrupt := range cases {
			doc := validDoc(KindInvoice)
			bad := base()
			corrupt(&bad)
			doc.AddItem(bad)
			if err := doc.Validate(ctx); !apperror.IsValidation(err) {
				t.Fatalf("negative %s: expected validation error, got %v", field, err)
			}
		}
	})
}

func TestDocumentJSONShape(t *testing.T) {
	doc := validDoc(KindInvoice)
	it := item("Widget", "100.00", "0", "0")
	it.ProductReference = "SKU-42"
	it.Total = types.MustMoney("100.00")
	doc.AddItem(it)

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"subject", "accountName", "currency"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("document JSON is missing %q", key)
		}
	}

	items, ok := decoded["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items = %v", decoded["items"])
	}
	line, _ := items[0].(map[string]any)
	for _, key := range []string{"productReference", "total"} {
		if _, ok := line[key]; !ok {
			t.Errorf("item JSON is missing %q", key)
		}
	}
}
