package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"salesdesk/internal/domain/documents/priceddoc"
	"salesdesk/internal/infrastructure/http/v1/dto"
	"salesdesk/internal/infrastructure/http/v1/middleware"
	"salesdesk/internal/infrastructure/storage/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *priceddoc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewPricedDocumentRepo()
	svc := priceddoc.NewService(repo, memory.NewTxManager())

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	base := NewBaseHandler()
	handler := NewPricedDocumentHandler(base, svc, priceddoc.KindInvoice)
	handler.RegisterRoutes(router.Group("/invoices"))

	return router, svc
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createPayload() map[string]any {
	return map[string]any{
		"subject":     "Quarterly services",
		"accountName": "Acme Corp",
		"date":        "2026-03-15T10:00:00Z",
		"items": []map[string]any{
			{
				"name":     "Subscription",
				"quantity": 1,
				"amount":   "100.00",
				"tax":      "20.00",
			},
		},
	}
}

func TestCreateInvoice_AssignsNumberAndTotals(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodPost, "/invoices", createPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp dto.PricedDocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if !priceddoc.NumberPattern.MatchString(resp.Number) {
		t.Errorf("documentNumber %q does not match expected format", resp.Number)
	}
	if resp.Status != "draft" {
		t.Errorf("status = %q, want draft", resp.Status)
	}
	if !resp.GrandTotal.Equal(decimal.NewFromInt(120)) {
		t.Errorf("grandTotal = %s, want 120", resp.GrandTotal)
	}
	if resp.Currency != "USD" {
		t.Errorf("currency = %q, want default USD", resp.Currency)
	}
}

func TestCreateInvoice_RejectsMalformedAccountID(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := createPayload()
	payload["accountId"] = "not-a-uuid"

	w := performRequest(router, http.MethodPost, "/invoices", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestListInvoices_RejectsMalformedAccountIDFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodGet, "/invoices?accountId=not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestCreateInvoice_RejectsInvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodPost, "/invoices", map[string]any{
		"items": []map[string]any{{"name": "no date"}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestGetInvoice_ByIDAndByNumber(t *testing.T) {
	router, _ := newTestRouter(t)

	created := performRequest(router, http.MethodPost, "/invoices", createPayload())
	var resp dto.PricedDocumentResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	byID := performRequest(router, http.MethodGet, "/invoices/"+resp.ID, nil)
	if byID.Code != http.StatusOK {
		t.Fatalf("get by id status = %d", byID.Code)
	}

	byNumber := performRequest(router, http.MethodGet, "/invoices/by-number/"+resp.Number, nil)
	if byNumber.Code != http.StatusOK {
		t.Fatalf("get by number status = %d, body %s", byNumber.Code, byNumber.Body.String())
	}

	missing := performRequest(router, http.MethodGet, "/invoices/by-number/INV-209901-0001", nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing number status = %d, want 404", missing.Code)
	}
}

func TestUpdateInvoice_WithoutItemsKeepsTotals(t *testing.T) {
	router, _ := newTestRouter(t)

	created := performRequest(router, http.MethodPost, "/invoices", createPayload())
	var resp dto.PricedDocumentResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	update := map[string]any{
		"comment": "payment terms updated",
		"version": resp.Version,
	}
	w := performRequest(router, http.MethodPut, "/invoices/"+resp.ID, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	var updated dto.PricedDocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if updated.Comment != "payment terms updated" {
		t.Errorf("comment = %q", updated.Comment)
	}
	if !updated.GrandTotal.Equal(decimal.NewFromInt(120)) {
		t.Errorf("grandTotal after update = %s, want 120", updated.GrandTotal)
	}
	if updated.Number != resp.Number {
		t.Errorf("number changed on update: %q -> %q", resp.Number, updated.Number)
	}
}

func TestCopyInvoice_NumbersTheCopyFresh(t *testing.T) {
	router, _ := newTestRouter(t)

	created := performRequest(router, http.MethodPost, "/invoices", createPayload())
	var resp dto.PricedDocumentResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	w := performRequest(router, http.MethodPost, "/invoices/"+resp.ID+"/copy", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("copy status = %d, body %s", w.Code, w.Body.String())
	}

	var copied dto.PricedDocumentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &copied); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if copied.ID == resp.ID {
		t.Error("copy has same id as source")
	}
	if copied.Number == resp.Number {
		t.Errorf("copy has same number as source: %q", copied.Number)
	}
	if len(copied.Items) != 1 {
		t.Fatalf("copy items = %d, want 1", len(copied.Items))
	}
}

func TestDeleteInvoice_RemovesDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	created := performRequest(router, http.MethodPost, "/invoices", createPayload())
	var resp dto.PricedDocumentResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	w := performRequest(router, http.MethodDelete, "/invoices/"+resp.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	gone := performRequest(router, http.MethodGet, "/invoices/"+resp.ID, nil)
	if gone.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", gone.Code)
	}
}

func TestListInvoices_FiltersByStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 0; i < 2; i++ {
		if w := performRequest(router, http.MethodPost, "/invoices", createPayload()); w.Code != http.StatusCreated {
			t.Fatalf("create status = %d", w.Code)
		}
	}

	w := performRequest(router, http.MethodGet, "/invoices?status=draft", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", w.Code, w.Body.String())
	}

	var list dto.PricedDocumentListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if list.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2", list.TotalCount)
	}

	bad := performRequest(router, http.MethodGet, "/invoices?status=bogus", nil)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("unknown status filter = %d, want 400", bad.Code)
	}
}
