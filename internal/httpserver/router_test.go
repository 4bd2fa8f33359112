package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shoppos/internal/domain"
	productsvc "shoppos/internal/service/product"
	salesvc "shoppos/internal/service/sale"

	"github.com/gin-gonic/gin"
)

type stubProducts struct {
	page    *productsvc.Page
	product *domain.Product
	err     error
}

func (s *stubProducts) List(_ context.Context, page, size int, category string) (*productsvc.Page, error) {
	return s.page, s.err
}

func (s *stubProducts) Get(_ context.Context, _ string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

type stubSales struct {
	created *domain.Sale
	page    *salesvc.Page
	err     error
	lastIn  salesvc.CreateInput
}

func (s *stubSales) Create(_ context.Context, in salesvc.CreateInput) (*domain.Sale, error) {
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubSales) List(_ context.Context, _, _ int) (*salesvc.Page, error) {
	return s.page, s.err
}

func (s *stubSales) Get(_ context.Context, _ string) (*domain.Sale, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

type stubPayments struct {
	types []domain.PaymentType
	err   error
}

func (s *stubPayments) ListActive(_ context.Context) ([]domain.PaymentType, error) {
	return s.types, s.err
}

func (s *stubPayments) GetByType(_ context.Context, paymentType string) (*domain.PaymentType, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.types {
		if s.types[i].Type == paymentType {
			return &s.types[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func testRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if len(deps.CORSOrigins) == 0 {
		deps.CORSOrigins = []string{"*"}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return buildRouter(logger, nil, deps)
}

func TestListProducts(t *testing.T) {
	next := 2
	deps := Deps{
		Products: &stubProducts{page: &productsvc.Page{
			Page: 1, Size: 1, Total: 2, NextPage: &next,
			Results: []domain.Product{{ID: "p1", Name: "Coca Cola", Price: 1200}},
		}},
	}
	router := testRouter(deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?page=1&size=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var page productsvc.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 2 || page.NextPage == nil || *page.NextPage != 2 || len(page.Results) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router := testRouter(Deps{Products: &stubProducts{err: domain.ErrNotFound}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateSale(t *testing.T) {
	sales := &stubSales{created: &domain.Sale{ID: "s1", Total: 2400, PaymentType: "KPay"}}
	router := testRouter(Deps{Sales: sales})

	body := `{"cashierId":"c1","paid":true,"paymentType":"KPay","items":[{"productId":"p1","quantity":2}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if sales.lastIn.PaymentType != "KPay" || len(sales.lastIn.Items) != 1 || sales.lastIn.Items[0].Quantity != 2 {
		t.Fatalf("unexpected input %+v", sales.lastIn)
	}
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	router := testRouter(Deps{Sales: &stubSales{err: domain.ErrInsufficientStock}})

	body := `{"paymentType":"cash","items":[{"productId":"p1","quantity":99}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreateSale_Validation(t *testing.T) {
	router := testRouter(Deps{Sales: &stubSales{err: domain.ErrInvalidInput}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", rec.Code)
	}
}

func TestPaymentTypes(t *testing.T) {
	router := testRouter(Deps{Payments: &stubPayments{types: []domain.PaymentType{
		{ID: "pt1", Type: "KPay", ImageURL: "https://cdn.example/kpay.png", IsActive: true},
	}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/types", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var types []domain.PaymentType
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(types) != 1 || types[0].Type != "KPay" {
		t.Fatalf("unexpected types %+v", types)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/types/KPay", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/types/AyaPay", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(Deps{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
