// Package apiclient is the typed REST client for the POS API, used by the
// terminal (recording sales) and the display (payment method metadata).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"shoppos/internal/domain"
)

// Client wraps the POS API with a circuit breaker so a struggling backend
// fails fast instead of hanging the checkout flow.
type Client struct {
	base    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	logger  *slog.Logger
}

func New(baseURL string, logger *slog.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "pos-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &Client{
		base:    baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
		logger:  logger,
	}
}

// ProductPage is one page of the product catalog.
type ProductPage struct {
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Total    int              `json:"total"`
	NextPage *int             `json:"nextPage"`
	Results  []domain.Product `json:"results"`
}

// SalePage is one page of recorded sales, newest first.
type SalePage struct {
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	Total    int           `json:"total"`
	NextPage *int          `json:"nextPage"`
	Results  []domain.Sale `json:"results"`
}

// SaleItemInput is one line of a sale being recorded.
type SaleItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleInput is the POST /sales payload.
type CreateSaleInput struct {
	Items       []SaleItemInput `json:"items"`
	Paid        bool            `json:"paid"`
	PaymentType string          `json:"paymentType"`
}

func (c *Client) ListProducts(ctx context.Context, page, size int) (*ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out ProductPage
	if err := c.get(ctx, "/products?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSale(ctx context.Context, in CreateSaleInput) (*domain.Sale, error) {
	var out domain.Sale
	if err := c.post(ctx, "/sales", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSales(ctx context.Context, page, size int) (*SalePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out SalePage
	if err := c.get(ctx, "/sales?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	var out []domain.PaymentType
	if err := c.get(ctx, "/payment/types", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPaymentType looks up the display metadata (QR asset) for one payment
// method tag.
func (c *Client) GetPaymentType(ctx context.Context, method string) (*domain.PaymentType, error) {
	var out domain.PaymentType
	if err := c.get(ctx, "/payment/types/"+url.PathEscape(method), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return domain.ErrNotFound
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
