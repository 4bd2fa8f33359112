// Package terminal is the cashier-side adapter: it owns the live cart,
// derives totals, and pushes every change through the emission gate so the
// customer display follows along.
package terminal

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"shoppos/internal/apiclient"
	"shoppos/internal/cartsync"
	"shoppos/internal/domain"
)

// taxRate is the flat sales tax applied to the subtotal.
const taxRate = 0.05

// Product is what the scanner or catalog hands to the terminal.
type Product struct {
	ID       string
	Name     string
	Image    string
	Price    float64
	Category string
}

// SaleRecorder records a completed sale with the POS API.
type SaleRecorder interface {
	CreateSale(ctx context.Context, in apiclient.CreateSaleInput) (*domain.Sale, error)
}

// Terminal is the checkout terminal. The terminal is the sole writer of
// cart contents; the display only ever reads the relayed state.
type Terminal struct {
	logger  *slog.Logger
	emitter *cartsync.Emitter
	sales   SaleRecorder

	mu    sync.Mutex
	items []cartsync.LineItem
}

func New(emitter *cartsync.Emitter, sales SaleRecorder, logger *slog.Logger) *Terminal {
	return &Terminal{logger: logger, emitter: emitter, sales: sales}
}

// AddItem puts one unit of the product in the cart, incrementing the
// quantity if the product is already there. Insertion order is preserved:
// the display highlights the most-recently-added line.
func (t *Terminal) AddItem(p Product) {
	t.mu.Lock()
	found := false
	for i := range t.items {
		if t.items[i].ID == p.ID {
			t.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		t.items = append(t.items, cartsync.LineItem{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.Price,
			Quantity: 1,
			Category: p.Category,
		})
	}
	t.mu.Unlock()

	t.emitCart()
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (t *Terminal) UpdateQuantity(id string, quantity int) {
	t.mu.Lock()
	if quantity <= 0 {
		t.removeLocked(id)
	} else {
		for i := range t.items {
			if t.items[i].ID == id {
				t.items[i].Quantity = quantity
				break
			}
		}
	}
	t.mu.Unlock()

	t.emitCart()
}

// RemoveItem drops a line from the cart.
func (t *Terminal) RemoveItem(id string) {
	t.mu.Lock()
	t.removeLocked(id)
	t.mu.Unlock()

	t.emitCart()
}

// Clear empties the cart.
func (t *Terminal) Clear() {
	t.mu.Lock()
	t.items = nil
	t.mu.Unlock()

	t.emitCart()
}

// Items returns a copy of the current cart lines.
func (t *Terminal) Items() []cartsync.LineItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]cartsync.LineItem, len(t.items))
	copy(out, t.items)
	return out
}

// Totals returns subtotal, tax and total for the current cart.
func (t *Terminal) Totals() (subtotal, tax, total float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return totalsOf(t.items)
}

// SelectDigitalPayment pushes the chosen digital payment method so the
// display switches to its QR payment view.
func (t *Terminal) SelectDigitalPayment(method string) {
	t.emitter.EmitPaymentMethod(method)
}

// CompleteSale records the sale with the POS API and, on success, resets
// both the local cart and the remote display state.
func (t *Terminal) CompleteSale(ctx context.Context, paid bool, paymentType string) (*domain.Sale, error) {
	t.mu.Lock()
	if len(t.items) == 0 {
		t.mu.Unlock()
		return nil, errors.New("cart is empty")
	}
	payload := apiclient.CreateSaleInput{
		Items:       make([]apiclient.SaleItemInput, 0, len(t.items)),
		Paid:        paid,
		PaymentType: paymentType,
	}
	for _, item := range t.items {
		payload.Items = append(payload.Items, apiclient.SaleItemInput{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}
	t.mu.Unlock()

	sale, err := t.sales.CreateSale(ctx, payload)
	if err != nil {
		return nil, err
	}
	t.logger.Info("sale recorded",
		slog.String("sale_id", sale.ID),
		slog.Float64("total", sale.Total),
		slog.String("payment_type", paymentType))

	t.mu.Lock()
	t.items = nil
	t.mu.Unlock()
	t.emitter.EmitReset()

	return sale, nil
}

func (t *Terminal) removeLocked(id string) {
	for i := range t.items {
		if t.items[i].ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t *Terminal) emitCart() {
	t.mu.Lock()
	items := make([]cartsync.LineItem, len(t.items))
	copy(items, t.items)
	subtotal, tax, total := totalsOf(t.items)
	t.mu.Unlock()

	t.emitter.EmitCart(items, subtotal, tax, total)
}

func totalsOf(items []cartsync.LineItem) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	tax = subtotal * taxRate
	total = subtotal + tax
	return subtotal, tax, total
}
