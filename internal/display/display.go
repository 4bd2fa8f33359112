// Package display is the customer-facing adapter: it renders whatever the
// reconciliation engine holds, and when a payment method appears it fetches
// that method's QR asset so the shopper can pay.
package display

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shoppos/internal/cartsync"
	"shoppos/internal/domain"
)

// Mode is the display's current view.
type Mode string

const (
	// ModeEmpty is rendered before anything arrives and after a reset.
	ModeEmpty Mode = "empty"
	// ModeCart shows the item list and totals.
	ModeCart Mode = "cart"
	// ModePayment shows the QR asset for the chosen payment method.
	ModePayment Mode = "payment"
)

// View is what gets rendered.
type View struct {
	Mode      Mode
	Items     []cartsync.LineItem
	JustAdded *cartsync.LineItem
	Subtotal  float64
	Tax       float64
	Total     float64

	PaymentMethod string
	PaymentInfo   *domain.PaymentType
}

// PaymentInfoFetcher resolves a payment method tag to its display metadata.
type PaymentInfoFetcher interface {
	GetPaymentType(ctx context.Context, method string) (*domain.PaymentType, error)
}

// Display derives the customer-facing view from engine snapshots. The QR
// asset is fetched only when the payment method value changes, never on
// cart-only updates.
type Display struct {
	logger  *slog.Logger
	fetcher PaymentInfoFetcher

	mu         sync.Mutex
	view       View
	lastMethod string
	onRender   func(View)
}

func New(engine *cartsync.Engine, fetcher PaymentInfoFetcher, logger *slog.Logger) *Display {
	d := &Display{
		logger:  logger,
		fetcher: fetcher,
		view:    View{Mode: ModeEmpty},
	}
	engine.OnChange(d.apply)
	return d
}

// OnRender registers the render callback, invoked with a view copy after
// every state change.
func (d *Display) OnRender(fn func(View)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onRender = fn
}

// View returns the current view.
func (d *Display) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewCopyLocked()
}

func (d *Display) apply(snap cartsync.Snapshot) {
	method := ""
	if snap.PaymentMethod != nil {
		method = *snap.PaymentMethod
	}

	d.mu.Lock()
	refetch := method != "" && method != d.lastMethod
	d.lastMethod = method

	d.view.Items = snap.Cart
	d.view.Subtotal = snap.Subtotal
	d.view.Tax = snap.Tax
	d.view.Total = snap.Total
	d.view.PaymentMethod = method
	d.view.JustAdded = nil
	if len(snap.Cart) > 0 {
		last := snap.Cart[len(snap.Cart)-1]
		d.view.JustAdded = &last
	}

	switch {
	case method != "":
		d.view.Mode = ModePayment
	case len(snap.Cart) > 0:
		d.view.Mode = ModeCart
	default:
		d.view.Mode = ModeEmpty
	}
	if method == "" {
		d.view.PaymentInfo = nil
	}
	d.mu.Unlock()

	if refetch {
		d.fetchPaymentInfo(method)
	}
	d.render()
}

func (d *Display) fetchPaymentInfo(method string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := d.fetcher.GetPaymentType(ctx, method)
	if err != nil {
		d.logger.Warn("payment info lookup failed",
			slog.String("method", method),
			slog.String("error", err.Error()))
		info = nil
	}

	d.mu.Lock()
	// A newer snapshot may have changed the method while fetching.
	if d.lastMethod == method {
		d.view.PaymentInfo = info
	}
	d.mu.Unlock()
}

func (d *Display) render() {
	d.mu.Lock()
	fn := d.onRender
	view := d.viewCopyLocked()
	d.mu.Unlock()

	if fn != nil {
		fn(view)
	}
}

func (d *Display) viewCopyLocked() View {
	view := d.view
	if d.view.Items != nil {
		view.Items = make([]cartsync.LineItem, len(d.view.Items))
		copy(view.Items, d.view.Items)
	}
	if d.view.JustAdded != nil {
		last := *d.view.JustAdded
		view.JustAdded = &last
	}
	return view
}
