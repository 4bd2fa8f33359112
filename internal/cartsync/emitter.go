package cartsync

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultSuppressionWindow is how long inbound payment-method updates are
// discarded after emitting one, long enough for the relay to echo the
// message back to its sender. It is a heuristic: a round trip slower than
// the window can still let an echo through, which is harmless because the
// echo carries the value already applied optimistically.
const DefaultSuppressionWindow = 100 * time.Millisecond

// Sender is the outbound half of the relay channel. Emission is
// fire-and-forget: when the channel reports not connected the emitter
// silently drops the message, the sale's record of truth lives in the
// backend API rather than on this channel.
type Sender interface {
	Send(Message) error
	IsConnected() bool
}

// Emitter decides when local mutations are pushed to the relay.
type Emitter struct {
	engine *Engine
	sender Sender
	logger *slog.Logger
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// EmitterOption tweaks emitter construction.
type EmitterOption func(*Emitter)

// WithSuppressionWindow overrides the echo-suppression window.
func WithSuppressionWindow(d time.Duration) EmitterOption {
	return func(e *Emitter) { e.window = d }
}

func NewEmitter(engine *Engine, sender Sender, logger *slog.Logger, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		engine: engine,
		sender: sender,
		logger: logger,
		window: DefaultSuppressionWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmitCart pushes the full totals tuple. The terminal is the sole writer
// of cart contents, so there is no feedback-loop risk on this path and no
// suppression: every change is sent, last write wins.
func (e *Emitter) EmitCart(cart []LineItem, subtotal, tax, total float64) {
	if !e.sender.IsConnected() {
		return
	}
	msg := CartUpdate(cart, subtotal, tax, total)
	e.engine.applyLocal(msg)
	if err := e.sender.Send(msg); err != nil {
		e.logger.Warn("cart emit failed", slog.String("error", err.Error()))
	}
}

// EmitPaymentMethod pushes a payment-method-only message. Re-emitting the
// method last seen is skipped at the source. Otherwise the engine opens
// the suppression window, applies the method locally so the cashier's UI
// does not wait for the round trip, and the window is closed by timer.
func (e *Emitter) EmitPaymentMethod(method string) {
	if !e.sender.IsConnected() {
		return
	}
	if e.engine.paymentMethodEquals(method) {
		e.logger.Debug("payment method unchanged, skipping emit", slog.String("method", method))
		return
	}

	e.engine.beginSuppression(method)
	if err := e.sender.Send(PaymentUpdate(method)); err != nil {
		e.logger.Warn("payment method emit failed", slog.String("error", err.Error()))
	}

	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.window, e.engine.endSuppression)
	e.mu.Unlock()
}

// EmitReset clears all local tracked state and broadcasts the explicit
// zeroed snapshot so the remote side returns to its empty-cart view. Local
// state is cleared even when the channel is down.
func (e *Emitter) EmitReset() {
	e.stopTimer()
	e.engine.reset()
	if !e.sender.IsConnected() {
		return
	}
	if err := e.sender.Send(ResetMessage()); err != nil {
		e.logger.Warn("reset emit failed", slog.String("error", err.Error()))
	}
}

// Close cancels any pending suppression timer. Called on channel teardown
// so no timer fires after the owning session ended.
func (e *Emitter) Close() {
	e.stopTimer()
	e.engine.endSuppression()
}

func (e *Emitter) stopTimer() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()
}
