package cartsync

import (
	"log/slog"
	"sync"
)

// Engine holds one side's authoritative snapshot and applies inbound relay
// messages to it. A websocket read goroutine and the local caller both
// reach the engine, so state is mutex-guarded; within the lock it behaves
// as the single-writer the protocol assumes.
type Engine struct {
	logger *slog.Logger

	mu          sync.Mutex
	snapshot    *Snapshot
	lastMethod  *string
	suppressing bool
	onChange    func(Snapshot)
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// OnChange registers the render callback. The callback receives a copy and
// runs outside the engine lock.
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// Snapshot returns a copy of the current merged state, nil if nothing has
// been applied yet.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot.Clone()
}

// Apply reconciles an inbound message into the local snapshot. It returns
// false when the message was discarded: either it reconciled to an
// identical snapshot (duplicate delivery) or it carried a paymentMethod
// key while the emitter's own payment message may still echo back through
// the relay.
func (e *Engine) Apply(msg Message) bool {
	e.mu.Lock()
	if e.suppressing && msg.HasPaymentMethod {
		e.mu.Unlock()
		e.logger.Debug("ignoring payment method while suppression window open")
		return false
	}
	changed, notify, snap := e.merge(msg)
	e.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return changed
}

// applyLocal merges a locally emitted message so the emitting side's own
// view reflects the change immediately, without waiting for the relay
// round trip. The suppression gate only guards the inbound path.
func (e *Engine) applyLocal(msg Message) {
	e.mu.Lock()
	_, notify, snap := e.merge(msg)
	e.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

// merge is the shared reconcile step. Caller holds the lock. It returns
// the registered callback and a snapshot copy when subscribers must be
// notified.
func (e *Engine) merge(msg Message) (bool, func(Snapshot), Snapshot) {
	next := Reconcile(e.snapshot, msg)
	if next.Equal(e.snapshot) {
		return false, nil, Snapshot{}
	}
	e.snapshot = next
	if !equalMethod(next.PaymentMethod, e.lastMethod) {
		e.lastMethod = clonePtr(next.PaymentMethod)
	}
	if e.onChange == nil {
		return true, nil, Snapshot{}
	}
	return true, e.onChange, *next.Clone()
}

// paymentMethodEquals reports whether method matches the last payment
// method this engine has seen, sent or received.
func (e *Engine) paymentMethodEquals(method string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastMethod != nil && *e.lastMethod == method
}

// beginSuppression opens the echo window for an outgoing payment-method
// message and optimistically applies the method locally.
func (e *Engine) beginSuppression(method string) {
	e.mu.Lock()
	e.suppressing = true
	e.lastMethod = &method
	_, notify, snap := e.merge(PaymentUpdate(method))
	e.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

func (e *Engine) endSuppression() {
	e.mu.Lock()
	e.suppressing = false
	e.mu.Unlock()
}

// reset returns the engine to the post-transaction state: a zeroed
// snapshot, no tracked payment method, suppression cleared.
func (e *Engine) reset() {
	e.mu.Lock()
	e.snapshot = &Snapshot{Cart: []LineItem{}}
	e.lastMethod = nil
	e.suppressing = false
	notify := e.onChange
	snap := *e.snapshot.Clone()
	e.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
