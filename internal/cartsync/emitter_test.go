package cartsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	connected bool
	sent      []Message
}

func (f *fakeSender) Send(msg Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) IsConnected() bool { return f.connected }

func newTestEmitter(t *testing.T, sender *fakeSender) (*Engine, *Emitter) {
	t.Helper()
	engine := NewEngine(testLogger())
	emitter := NewEmitter(engine, sender, testLogger(), WithSuppressionWindow(25*time.Millisecond))
	t.Cleanup(emitter.Close)
	return engine, emitter
}

func TestEmitCart_SendsAndAppliesLocally(t *testing.T) {
	sender := &fakeSender{connected: true}
	engine, emitter := newTestEmitter(t, sender)

	emitter.EmitCart([]LineItem{itemA}, 100, 5, 105)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []LineItem{itemA}, *msg.Cart)
	assert.Equal(t, 100.0, *msg.Subtotal)
	assert.Equal(t, 5.0, *msg.Tax)
	assert.Equal(t, 105.0, *msg.Total)
	assert.False(t, msg.HasPaymentMethod)

	snap := engine.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 105.0, snap.Total)
}

func TestEmit_DroppedWhileDisconnected(t *testing.T) {
	sender := &fakeSender{connected: false}
	engine, emitter := newTestEmitter(t, sender)

	emitter.EmitCart([]LineItem{itemA}, 100, 5, 105)
	emitter.EmitPaymentMethod("KPay")

	assert.Empty(t, sender.sent)
	assert.Nil(t, engine.Snapshot())
}

func TestEmitPaymentMethod_SkipsRedundantEmit(t *testing.T) {
	sender := &fakeSender{connected: true}
	_, emitter := newTestEmitter(t, sender)

	emitter.EmitPaymentMethod("KPay")
	emitter.EmitPaymentMethod("KPay")

	require.Len(t, sender.sent, 1)
	require.NotNil(t, sender.sent[0].PaymentMethod)
	assert.Equal(t, "KPay", *sender.sent[0].PaymentMethod)
	assert.Nil(t, sender.sent[0].Cart)
}

func TestEmitPaymentMethod_SuppressesEchoWithinWindow(t *testing.T) {
	sender := &fakeSender{connected: true}
	engine, emitter := newTestEmitter(t, sender)
	engine.Apply(CartUpdate([]LineItem{itemA}, 100, 5, 105))

	emitter.EmitPaymentMethod("WavePay")

	// Echo arrives before the window elapses: discarded, state unchanged
	// from the optimistic update.
	assert.False(t, engine.Apply(PaymentUpdate("WavePay")))
	snap := engine.Snapshot()
	require.NotNil(t, snap.PaymentMethod)
	assert.Equal(t, "WavePay", *snap.PaymentMethod)

	// After the window a genuinely new method is accepted again.
	time.Sleep(60 * time.Millisecond)
	assert.True(t, engine.Apply(PaymentUpdate("KPay")))
}

func TestEmitPaymentMethod_AppliesOptimistically(t *testing.T) {
	sender := &fakeSender{connected: true}
	engine, emitter := newTestEmitter(t, sender)
	emitter.EmitCart([]LineItem{itemA}, 100, 5, 105)

	emitter.EmitPaymentMethod("KPay")

	snap := engine.Snapshot()
	require.NotNil(t, snap.PaymentMethod)
	assert.Equal(t, "KPay", *snap.PaymentMethod)
	assert.Equal(t, []LineItem{itemA}, snap.Cart)
}

func TestEmitReset_ClearsEverything(t *testing.T) {
	sender := &fakeSender{connected: true}
	engine, emitter := newTestEmitter(t, sender)
	emitter.EmitCart([]LineItem{itemA}, 100, 5, 105)
	emitter.EmitPaymentMethod("WavePay")

	emitter.EmitReset()

	snap := engine.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Cart)
	assert.Equal(t, 0.0, snap.Subtotal)
	assert.Equal(t, 0.0, snap.Tax)
	assert.Equal(t, 0.0, snap.Total)
	assert.Nil(t, snap.PaymentMethod)

	last := sender.sent[len(sender.sent)-1]
	assert.True(t, last.HasPaymentMethod)
	assert.Nil(t, last.PaymentMethod)
	assert.Empty(t, *last.Cart)

	// Tracking state cleared: the same method emits again after reset, and
	// inbound payment updates are no longer suppressed.
	emitter.EmitPaymentMethod("WavePay")
	assert.Equal(t, "WavePay", *sender.sent[len(sender.sent)-1].PaymentMethod)
}

func TestEmitReset_LocalStateClearedWhileDisconnected(t *testing.T) {
	sender := &fakeSender{connected: true}
	engine, emitter := newTestEmitter(t, sender)
	emitter.EmitCart([]LineItem{itemA}, 100, 5, 105)

	sender.connected = false
	sent := len(sender.sent)
	emitter.EmitReset()

	assert.Len(t, sender.sent, sent)
	assert.Empty(t, engine.Snapshot().Cart)
}
