package cartsync

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngineApply_DuplicateMessageIsNoOp(t *testing.T) {
	engine := NewEngine(testLogger())
	var notified int
	engine.OnChange(func(Snapshot) { notified++ })

	msg := CartUpdate([]LineItem{itemA}, 100, 5, 105)

	assert.True(t, engine.Apply(msg))
	assert.False(t, engine.Apply(msg))
	assert.Equal(t, 1, notified)
}

func TestEngineApply_MergesPartialUpdates(t *testing.T) {
	engine := NewEngine(testLogger())

	require.True(t, engine.Apply(CartUpdate([]LineItem{itemA}, 100, 5, 105)))
	require.True(t, engine.Apply(PaymentUpdate("KPay")))

	snap := engine.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, []LineItem{itemA}, snap.Cart)
	assert.Equal(t, 105.0, snap.Total)
	require.NotNil(t, snap.PaymentMethod)
	assert.Equal(t, "KPay", *snap.PaymentMethod)
}

func TestEngineApply_SuppressionDiscardsPaymentEcho(t *testing.T) {
	engine := NewEngine(testLogger())
	engine.Apply(CartUpdate([]LineItem{itemA}, 100, 5, 105))

	engine.beginSuppression("WavePay")

	// The relay echo arrives before the window ends; local state must stay
	// as the optimistic update already applied.
	assert.False(t, engine.Apply(PaymentUpdate("WavePay")))
	snap := engine.Snapshot()
	require.NotNil(t, snap.PaymentMethod)
	assert.Equal(t, "WavePay", *snap.PaymentMethod)

	// Cart-only updates still pass through while suppressing.
	assert.True(t, engine.Apply(CartUpdate([]LineItem{itemA, itemB}, 600, 30, 630)))

	engine.endSuppression()
	assert.True(t, engine.Apply(PaymentUpdate("KPay")))
}

func TestEngineSnapshot_ReturnsCopy(t *testing.T) {
	engine := NewEngine(testLogger())
	engine.Apply(CartUpdate([]LineItem{itemA}, 100, 5, 105))

	snap := engine.Snapshot()
	snap.Cart[0].Quantity = 42

	assert.Equal(t, 1, engine.Snapshot().Cart[0].Quantity)
}
