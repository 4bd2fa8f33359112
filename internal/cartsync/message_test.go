package cartsync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageUnmarshal_PaymentMethodKeyStates(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantHasKey bool
		wantMethod *string
	}{
		{
			name:       "key absent",
			payload:    `{"subtotal": 10}`,
			wantHasKey: false,
		},
		{
			name:       "explicit null",
			payload:    `{"paymentMethod": null}`,
			wantHasKey: true,
			wantMethod: nil,
		},
		{
			name:       "value set",
			payload:    `{"paymentMethod": "KPay"}`,
			wantHasKey: true,
			wantMethod: strPtr("KPay"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg Message
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &msg))
			assert.Equal(t, tt.wantHasKey, msg.HasPaymentMethod)
			assert.Equal(t, tt.wantMethod, msg.PaymentMethod)
		})
	}
}

func TestMessageUnmarshal_IgnoresUnknownFields(t *testing.T) {
	var msg Message
	err := json.Unmarshal([]byte(`{"cart": [], "somethingElse": true}`), &msg)
	require.NoError(t, err)
	require.NotNil(t, msg.Cart)
	assert.Empty(t, *msg.Cart)
}

func TestMessageMarshal_OmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(PaymentUpdate("WavePay"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"paymentMethod": "WavePay"}`, string(data))
}

func TestMessageMarshal_ExplicitNullSurvivesRoundTrip(t *testing.T) {
	data, err := json.Marshal(ResetMessage())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "paymentMethod")
	assert.Equal(t, "null", string(raw["paymentMethod"]))

	var back Message
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.HasPaymentMethod)
	assert.Nil(t, back.PaymentMethod)
	require.NotNil(t, back.Cart)
	assert.Empty(t, *back.Cart)
	assert.Equal(t, 0.0, *back.Subtotal)
	assert.Equal(t, 0.0, *back.Total)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
