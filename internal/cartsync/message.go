package cartsync

import "encoding/json"

// Message is one relay frame: a partial cart snapshot. Every field is
// optional, and a field absent from the message must not override what
// the receiver already knows.
//
// PaymentMethod needs three states on the wire: key absent (leave the
// receiver's value alone), key present with null (explicitly clear), and
// key present with a value. Plain pointer fields cannot distinguish the
// first two after a JSON round trip, so the key's presence is tracked in
// HasPaymentMethod by the custom (un)marshallers.
type Message struct {
	Cart     *[]LineItem
	Subtotal *float64
	Tax      *float64
	Total    *float64

	PaymentMethod    *string
	HasPaymentMethod bool
}

type wireMessage struct {
	Cart     *[]LineItem `json:"cart,omitempty"`
	Subtotal *float64    `json:"subtotal,omitempty"`
	Tax      *float64    `json:"tax,omitempty"`
	Total    *float64    `json:"total,omitempty"`
}

// MarshalJSON emits only fields that are set; paymentMethod is included,
// possibly as an explicit null, when HasPaymentMethod is true.
func (m Message) MarshalJSON() ([]byte, error) {
	raw := map[string]interface{}{}
	if m.Cart != nil {
		raw["cart"] = *m.Cart
	}
	if m.Subtotal != nil {
		raw["subtotal"] = *m.Subtotal
	}
	if m.Tax != nil {
		raw["tax"] = *m.Tax
	}
	if m.Total != nil {
		raw["total"] = *m.Total
	}
	if m.HasPaymentMethod {
		if m.PaymentMethod != nil {
			raw["paymentMethod"] = *m.PaymentMethod
		} else {
			raw["paymentMethod"] = nil
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON is permissive: unknown fields are ignored and missing
// fields stay unset rather than being treated as errors.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	m.Cart = w.Cart
	m.Subtotal = w.Subtotal
	m.Tax = w.Tax
	m.Total = w.Total
	m.PaymentMethod = nil
	m.HasPaymentMethod = false

	if raw, ok := keys["paymentMethod"]; ok {
		m.HasPaymentMethod = true
		if string(raw) != "null" {
			var method string
			if err := json.Unmarshal(raw, &method); err != nil {
				return err
			}
			m.PaymentMethod = &method
		}
	}
	return nil
}

// CartUpdate builds the full totals tuple the terminal sends on every
// cart mutation.
func CartUpdate(cart []LineItem, subtotal, tax, total float64) Message {
	items := cloneCart(cart)
	if items == nil {
		items = []LineItem{}
	}
	return Message{
		Cart:     &items,
		Subtotal: &subtotal,
		Tax:      &tax,
		Total:    &total,
	}
}

// PaymentUpdate builds the payment-method-only message.
func PaymentUpdate(method string) Message {
	return Message{
		PaymentMethod:    &method,
		HasPaymentMethod: true,
	}
}

// ResetMessage is the explicit zeroed snapshot broadcast after a completed
// transaction so the remote side returns to its empty-cart view.
func ResetMessage() Message {
	msg := CartUpdate([]LineItem{}, 0, 0, 0)
	msg.HasPaymentMethod = true
	return msg
}
