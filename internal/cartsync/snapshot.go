// Package cartsync keeps one checkout session's cart state consistent
// between the cashier terminal and the customer-facing display. The two
// sides share nothing but a relay channel that fans messages out to every
// party connected under the same session key, so each side reconciles
// inbound messages into its own local snapshot.
package cartsync

// LineItem is one cart row. JSON field names are the wire format shared
// with the relay and must not change independently of the display client.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

// Snapshot is the authoritative local cart state on one side of the channel.
// Totals are computed by the terminal and carried pre-computed; the display
// never recomputes them. A nil PaymentMethod means no method was chosen.
type Snapshot struct {
	Cart          []LineItem
	Subtotal      float64
	Tax           float64
	Total         float64
	PaymentMethod *string
}

// Clone returns a deep copy so subscribers never share the cart slice.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Cart:     cloneCart(s.Cart),
		Subtotal: s.Subtotal,
		Tax:      s.Tax,
		Total:    s.Total,
	}
	if s.PaymentMethod != nil {
		m := *s.PaymentMethod
		out.PaymentMethod = &m
	}
	return out
}

// Equal reports whether two snapshots carry the same state. Re-delivery of
// a message that reconciles to an identical snapshot must be a no-op, so
// this is the idempotence check.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Subtotal != o.Subtotal || s.Tax != o.Tax || s.Total != o.Total {
		return false
	}
	if !equalMethod(s.PaymentMethod, o.PaymentMethod) {
		return false
	}
	if len(s.Cart) != len(o.Cart) {
		return false
	}
	for i := range s.Cart {
		if s.Cart[i] != o.Cart[i] {
			return false
		}
	}
	return true
}

func cloneCart(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func equalMethod(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
