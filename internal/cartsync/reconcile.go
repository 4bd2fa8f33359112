package cartsync

// Reconcile merges an inbound message into the previous snapshot and
// returns the next snapshot. It is a pure function: neither argument is
// mutated.
//
// Fields present in the message overwrite the previous value; absent
// fields inherit from the previous snapshot unchanged. PaymentMethod
// follows key presence rather than emptiness: a message that explicitly
// sets paymentMethod to null clears it, while a message that simply does
// not mention the key leaves it alone.
func Reconcile(prev *Snapshot, msg Message) *Snapshot {
	next := prev.Clone()
	if next == nil {
		next = &Snapshot{}
	}
	if msg.Cart != nil {
		next.Cart = cloneCart(*msg.Cart)
	}
	if msg.Subtotal != nil {
		next.Subtotal = *msg.Subtotal
	}
	if msg.Tax != nil {
		next.Tax = *msg.Tax
	}
	if msg.Total != nil {
		next.Total = *msg.Total
	}
	if msg.HasPaymentMethod {
		if msg.PaymentMethod != nil {
			m := *msg.PaymentMethod
			next.PaymentMethod = &m
		} else {
			next.PaymentMethod = nil
		}
	}
	return next
}
