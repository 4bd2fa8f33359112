package domain

import "time"

// PaymentType is the display metadata for a digital payment method,
// e.g. the QR image shown on the customer display for "KPay".
type PaymentType struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ImageURL  string    `json:"imageUrl"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
