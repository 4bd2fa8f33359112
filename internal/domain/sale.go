package domain

import "time"

type Sale struct {
	ID          string     `json:"id"`
	CashierID   string     `json:"cashierId"`
	Total       float64    `json:"total"`
	Paid        bool       `json:"paid"`
	PaymentType string     `json:"paymentType"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Items       []SaleItem `json:"items,omitempty"`
}

type SaleItem struct {
	ID        string    `json:"id"`
	SaleID    string    `json:"saleId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	Product   *Product  `json:"product,omitempty"`
}
