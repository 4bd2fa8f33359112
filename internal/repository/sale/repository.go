package sale

import (
	"context"

	"shoppos/internal/domain"
)

type ListParams struct {
	Limit  int
	Offset int
}

type Repository interface {
	// Create records the sale and decrements stock for every line in a
	// single transaction. Returns domain.ErrInsufficientStock when any
	// product cannot cover its quantity.
	Create(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	List(ctx context.Context, params ListParams) ([]domain.Sale, int, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
}
