package product

import (
	"context"

	"shoppos/internal/domain"
)

// ListParams narrows a catalog listing. Zero values mean no filter
// and repository defaults for paging.
type ListParams struct {
	Category string
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, params ListParams) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
