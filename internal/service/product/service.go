package product

import (
	"context"

	"shoppos/internal/domain"
	productrepo "shoppos/internal/repository/product"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo repo
}

type repo interface {
	List(ctx context.Context, params productrepo.ListParams) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Page is the listing envelope the terminal pages through.
type Page struct {
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Total    int              `json:"total"`
	NextPage *int             `json:"nextPage"`
	Results  []domain.Product `json:"results"`
}

func (s *Service) List(ctx context.Context, page, size int, category string) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := s.repo.List(ctx, productrepo.ListParams{
		Category: category,
		Limit:    size,
		Offset:   (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}

	result := &Page{Page: page, Size: size, Total: total, Results: items}
	if page*size < total {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
