package sale

import (
	"context"
	"fmt"
	"strings"

	"shoppos/internal/domain"
	salerepo "shoppos/internal/repository/sale"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo        saleRepo
	productRepo productRepo
}

type saleRepo interface {
	Create(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	List(ctx context.Context, params salerepo.ListParams) ([]domain.Sale, int, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo saleRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateInput struct {
	CashierID   string      `json:"cashierId"`
	Items       []ItemInput `json:"items"`
	Paid        bool        `json:"paid"`
	PaymentType string      `json:"paymentType"`
}

// Create prices every line from the catalog and records the sale. The
// client never supplies prices or totals.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Sale, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.PaymentType) == "" {
		return nil, fmt.Errorf("%w: paymentType required", domain.ErrInvalidInput)
	}

	sale := domain.Sale{
		ID:          uuid.NewString(),
		CashierID:   strings.TrimSpace(in.CashierID),
		Paid:        in.Paid,
		PaymentType: strings.TrimSpace(in.PaymentType),
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: p.ID,
			Quantity:  item.Quantity,
			Price:     p.Price,
		})
		sale.Total += p.Price * float64(item.Quantity)
	}

	return s.repo.Create(ctx, sale)
}

type Page struct {
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	Total    int           `json:"total"`
	NextPage *int          `json:"nextPage"`
	Results  []domain.Sale `json:"results"`
}

func (s *Service) List(ctx context.Context, page, size int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := s.repo.List(ctx, salerepo.ListParams{
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Sale{}
	}

	result := &Page{Page: page, Size: size, Total: total, Results: items}
	if page*size < total {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Sale, error) {
	return s.repo.GetByID(ctx, id)
}
