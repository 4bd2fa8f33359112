package payment

import (
	"context"

	"shoppos/internal/domain"
)

type Repository interface {
	ListActive(ctx context.Context) ([]domain.PaymentType, error)
	GetByType(ctx context.Context, paymentType string) (*domain.PaymentType, error)
	Upsert(ctx context.Context, pt domain.PaymentType) (*domain.PaymentType, error)
}
