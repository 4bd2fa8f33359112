package seed

import (
	"context"
	"fmt"
	"log/slog"

	"shoppos/internal/domain"
	paymentrepo "shoppos/internal/repository/payment"
	productrepo "shoppos/internal/repository/product"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts demo catalog and payment data for manual testing.
// It is idempotent via the repositories' upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	products := productrepo.NewPostgres(pool, logger)
	payments := paymentrepo.NewPostgres(pool, logger)

	catalog := []domain.Product{
		{SKU: "DRK-COLA-330", Name: "Coca Cola 330ml", Price: 1200, ImportPrice: 900, Stock: 48, Category: "drink", Image: "https://cdn.example/products/cola.png"},
		{SKU: "DRK-WATER-500", Name: "Alpine Water 500ml", Price: 500, ImportPrice: 300, Stock: 120, Category: "drink", Image: "https://cdn.example/products/water.png"},
		{SKU: "SNK-LAYS-60", Name: "Lays Classic 60g", Price: 2500, ImportPrice: 1800, Stock: 36, Category: "snack", Image: "https://cdn.example/products/lays.png"},
		{SKU: "SNK-OREO-133", Name: "Oreo Original 133g", Price: 1800, ImportPrice: 1300, Stock: 40, Category: "snack", Image: "https://cdn.example/products/oreo.png"},
		{SKU: "HHG-SOAP-90", Name: "Shwe Wah Soap 90g", Price: 800, ImportPrice: 550, Stock: 60, Category: "household", Image: "https://cdn.example/products/soap.png"},
	}
	for _, p := range catalog {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	types := []domain.PaymentType{
		{Type: "KPay", ImageURL: "https://cdn.example/payments/kpay-qr.png", IsActive: true},
		{Type: "WavePay", ImageURL: "https://cdn.example/payments/wavepay-qr.png", IsActive: true},
		{Type: "AyaPay", ImageURL: "https://cdn.example/payments/ayapay-qr.png", IsActive: false},
	}
	for _, pt := range types {
		if _, err := payments.Upsert(ctx, pt); err != nil {
			return fmt.Errorf("upsert payment type %s: %w", pt.Type, err)
		}
	}

	logger.Info("seed applied", "products", len(catalog), "payment_types", len(types))
	return nil
}
