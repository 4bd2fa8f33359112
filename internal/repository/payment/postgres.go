package payment

import (
	"context"
	"errors"
	"log/slog"

	"shoppos/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.PaymentType, error) {
	const q = `
SELECT id::text, type, image_url, is_active, created_at, updated_at
FROM payment_types
WHERE is_active
ORDER BY type
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("payment repo: list", "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentType
	for rows.Next() {
		var pt domain.PaymentType
		if err := rows.Scan(&pt.ID, &pt.Type, &pt.ImageURL, &pt.IsActive, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, pt)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByType(ctx context.Context, paymentType string) (*domain.PaymentType, error) {
	const q = `
SELECT id::text, type, image_url, is_active, created_at, updated_at
FROM payment_types
WHERE type = $1
`
	var pt domain.PaymentType
	err := r.pool.QueryRow(ctx, q, paymentType).Scan(&pt.ID, &pt.Type, &pt.ImageURL, &pt.IsActive, &pt.CreatedAt, &pt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("payment repo: get", "type", paymentType, "error", err)
		return nil, err
	}
	return &pt, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, pt domain.PaymentType) (*domain.PaymentType, error) {
	const q = `
INSERT INTO payment_types (id, type, image_url, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4)
ON CONFLICT (type) DO UPDATE SET
    image_url = EXCLUDED.image_url,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING id::text, created_at, updated_at
`
	res := pt
	err := r.pool.QueryRow(ctx, q, pt.ID, pt.Type, pt.ImageURL, pt.IsActive).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Error("payment repo: upsert", "type", pt.Type, "error", err)
		return nil, err
	}
	return &res, nil
}
