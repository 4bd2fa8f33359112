package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shoppos/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultLimit = 20

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

func (r *postgresRepo) List(ctx context.Context, params ListParams) ([]domain.Product, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	const q = `
SELECT id::text, sku, name, COALESCE(description, ''), COALESCE(image, ''), price, import_price, stock, category, created_at, updated_at,
       COUNT(*) OVER () AS total
FROM products
WHERE ($1 = '' OR category = $1)
ORDER BY name, id
LIMIT $2 OFFSET $3
`
	rows, err := r.pool.Query(ctx, q, params.Category, limit, offset)
	if err != nil {
		r.logger.Error("product repo: list", "category", params.Category, "error", err)
		return nil, 0, err
	}
	defer rows.Close()

	var (
		result []domain.Product
		total  int
	)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Image, &p.Price, &p.ImportPrice, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", "category", params.Category, "error", err)
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, sku, name, COALESCE(description, ''), COALESCE(image, ''), price, import_price, stock, category, created_at, updated_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Image, &p.Price, &p.ImportPrice, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, sku, name, description, image, price, import_price, stock, category)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
ON CONFLICT (sku) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    price = EXCLUDED.price,
    import_price = EXCLUDED.import_price,
    stock = EXCLUDED.stock,
    category = EXCLUDED.category,
    updated_at = now()
RETURNING id::text, created_at, updated_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.SKU,
		product.Name,
		product.Description,
		product.Image,
		product.Price,
		product.ImportPrice,
		product.Stock,
		product.Category,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Error("product repo: upsert", "sku", product.SKU, "error", err)
		return nil, err
	}
	if product.ID != "" && res.ID != product.ID {
		return nil, fmt.Errorf("product repo: id mismatch for sku=%s existing_id=%s import_id=%s", product.SKU, res.ID, product.ID)
	}
	return &res, nil
}
