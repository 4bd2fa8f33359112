package sale

import (
	"context"
	"errors"
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

func (r *postgresRepo) Create(ctx context.Context, s domain.Sale) (*domain.Sale, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Decrement stock first so a short row locks the whole sale out
	// instead of half-recording it.
	for _, item := range s.Items {
		cmd, err := tx.Exec(ctx, `
UPDATE products SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
`, item.ProductID, item.Quantity)
		if err != nil {
			r.logger.Error("sale repo: decrement stock", "product_id", item.ProductID, "error", err)
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, domain.ErrInsufficientStock
		}
	}

	res := s
	err = tx.QueryRow(ctx, `
INSERT INTO sales (id, cashier_id, total, paid, payment_type)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5)
RETURNING id::text, created_at, updated_at
`, s.ID, s.CashierID, s.Total, s.Paid, s.PaymentType).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Error("sale repo: insert sale", "error", err)
		return nil, err
	}

	res.Items = make([]domain.SaleItem, len(s.Items))
	for i, item := range s.Items {
		line := item
		line.SaleID = res.ID
		err := tx.QueryRow(ctx, `
INSERT INTO sale_items (sale_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id::text, created_at
`, res.ID, item.ProductID, item.Quantity, item.Price).Scan(&line.ID, &line.CreatedAt)
		if err != nil {
			r.logger.Error("sale repo: insert item", "sale_id", res.ID, "product_id", item.ProductID, "error", err)
			return nil, err
		}
		res.Items[i] = line
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("sale repo: created", "id", res.ID, "items", len(res.Items), "total", res.Total)
	return &res, nil
}

func (r *postgresRepo) List(ctx context.Context, params ListParams) ([]domain.Sale, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	const q = `
SELECT id::text, cashier_id, total, paid, payment_type, created_at, updated_at,
       COUNT(*) OVER () AS total_rows
FROM sales
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		r.logger.Error("sale repo: list", "error", err)
		return nil, 0, err
	}
	defer rows.Close()

	var (
		result []domain.Sale
		total  int
	)
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.CashierID, &s.Total, &s.Paid, &s.PaymentType, &s.CreatedAt, &s.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadItems(ctx, result); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	const q = `
SELECT id::text, cashier_id, total, paid, payment_type, created_at, updated_at
FROM sales
WHERE id = $1
`
	var s domain.Sale
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.CashierID, &s.Total, &s.Paid, &s.PaymentType, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("sale repo: get", "id", id, "error", err)
		return nil, err
	}

	sales := []domain.Sale{s}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (r *postgresRepo) loadItems(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	index := make(map[string]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
	}

	const q = `
SELECT si.id::text, si.sale_id::text, si.product_id::text, si.quantity, si.price, si.created_at,
       p.name, COALESCE(p.image, ''), p.category
FROM sale_items si
JOIN products p ON p.id = si.product_id
WHERE si.sale_id = ANY($1::uuid[])
ORDER BY si.created_at, si.id
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Error("sale repo: load items", "error", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item domain.SaleItem
			p    domain.Product
		)
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt, &p.Name, &p.Image, &p.Category); err != nil {
			return err
		}
		p.ID = item.ProductID
		item.Product = &p
		i := index[item.SaleID]
		sales[i].Items = append(sales[i].Items, item)
	}
	return rows.Err()
}
