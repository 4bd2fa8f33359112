package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"shoppos/internal/domain"
	"shoppos/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_ListAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	first, err := repo.Upsert(ctx, domain.Product{
		SKU: "COCA-01", Name: "Coca Cola", Price: 1200, ImportPrice: 900, Stock: 24, Category: "drink",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, domain.Product{
		SKU: "LAYS-01", Name: "Lays Classic", Price: 2500, ImportPrice: 1800, Stock: 10, Category: "snack",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, total, err := repo.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || total != 2 {
		t.Fatalf("expected 2 products total=2, got %d total=%d", len(list), total)
	}

	drinks, total, err := repo.List(ctx, ListParams{Category: "drink"})
	if err != nil {
		t.Fatalf("List category: %v", err)
	}
	if len(drinks) != 1 || total != 1 || drinks[0].SKU != "COCA-01" {
		t.Fatalf("unexpected category listing %+v total=%d", drinks, total)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Coca Cola" || got.Stock != 24 {
		t.Fatalf("unexpected product %+v", got)
	}

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpsertUpdatesBySKU(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Upsert(ctx, domain.Product{SKU: "COCA-01", Name: "Coca Cola", Price: 1200, Stock: 5, Category: "drink"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated, err := repo.Upsert(ctx, domain.Product{SKU: "COCA-01", Name: "Coca Cola 330ml", Price: 1300, Stock: 40, Category: "drink"})
	if err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected same ID after update")
	}
	if updated.Name != "Coca Cola 330ml" || updated.Price != 1300 || updated.Stock != 40 {
		t.Fatalf("unexpected updated product %+v", updated)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE sale_items, sales, products, payment_types RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
