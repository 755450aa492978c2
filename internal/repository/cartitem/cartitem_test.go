package cartitem

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"supsindex-navigator/internal/domain"
	"supsindex-navigator/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_CreateListAndBook(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool)

	original := int64(50)
	created, err := repo.Create(ctx, CreateItemInput{
		UserID:        "u1",
		Code:          domain.CodeFPA,
		UnitPrice:     40,
		OriginalPrice: &original,
		Status:        domain.ItemEmpty,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UnitPrice != 40 || created.OriginalPrice == nil || *created.OriginalPrice != 50 {
		t.Fatalf("unexpected item %+v", created)
	}
	if !created.Discounted() {
		t.Fatalf("item with lowered price must report discounted: %+v", created)
	}

	items, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("list mismatch %+v", items)
	}

	when := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if err := repo.SetBooking(ctx, "u1", created.ID, when, "09:00"); err != nil {
		t.Fatalf("SetBooking: %v", err)
	}
	booked, err := repo.GetByID(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if booked.Status != domain.ItemBooked || booked.BookingTime != "09:00" || booked.BookingDate == nil {
		t.Fatalf("booking not persisted %+v", booked)
	}

	if err := repo.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgres_UserScoping(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool)
	created, err := repo.Create(ctx, CreateItemInput{UserID: "u1", Code: domain.CodeGEB, UnitPrice: 60})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.GetByID(ctx, "other", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("items must be invisible across users, got %v", err)
	}
	if err := repo.Delete(ctx, "other", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user delete must fail, got %v", err)
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
	if _, err := pool.Exec(ctx, `TRUNCATE cart_items, orders, vouchers, affiliation_codes, discount_codes RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
