package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"supsindex-navigator/internal/domain"
	"supsindex-navigator/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func insertOrder(ctx context.Context, t *testing.T, pool *pgxpool.Pool, userID string, code domain.AssessmentCode, paid bool, testStatus domain.TestStatus) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO orders (user_id, assessment_code, test_name, amount, paid, test_status)
VALUES ($1, $2, $3, 50, $4, $5)
RETURNING id::text
`, userID, string(code), code.String(), paid, string(testStatus)).Scan(&id)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}
	return id
}

func TestPostgres_ListSplitsByPaid(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	unpaidID := insertOrder(ctx, t, pool, "u1", domain.CodeFPA, false, domain.TestNotTaken)
	paidID := insertOrder(ctx, t, pool, "u1", domain.CodeGEB, true, domain.TestNotTaken)

	repo := NewPostgres(pool)
	unpaid, err := repo.ListByUser(ctx, "u1", false)
	if err != nil {
		t.Fatalf("ListByUser unpaid: %v", err)
	}
	if len(unpaid) != 1 || unpaid[0].ID != unpaidID || unpaid[0].Paid {
		t.Fatalf("unpaid list mismatch: %+v", unpaid)
	}
	paid, err := repo.ListByUser(ctx, "u1", true)
	if err != nil {
		t.Fatalf("ListByUser paid: %v", err)
	}
	if len(paid) != 1 || paid[0].ID != paidID || !paid[0].Paid {
		t.Fatalf("paid list mismatch: %+v", paid)
	}
}

func TestPostgres_MarkTestTakenRequiresPaid(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool)
	unpaidID := insertOrder(ctx, t, pool, "u1", domain.CodeFPA, false, domain.TestNotTaken)
	if err := repo.MarkTestTaken(ctx, "u1", unpaidID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unpaid order must not be markable, got %v", err)
	}

	paidID := insertOrder(ctx, t, pool, "u1", domain.CodeGEB, true, domain.TestScheduled)
	if err := repo.MarkTestTaken(ctx, "u1", paidID); err != nil {
		t.Fatalf("MarkTestTaken: %v", err)
	}
	o, err := repo.GetByID(ctx, "u1", paidID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if o.TestStatus != domain.TestTaken {
		t.Fatalf("status not persisted, got %s", o.TestStatus)
	}
}

func TestPostgres_DeleteGuardsCompletedOrders(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool)

	completedID := insertOrder(ctx, t, pool, "u1", domain.CodeFPA, true, domain.TestTaken)
	if err := repo.Delete(ctx, "u1", completedID); !errors.Is(err, domain.ErrNotRemovable) {
		t.Fatalf("paid+taken order must not be deletable, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1", completedID); err != nil {
		t.Fatalf("refused delete must leave the row, got %v", err)
	}

	removableID := insertOrder(ctx, t, pool, "u1", domain.CodeGEB, true, domain.TestScheduled)
	if err := repo.Delete(ctx, "u1", removableID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1", removableID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, "u1", removableID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleting a missing order: expected ErrNotFound, got %v", err)
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
