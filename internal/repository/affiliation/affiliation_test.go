package affiliation

import (
	"context"
	"os"
	"testing"

	"supsindex-navigator/internal/domain"
	"supsindex-navigator/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_AppendCompletedTestIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool)
	created, err := repo.Upsert(ctx, UpsertInput{
		UserID:         "u1",
		Code:           "PARTNER-ACME",
		RequestedTests: []domain.AssessmentCode{domain.CodeFPA},
		Discounts:      map[domain.AssessmentCode]int64{domain.CodeFPA: 10},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.AppendCompletedTest(ctx, created.ID, domain.CodeFPA); err != nil {
		t.Fatalf("AppendCompletedTest: %v", err)
	}
	if err := repo.AppendCompletedTest(ctx, created.ID, domain.CodeFPA); err != nil {
		t.Fatalf("second append: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.CompletedTests) != 1 || got.CompletedTests[0] != domain.CodeFPA {
		t.Fatalf("completed tests must stay a set, got %v", got.CompletedTests)
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
