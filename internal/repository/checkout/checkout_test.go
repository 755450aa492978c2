package checkout

import (
	"context"
	"errors"
	"os"
	"testing"

	"supsindex-navigator/internal/domain"
	"supsindex-navigator/internal/migrate"
	cartitemrepo "supsindex-navigator/internal/repository/cartitem"
	voucherrepo "supsindex-navigator/internal/repository/voucher"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_CommitIsAtomic(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	items := cartitemrepo.NewPostgres(pool)
	vouchers := voucherrepo.NewPostgres(pool)

	item, err := items.Create(ctx, cartitemrepo.CreateItemInput{UserID: "u1", Code: domain.CodeFPA, UnitPrice: 50})
	if err != nil {
		t.Fatalf("create cart item: %v", err)
	}
	voucher, err := vouchers.Create(ctx, voucherrepo.CreateVoucherInput{UserID: "u1", Code: "SCH-GEB-000001", TestType: "GEB"})
	if err != nil {
		t.Fatalf("create voucher: %v", err)
	}

	var unpaidID string
	err = pool.QueryRow(ctx, `
INSERT INTO orders (user_id, assessment_code, test_name, amount, paid)
VALUES ('u1', 'GEB', 'General Entrepreneurial Behavior', 60, false)
RETURNING id::text
`).Scan(&unpaidID)
	if err != nil {
		t.Fatalf("insert unpaid order: %v", err)
	}

	repo := NewPostgres(pool)
	orders, err := repo.Commit(ctx, CommitInput{
		UserID: "u1",
		PaidOrders: []PaidOrderInput{
			{UserID: "u1", Code: domain.CodeFPA, TestName: "Founder Public Awareness", Amount: 50},
		},
		CartItemIDs:    []string{item.ID},
		VoucherCodes:   []string{voucher.Code},
		UnpaidOrderIDs: []string{unpaidID},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(orders) != 1 || !orders[0].Paid || orders[0].Amount != 50 {
		t.Fatalf("unexpected paid orders %+v", orders)
	}

	if _, err := items.GetByID(ctx, "u1", item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cart item must be gone after commit, got %v", err)
	}
	consumed, err := vouchers.GetByCode(ctx, "u1", voucher.Code)
	if err != nil {
		t.Fatalf("get voucher: %v", err)
	}
	if consumed.Status != domain.VoucherUsed {
		t.Fatalf("voucher must be used after commit, got %s", consumed.Status)
	}
	var settled bool
	if err := pool.QueryRow(ctx, `SELECT paid FROM orders WHERE id = $1`, unpaidID).Scan(&settled); err != nil {
		t.Fatalf("read settled order: %v", err)
	}
	if !settled {
		t.Fatal("unpaid order must be settled by the commit")
	}
}

func TestPostgres_CommitRejectsMissingUnpaidOrder(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool)
	_, err := repo.Commit(ctx, CommitInput{
		UserID:         "u1",
		UnpaidOrderIDs: []string{"00000000-0000-0000-0000-000000000000"},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown unpaid order, got %v", err)
	}
}

func TestPostgres_CommitRejectsUsedVoucherAndRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	items := cartitemrepo.NewPostgres(pool)
	vouchers := voucherrepo.NewPostgres(pool)

	item, err := items.Create(ctx, cartitemrepo.CreateItemInput{UserID: "u1", Code: domain.CodeFPA, UnitPrice: 50})
	if err != nil {
		t.Fatalf("create cart item: %v", err)
	}
	voucher, err := vouchers.Create(ctx, voucherrepo.CreateVoucherInput{UserID: "u1", Code: "SCH-FPA-000002", TestType: "FPA"})
	if err != nil {
		t.Fatalf("create voucher: %v", err)
	}
	if _, err := pool.Exec(ctx, `UPDATE vouchers SET status = 'used' WHERE code = $1`, voucher.Code); err != nil {
		t.Fatalf("mark voucher used: %v", err)
	}

	repo := NewPostgres(pool)
	_, err = repo.Commit(ctx, CommitInput{
		UserID: "u1",
		PaidOrders: []PaidOrderInput{
			{UserID: "u1", Code: domain.CodeFPA, TestName: "Founder Public Awareness", Amount: 50},
		},
		CartItemIDs:  []string{item.ID},
		VoucherCodes: []string{voucher.Code},
	})
	if !errors.Is(err, domain.ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}

	// The whole transaction must roll back: cart item untouched, no order rows.
	if _, err := items.GetByID(ctx, "u1", item.ID); err != nil {
		t.Fatalf("cart item must survive a failed commit, got %v", err)
	}
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id = 'u1'`).Scan(&count); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("no orders must be recorded on a failed commit, got %d", count)
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
