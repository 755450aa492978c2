package seed

import (
	"context"
	"fmt"
	"time"

	"supsindex-navigator/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// demoUser owns the seeded wallet rows used for manual testing.
const demoUser = "demo-user"

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	discounts := []domain.Discount{
		{Code: "SAVE20", Kind: domain.DiscountPercentage, Value: 20},
		{Code: "WELCOME10", Kind: domain.DiscountFixed, Value: 10},
	}
	for _, d := range discounts {
		if err := upsertDiscount(ctx, pool, d); err != nil {
			return fmt.Errorf("upsert discount %s: %w", d.Code, err)
		}
	}

	voucherCode := domain.NewVoucherCode("SCH", string(domain.CodeFPA), time.Now().UTC())
	if err := ensureVoucher(ctx, pool, demoUser, voucherCode, string(domain.CodeFPA)); err != nil {
		return fmt.Errorf("ensure voucher: %w", err)
	}

	if err := ensureAffiliation(ctx, pool, demoUser, "PARTNER-ACME"); err != nil {
		return fmt.Errorf("ensure affiliation: %w", err)
	}

	return nil
}

func upsertDiscount(ctx context.Context, pool *pgxpool.Pool, d domain.Discount) error {
	const q = `
INSERT INTO discount_codes (code, kind, value)
VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE SET kind = EXCLUDED.kind, value = EXCLUDED.value
`
	_, err := pool.Exec(ctx, q, d.Code, string(d.Kind), d.Value)
	return err
}

func ensureVoucher(ctx context.Context, pool *pgxpool.Pool, userID, code, testType string) error {
	// One seeded voucher per user and test type is enough for manual runs.
	const existsQ = `
SELECT count(*) FROM vouchers WHERE user_id = $1 AND test_type = $2
`
	var n int
	if err := pool.QueryRow(ctx, existsQ, userID, testType).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	const q = `
INSERT INTO vouchers (user_id, code, test_type, expiry_date)
VALUES ($1, $2, $3, $4)
ON CONFLICT (code) DO NOTHING
`
	_, err := pool.Exec(ctx, q, userID, code, testType, time.Now().UTC().Add(365*24*time.Hour))
	return err
}

func ensureAffiliation(ctx context.Context, pool *pgxpool.Pool, userID, code string) error {
	const q = `
INSERT INTO affiliation_codes (user_id, code, requested_tests, discounts)
VALUES ($1, $2, $3, $4)
ON CONFLICT (code) DO NOTHING
`
	requested := []string{string(domain.CodeFPA), string(domain.CodeGEB)}
	discounts := map[string]int64{
		string(domain.CodeFPA): 20,
		string(domain.CodeGEB): 15,
	}
	_, err := pool.Exec(ctx, q, userID, code, requested, discounts)
	return err
}
