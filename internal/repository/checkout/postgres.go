package checkout

import (
	"context"
	"fmt"

	"supsindex-navigator/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Commit(ctx context.Context, in CommitInput) ([]domain.StoredOrder, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Paid orders are inserted before the cart rows are deleted so a failed
	// commit can never lose an item.
	orders := make([]domain.StoredOrder, 0, len(in.PaidOrders))
	for _, po := range in.PaidOrders {
		testStatus := domain.TestNotTaken
		if po.Scheduled {
			testStatus = domain.TestScheduled
		}
		const q = `
INSERT INTO orders (user_id, assessment_code, test_name, amount, paid, test_status, bundle_id, booking_date)
VALUES ($1, $2, $3, $4, true, $5, $6, $7)
RETURNING id::text, created_at
`
		o := domain.StoredOrder{
			UserID:      po.UserID,
			Code:        po.Code,
			TestName:    po.TestName,
			Amount:      po.Amount,
			Paid:        true,
			TestStatus:  testStatus,
			KYCStatus:   domain.KYCPending,
			BundleID:    po.BundleID,
			BookingDate: po.BookingDate,
		}
		if err := tx.QueryRow(ctx, q, po.UserID, string(po.Code), po.TestName, po.Amount, string(testStatus), po.BundleID, po.BookingDate).Scan(&o.ID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert paid order: %w", err)
		}
		orders = append(orders, o)
	}

	for _, id := range in.CartItemIDs {
		cmd, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, in.UserID, id)
		if err != nil {
			return nil, fmt.Errorf("delete cart item: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("delete cart item %s: %w", id, domain.ErrNotFound)
		}
	}

	for _, id := range in.UnpaidOrderIDs {
		cmd, err := tx.Exec(ctx, `UPDATE orders SET paid = true WHERE user_id = $1 AND id = $2 AND paid = false`, in.UserID, id)
		if err != nil {
			return nil, fmt.Errorf("mark order paid: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("mark order %s paid: %w", id, domain.ErrNotFound)
		}
	}

	for _, code := range in.VoucherCodes {
		cmd, err := tx.Exec(ctx, `
UPDATE vouchers
SET status = $1
WHERE user_id = $2 AND code = $3 AND status = $4
`, string(domain.VoucherUsed), in.UserID, code, string(domain.VoucherAvailable))
		if err != nil {
			return nil, fmt.Errorf("mark voucher used: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("mark voucher %s used: %w", code, domain.ErrAlreadyUsed)
		}
	}

	for _, use := range in.AffiliationUses {
		cmd, err := tx.Exec(ctx, `
UPDATE affiliation_codes
SET used_discounts = used_discounts || jsonb_build_object($1::text, true)
WHERE id = $2 AND COALESCE((used_discounts ->> $1)::boolean, false) = false
`, string(use.Code), use.AffiliationID)
		if err != nil {
			return nil, fmt.Errorf("mark affiliation discount used: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("affiliation discount %s on %s: %w", use.Code, use.AffiliationID, domain.ErrAlreadyUsed)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}
