package order

import (
	"context"
	"errors"
	"time"

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

const orderColumns = `id::text, user_id, assessment_code, test_name, amount, paid, test_status, kyc_status, bundle_id, booking_date, created_at`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string, paid bool) ([]domain.StoredOrder, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND paid = $2
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID, paid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.StoredOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.StoredOrder, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND id = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) MarkTestTaken(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET test_status = $1
WHERE user_id = $2 AND id = $3 AND paid = true
`, string(domain.TestTaken), userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	// The removability check is part of the statement so a test completed
	// between read and delete can never lose its order.
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM orders
WHERE user_id = $1 AND id = $2 AND NOT (paid AND test_status = $3)
`, userID, id, string(domain.TestTaken))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE user_id = $1 AND id = $2)`, userID, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrNotRemovable
	}
	return domain.ErrNotFound
}

func scanOrder(row pgx.Row) (*domain.StoredOrder, error) {
	var o domain.StoredOrder
	var code, testStatus, kycStatus string
	var bookingDate *time.Time
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&code,
		&o.TestName,
		&o.Amount,
		&o.Paid,
		&testStatus,
		&kycStatus,
		&o.BundleID,
		&bookingDate,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Code = domain.AssessmentCode(code)
	o.TestStatus = domain.TestStatus(testStatus)
	o.KYCStatus = domain.KYCStatus(kycStatus)
	o.BookingDate = bookingDate
	return &o, nil
}
