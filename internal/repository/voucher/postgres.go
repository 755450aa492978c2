package voucher

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

const voucherColumns = `id::text, user_id, code, test_type, status, expiry_date, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateVoucherInput) (*domain.Voucher, error) {
	const q = `
INSERT INTO vouchers (user_id, code, test_type, expiry_date)
VALUES ($1, $2, $3, $4)
RETURNING ` + voucherColumns + `
`
	return scanVoucher(r.pool.QueryRow(ctx, q, in.UserID, in.Code, in.TestType, in.ExpiryDate))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Voucher, error) {
	const q = `
SELECT ` + voucherColumns + `
FROM vouchers
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, *v)
	}
	return vouchers, rows.Err()
}

func (r *postgresRepo) GetByCode(ctx context.Context, userID, code string) (*domain.Voucher, error) {
	const q = `
SELECT ` + voucherColumns + `
FROM vouchers
WHERE user_id = $1 AND code = $2
`
	v, err := scanVoucher(r.pool.QueryRow(ctx, q, userID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	var status string
	var expiry *time.Time
	if err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.Code,
		&v.TestType,
		&status,
		&expiry,
		&v.CreatedAt,
	); err != nil {
		return nil, err
	}
	v.Status = domain.VoucherStatus(status)
	if expiry != nil {
		v.ExpiryDate = *expiry
	}
	return &v, nil
}
