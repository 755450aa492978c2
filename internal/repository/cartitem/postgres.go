package cartitem

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

const itemColumns = `id::text, user_id, assessment_code, unit_price, original_price, bundle_id, booking_date, booking_time, status, affiliation_code_id::text, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateItemInput) (*domain.LineItem, error) {
	const q = `
INSERT INTO cart_items (user_id, assessment_code, unit_price, original_price, bundle_id, status, affiliation_code_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + itemColumns + `
`
	row := r.pool.QueryRow(ctx, q, in.UserID, string(in.Code), in.UnitPrice, in.OriginalPrice, in.BundleID, string(in.Status), in.AffiliationCodeID)
	return scanItem(row)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.LineItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.LineItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE user_id = $1 AND id = $2
`
	item, err := scanItem(r.pool.QueryRow(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) SetBooking(ctx context.Context, userID, id string, date time.Time, slot string) error {
	const q = `
UPDATE cart_items
SET booking_date = $1, booking_time = $2, status = $3
WHERE user_id = $4 AND id = $5
`
	cmd, err := r.pool.Exec(ctx, q, date, slot, string(domain.ItemBooked), userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*domain.LineItem, error) {
	var item domain.LineItem
	var code, status string
	var bookingDate *time.Time
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&code,
		&item.UnitPrice,
		&item.OriginalPrice,
		&item.BundleID,
		&bookingDate,
		&item.BookingTime,
		&status,
		&item.AffiliationCodeID,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	item.Code = domain.AssessmentCode(code)
	item.Status = domain.LineItemStatus(status)
	item.BookingDate = bookingDate
	return &item, nil
}
