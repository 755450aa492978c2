package discount

import (
	"context"
	"errors"

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

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	const q = `
SELECT code, kind, value
FROM discount_codes
WHERE code = $1
`
	var d domain.Discount
	var kind string
	if err := r.pool.QueryRow(ctx, q, code).Scan(&d.Code, &kind, &d.Value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.Kind = domain.DiscountKind(kind)
	return &d, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, d domain.Discount) error {
	const q = `
INSERT INTO discount_codes (code, kind, value)
VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE SET kind = EXCLUDED.kind, value = EXCLUDED.value
`
	_, err := r.pool.Exec(ctx, q, d.Code, string(d.Kind), d.Value)
	return err
}
