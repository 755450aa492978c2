package affiliation

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

const affiliationColumns = `id::text, user_id, code, requested_tests, discounts, used_discounts, completed_tests, created_at`

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertInput) (*domain.AffiliationCode, error) {
	const q = `
INSERT INTO affiliation_codes (user_id, code, requested_tests, discounts)
VALUES ($1, $2, $3, $4)
ON CONFLICT (code) DO UPDATE SET requested_tests = EXCLUDED.requested_tests, discounts = EXCLUDED.discounts
RETURNING ` + affiliationColumns + `
`
	requested := make([]string, 0, len(in.RequestedTests))
	for _, c := range in.RequestedTests {
		requested = append(requested, string(c))
	}
	discounts := make(map[string]int64, len(in.Discounts))
	for c, v := range in.Discounts {
		discounts[string(c)] = v
	}
	return scanAffiliation(r.pool.QueryRow(ctx, q, in.UserID, in.Code, requested, discounts))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.AffiliationCode, error) {
	const q = `
SELECT ` + affiliationColumns + `
FROM affiliation_codes
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []domain.AffiliationCode
	for rows.Next() {
		a, err := scanAffiliation(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, *a)
	}
	return codes, rows.Err()
}

func (r *postgresRepo) GetByCode(ctx context.Context, userID, code string) (*domain.AffiliationCode, error) {
	const q = `
SELECT ` + affiliationColumns + `
FROM affiliation_codes
WHERE user_id = $1 AND code = $2
`
	return r.fetch(ctx, q, userID, code)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.AffiliationCode, error) {
	const q = `
SELECT ` + affiliationColumns + `
FROM affiliation_codes
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) AppendCompletedTest(ctx context.Context, id string, code domain.AssessmentCode) error {
	const q = `
UPDATE affiliation_codes
SET completed_tests = array_append(completed_tests, $1)
WHERE id = $2 AND NOT ($1 = ANY (completed_tests))
`
	_, err := r.pool.Exec(ctx, q, string(code), id)
	return err
}

func (r *postgresRepo) fetch(ctx context.Context, q string, args ...interface{}) (*domain.AffiliationCode, error) {
	a, err := scanAffiliation(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAffiliation(row pgx.Row) (*domain.AffiliationCode, error) {
	var a domain.AffiliationCode
	var requested, completed []string
	var discounts map[string]int64
	var used map[string]bool
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Code,
		&requested,
		&discounts,
		&used,
		&completed,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.RequestedTests = toCodes(requested)
	a.CompletedTests = toCodes(completed)
	a.Discounts = make(map[domain.AssessmentCode]int64, len(discounts))
	for c, v := range discounts {
		a.Discounts[domain.AssessmentCode(c)] = v
	}
	a.UsedDiscounts = make(map[domain.AssessmentCode]bool, len(used))
	for c, v := range used {
		a.UsedDiscounts[domain.AssessmentCode(c)] = v
	}
	return &a, nil
}

func toCodes(raw []string) []domain.AssessmentCode {
	out := make([]domain.AssessmentCode, 0, len(raw))
	for _, s := range raw {
		out = append(out, domain.AssessmentCode(s))
	}
	return out
}
