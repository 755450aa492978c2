package discount

import (
	"context"

	"supsindex-navigator/internal/domain"
)

// Repository is the fixed registry of generic discount codes.
type Repository interface {
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
	Upsert(ctx context.Context, d domain.Discount) error
}
