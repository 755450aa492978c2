package voucher

import (
	"context"
	"time"

	"supsindex-navigator/internal/domain"
)

type CreateVoucherInput struct {
	UserID     string
	Code       string
	TestType   string
	ExpiryDate time.Time
}

type Repository interface {
	Create(ctx context.Context, in CreateVoucherInput) (*domain.Voucher, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Voucher, error)
	GetByCode(ctx context.Context, userID, code string) (*domain.Voucher, error)
}
