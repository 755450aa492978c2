package checkout

import (
	"context"
	"time"

	"supsindex-navigator/internal/domain"
)

// PaidOrderInput is one paid order row produced from a cart line at commit.
type PaidOrderInput struct {
	UserID      string
	Code        domain.AssessmentCode
	TestName    string
	Amount      int64
	BundleID    *string
	BookingDate *time.Time
	Scheduled   bool
}

// AffiliationUse marks one consumed affiliation discount.
type AffiliationUse struct {
	AffiliationID string
	Code          domain.AssessmentCode
}

// CommitInput is everything a successful payment persists in one transaction.
type CommitInput struct {
	UserID          string
	PaidOrders      []PaidOrderInput
	CartItemIDs     []string
	VoucherCodes    []string
	AffiliationUses []AffiliationUse
	UnpaidOrderIDs  []string
}

// Repository owns the checkout commit transaction. Either every effect lands
// or none does; a voucher is never marked used without its order recorded.
type Repository interface {
	Commit(ctx context.Context, in CommitInput) ([]domain.StoredOrder, error)
}
