package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Discount is a generic code from the fixed registry. Value is a percentage
// for percentage discounts and a whole-currency amount for fixed ones.
type Discount struct {
	Code  string       `json:"code"`
	Kind  DiscountKind `json:"kind"`
	Value int64        `json:"value"`
}

type VoucherStatus string

const (
	VoucherAvailable VoucherStatus = "available"
	VoucherUsed      VoucherStatus = "used"
)

// Voucher grants one assessment free of charge. TestType is an assessment
// code, or "Bundle" to match any cart item. Status moves available -> used
// exactly once, at checkout commit.
type Voucher struct {
	ID         string        `json:"id"`
	UserID     string        `json:"-"`
	Code       string        `json:"code"`
	TestType   string        `json:"testType"`
	Status     VoucherStatus `json:"status"`
	ExpiryDate time.Time     `json:"expiryDate"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Expired reports whether the voucher's expiry date has passed at now.
func (v Voucher) Expired(now time.Time) bool {
	return !v.ExpiryDate.IsZero() && now.After(v.ExpiryDate)
}

// NewVoucherCode formats a voucher code as <SRC>-<TESTTYPE>-<timestamp6>-<rand8>.
// The random fragment keeps codes issued within the same second distinct;
// the column carrying them is unique.
func NewVoucherCode(source, testType string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%06d-%.8s", source, testType, now.Unix()%1000000, uuid.NewString())
}

// AffiliationCode is a partner code a user registered. Discounts maps
// assessment codes to the amount the partner covers; UsedDiscounts flips to
// true per code when the discount is consumed and never reverts.
// CompletedTests is append-only.
type AffiliationCode struct {
	ID             string                   `json:"id"`
	UserID         string                   `json:"-"`
	Code           string                   `json:"code"`
	RequestedTests []AssessmentCode         `json:"requestedTests"`
	Discounts      map[AssessmentCode]int64 `json:"discounts"`
	UsedDiscounts  map[AssessmentCode]bool  `json:"usedDiscounts"`
	CompletedTests []AssessmentCode         `json:"completedTests"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// DiscountFor returns the unused partner discount for code, if any.
func (a AffiliationCode) DiscountFor(code AssessmentCode) (int64, bool) {
	amount, ok := a.Discounts[code]
	if !ok || a.UsedDiscounts[code] {
		return 0, false
	}
	return amount, true
}

// Requested reports whether the partner asked the user to take code.
func (a AffiliationCode) Requested(code AssessmentCode) bool {
	for _, c := range a.RequestedTests {
		if c == code {
			return true
		}
	}
	return false
}
