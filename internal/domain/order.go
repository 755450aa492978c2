package domain

import "time"

type LineItemStatus string

const (
	ItemEmpty   LineItemStatus = "empty"
	ItemTakeNow LineItemStatus = "take-now"
	ItemBooked  LineItemStatus = "booked"
)

// LineItem is a configured, not-yet-paid purchasable unit in a user's cart.
// OriginalPrice is set only when an affiliation discount already lowered
// UnitPrice; such an item is not eligible for further discounts at checkout.
type LineItem struct {
	ID                string         `json:"id"`
	UserID            string         `json:"-"`
	Code              AssessmentCode `json:"assessmentCode"`
	UnitPrice         int64          `json:"unitPrice"`
	OriginalPrice     *int64         `json:"originalPrice,omitempty"`
	BundleID          *string        `json:"bundleId,omitempty"`
	BookingDate       *time.Time     `json:"bookingDate,omitempty"`
	BookingTime       string         `json:"bookingTime,omitempty"`
	Status            LineItemStatus `json:"status"`
	AffiliationCodeID *string        `json:"affiliationCodeId,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// Discounted reports whether an affiliation discount was applied upstream.
func (li LineItem) Discounted() bool {
	return li.OriginalPrice != nil && *li.OriginalPrice != li.UnitPrice
}

// StoredOrder is a persisted order row. Paid distinguishes the paid and
// unpaid logical collections, which share one table so that the
// unpaid-to-paid transition is a single atomic update.
type StoredOrder struct {
	ID          string         `json:"id"`
	UserID      string         `json:"-"`
	Code        AssessmentCode `json:"assessmentCode"`
	TestName    string         `json:"testName"`
	Amount      int64          `json:"amount"`
	Paid        bool           `json:"paid"`
	TestStatus  TestStatus     `json:"testStatus"`
	KYCStatus   KYCStatus      `json:"kycStatus"`
	BundleID    *string        `json:"bundleId,omitempty"`
	BookingDate *time.Time     `json:"bookingDate,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Order is one row of the unified order list. It is derived on every read
// and never persisted. A bundle header carries its members as children and
// sub-statuses synthesized from them.
type Order struct {
	OrderID       string         `json:"orderId"`
	TestName      string         `json:"testName"`
	Code          AssessmentCode `json:"assessmentCode,omitempty"`
	Amount        int64          `json:"amount"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	TestStatus    TestStatus     `json:"testStatus"`
	KYCStatus     KYCStatus      `json:"kycStatus"`
	BundleID      *string        `json:"bundleId,omitempty"`
	HasBooking    bool           `json:"hasBooking"`
	Members       []Order        `json:"members,omitempty"`
}

// Overall recomputes the lifecycle status from the sub-statuses.
func (o Order) Overall() OverallStatus {
	return DeriveOverallStatus(o.PaymentStatus, o.TestStatus, o.KYCStatus)
}
