package domain

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

type TestStatus string

const (
	TestNotTaken  TestStatus = "not_taken"
	TestTaken     TestStatus = "taken"
	TestScheduled TestStatus = "scheduled"
)

type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

type OverallStatus string

const (
	StatusCompleted      OverallStatus = "completed"
	StatusWaitingPayment OverallStatus = "waiting_payment"
	StatusWaitingTest    OverallStatus = "waiting_test"
	StatusWaitingKYC     OverallStatus = "waiting_kyc"
	StatusRejected       OverallStatus = "rejected"
)

// ParseOverallStatus maps a raw string onto the known overall statuses.
func ParseOverallStatus(s string) (OverallStatus, bool) {
	switch OverallStatus(s) {
	case StatusCompleted, StatusWaitingPayment, StatusWaitingTest, StatusWaitingKYC, StatusRejected:
		return OverallStatus(s), true
	default:
		return "", false
	}
}

// DeriveOverallStatus folds the three sub-statuses into the single
// user-facing status. The precedence is fixed: rejection is terminal, an
// unpaid order blocks everything downstream, an untaken test blocks KYC
// review, and only full completion of all three yields completed. Every
// caller that needs an overall status goes through this function; it is
// never stored.
func DeriveOverallStatus(payment PaymentStatus, test TestStatus, kyc KYCStatus) OverallStatus {
	switch {
	case kyc == KYCRejected:
		return StatusRejected
	case payment != PaymentPaid:
		return StatusWaitingPayment
	case test != TestTaken:
		return StatusWaitingTest
	case kyc != KYCApproved:
		return StatusWaitingKYC
	default:
		return StatusCompleted
	}
}
