package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCode indicates a discount or voucher code outside the registry.
	ErrInvalidCode = errors.New("invalid code")
	// ErrAlreadyApplied indicates a discount code is already active on the checkout.
	ErrAlreadyApplied = errors.New("discount already applied")
	// ErrAlreadyUsed indicates a voucher or affiliation discount was already consumed.
	ErrAlreadyUsed = errors.New("already used")
	// ErrNoMatchingItem indicates no eligible cart item matches the voucher's test type.
	ErrNoMatchingItem = errors.New("no matching item")
	// ErrNotRemovable indicates the order is paid and its test already taken.
	ErrNotRemovable = errors.New("order not removable")
	// ErrVoucherExpired indicates the voucher's expiry date has passed.
	ErrVoucherExpired = errors.New("voucher expired")
	// ErrValidation indicates a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
)
