package checkout

import (
	"time"

	"supsindex-navigator/internal/domain"
)

// Totals is the resolved checkout arithmetic. All values are whole currency
// units; tax is computed on the post-discount amount, never the raw
// subtotal, so value the buyer never paid is never taxed.
type Totals struct {
	Subtotal        int64 `json:"subtotal"`
	DiscountAmount  int64 `json:"discountAmount"`
	VoucherDiscount int64 `json:"voucherDiscount"`
	Tax             int64 `json:"tax"`
	Total           int64 `json:"total"`
}

const taxRatePercent = 8

// Resolver applies at most one generic discount code and any number of
// vouchers to a snapshot of the cart, enforcing that no line item is reduced
// by more than one mechanism. It holds no persistent state: nothing is
// consumed until the commit that follows a successful payment.
type Resolver struct {
	items    []domain.LineItem
	discount *domain.Discount
	// vouchers maps item id -> reserved voucher.
	vouchers map[string]domain.Voucher
	// reserved tracks voucher codes already applied in this pass.
	reserved map[string]bool
}

func NewResolver(items []domain.LineItem) *Resolver {
	return &Resolver{
		items:    items,
		vouchers: make(map[string]domain.Voucher),
		reserved: make(map[string]bool),
	}
}

// ApplyDiscount activates a generic discount code. Only one may be active;
// the previous one must be removed explicitly first.
func (r *Resolver) ApplyDiscount(d domain.Discount) error {
	if r.discount != nil {
		return domain.ErrAlreadyApplied
	}
	r.discount = &d
	return nil
}

// RemoveDiscount clears the active discount code, restoring totals exactly.
func (r *Resolver) RemoveDiscount() {
	r.discount = nil
}

// Discount returns the active discount code, if any.
func (r *Resolver) Discount() *domain.Discount {
	return r.discount
}

// ApplyVoucher reserves a voucher against the first eligible cart item: one
// whose assessment code matches the voucher's test type ("Bundle" matches
// any), that carries no affiliation discount, and that has no voucher yet.
// The voucher itself is only marked used at commit.
func (r *Resolver) ApplyVoucher(v domain.Voucher, now time.Time) error {
	if v.Status == domain.VoucherUsed || r.reserved[v.Code] {
		return domain.ErrAlreadyUsed
	}
	if v.Expired(now) {
		return domain.ErrVoucherExpired
	}
	for _, item := range r.items {
		if _, taken := r.vouchers[item.ID]; taken {
			continue
		}
		if item.Discounted() {
			continue
		}
		if v.TestType != "Bundle" && string(item.Code) != v.TestType {
			continue
		}
		r.vouchers[item.ID] = v
		r.reserved[v.Code] = true
		return nil
	}
	return domain.ErrNoMatchingItem
}

// VoucherCodes lists the reserved voucher codes in item order.
func (r *Resolver) VoucherCodes() []string {
	var codes []string
	for _, item := range r.items {
		if v, ok := r.vouchers[item.ID]; ok {
			codes = append(codes, v.Code)
		}
	}
	return codes
}

// VoucherFor returns the voucher reserved against an item, if any.
func (r *Resolver) VoucherFor(itemID string) (domain.Voucher, bool) {
	v, ok := r.vouchers[itemID]
	return v, ok
}

// Items returns the cart snapshot the resolver operates on.
func (r *Resolver) Items() []domain.LineItem {
	return r.items
}

// Totals computes the checkout arithmetic. The generic discount applies to
// the subtotal net of voucher-covered value, so a vouchered item is never
// discounted twice; with no vouchers the base is the raw subtotal.
func (r *Resolver) Totals() Totals {
	var t Totals
	for _, item := range r.items {
		t.Subtotal += item.UnitPrice
		if _, ok := r.vouchers[item.ID]; ok {
			t.VoucherDiscount += item.UnitPrice
		}
	}

	base := t.Subtotal - t.VoucherDiscount
	if r.discount != nil {
		switch r.discount.Kind {
		case domain.DiscountPercentage:
			t.DiscountAmount = roundHalfUp(base*r.discount.Value, 100)
		case domain.DiscountFixed:
			t.DiscountAmount = r.discount.Value
			if t.DiscountAmount > base {
				t.DiscountAmount = base
			}
		}
	}

	taxable := base - t.DiscountAmount
	if taxable < 0 {
		taxable = 0
	}
	t.Tax = roundHalfUp(taxable*taxRatePercent, 100)
	t.Total = taxable + t.Tax
	return t
}

// roundHalfUp divides num by den rounding half away from zero; inputs are
// never negative here.
func roundHalfUp(num, den int64) int64 {
	return (num + den/2) / den
}
