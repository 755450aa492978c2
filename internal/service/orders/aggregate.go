package orders

import (
	"strings"

	"supsindex-navigator/internal/catalog"
	"supsindex-navigator/internal/domain"
)

// Filter narrows the unified order list. Query is a case-insensitive
// substring match against test/bundle name or order id; Status, when set,
// keeps only rows whose derived overall status equals it.
type Filter struct {
	Query  string
	Status domain.OverallStatus
}

// Aggregate builds the unified order list from the three source collections:
// unpaid orders, paid orders, and cart items. Rows sharing a bundle id with
// at least one other row collapse into a single bundle header carrying the
// members as children; everything else stays an individual row. Bundle
// headers come first, then individuals, each group in source order. The
// function is pure: it may be re-run on any snapshot without side effects.
func Aggregate(unpaid, paid []domain.StoredOrder, items []domain.LineItem) []domain.Order {
	rows := make([]domain.Order, 0, len(unpaid)+len(paid)+len(items))
	seen := make(map[string]bool)

	appendRow := func(o domain.Order) {
		// The same underlying id showing up as both paid and unpaid is a
		// data inconsistency; keep the first occurrence.
		key := identity(o.OrderID)
		if seen[key] {
			return
		}
		seen[key] = true
		rows = append(rows, o)
	}

	for _, o := range unpaid {
		appendRow(fromStored(o))
	}
	for _, o := range paid {
		appendRow(fromStored(o))
	}
	for _, li := range items {
		appendRow(fromLineItem(li))
	}

	memberCount := make(map[string]int)
	for _, o := range rows {
		if o.BundleID != nil {
			memberCount[*o.BundleID]++
		}
	}

	var headers []domain.Order
	var individuals []domain.Order
	grouped := make(map[string][]domain.Order)
	var bundleOrder []string
	for _, o := range rows {
		// A bundle id with a single member is treated as an individual row.
		if o.BundleID == nil || memberCount[*o.BundleID] < 2 {
			individuals = append(individuals, o)
			continue
		}
		if _, ok := grouped[*o.BundleID]; !ok {
			bundleOrder = append(bundleOrder, *o.BundleID)
		}
		grouped[*o.BundleID] = append(grouped[*o.BundleID], o)
	}
	for _, id := range bundleOrder {
		headers = append(headers, synthesizeHeader(id, grouped[id]))
	}

	return append(headers, individuals...)
}

// FilterOrders applies the free-text and status filters to a unified list.
func FilterOrders(rows []domain.Order, f Filter) []domain.Order {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Order, 0, len(rows))
	for _, o := range rows {
		if q != "" && !strings.Contains(strings.ToLower(o.TestName), q) && !strings.Contains(strings.ToLower(o.OrderID), q) {
			continue
		}
		if f.Status != "" && o.Overall() != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// identity strips any provenance prefix so the same underlying order is
// recognized across collections.
func identity(id string) string {
	for _, prefix := range []string{"unpaid-", "paid-", "cart-"} {
		if strings.HasPrefix(id, prefix) {
			return strings.TrimPrefix(id, prefix)
		}
	}
	return id
}

func fromStored(o domain.StoredOrder) domain.Order {
	payment := domain.PaymentUnpaid
	if o.Paid {
		payment = domain.PaymentPaid
	}
	test := o.TestStatus
	if test == "" {
		test = domain.TestNotTaken
	}
	kyc := o.KYCStatus
	if kyc == "" {
		kyc = domain.KYCPending
	}
	name := o.TestName
	if name == "" {
		name = displayName(o.Code)
	}
	return domain.Order{
		OrderID:       o.ID,
		TestName:      name,
		Code:          o.Code,
		Amount:        o.Amount,
		PaymentStatus: payment,
		TestStatus:    test,
		KYCStatus:     kyc,
		BundleID:      o.BundleID,
		HasBooking:    o.BookingDate != nil,
	}
}

func fromLineItem(li domain.LineItem) domain.Order {
	test := domain.TestNotTaken
	if li.Status == domain.ItemBooked {
		test = domain.TestScheduled
	}
	return domain.Order{
		OrderID:       li.ID,
		TestName:      displayName(li.Code),
		Code:          li.Code,
		Amount:        li.UnitPrice,
		PaymentStatus: domain.PaymentUnpaid,
		TestStatus:    test,
		KYCStatus:     domain.KYCPending,
		BundleID:      li.BundleID,
		HasBooking:    li.BookingDate != nil,
	}
}

// synthesizeHeader folds bundle members into one record. Every sub-status is
// a pure function of the members' sub-statuses; the overall status then
// follows from the same derivation used for individual orders.
func synthesizeHeader(bundleID string, members []domain.Order) domain.Order {
	header := domain.Order{
		OrderID:       bundleID,
		TestName:      bundleName(),
		Code:          domain.CodeBundle,
		BundleID:      members[0].BundleID,
		PaymentStatus: domain.PaymentPaid,
		TestStatus:    domain.TestTaken,
		KYCStatus:     domain.KYCApproved,
		Members:       members,
	}

	anyScheduled := false
	anyRejected := false
	for _, m := range members {
		header.Amount += m.Amount
		if m.PaymentStatus != domain.PaymentPaid {
			header.PaymentStatus = domain.PaymentUnpaid
		}
		if m.TestStatus != domain.TestTaken {
			header.TestStatus = domain.TestNotTaken
		}
		if m.TestStatus == domain.TestScheduled {
			anyScheduled = true
		}
		if m.KYCStatus != domain.KYCApproved {
			header.KYCStatus = domain.KYCPending
		}
		if m.KYCStatus == domain.KYCRejected {
			anyRejected = true
		}
		if m.HasBooking {
			header.HasBooking = true
		}
	}
	if header.TestStatus != domain.TestTaken && anyScheduled {
		header.TestStatus = domain.TestScheduled
	}
	if anyRejected {
		header.KYCStatus = domain.KYCRejected
	}
	return header
}

func displayName(code domain.AssessmentCode) string {
	if a, err := catalog.Get(code); err == nil {
		return a.Title
	}
	return code.String()
}

func bundleName() string {
	return catalog.GetBundle().Entry.Title
}
