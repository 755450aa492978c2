package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"supsindex-navigator/internal/catalog"
	"supsindex-navigator/internal/domain"
	"supsindex-navigator/internal/gateway/payment"
	checkoutrepo "supsindex-navigator/internal/repository/checkout"
	"github.com/google/uuid"
)

// ErrEmptyCart is returned when a checkout is attempted with no cart items.
var ErrEmptyCart = errors.New("cart is empty")

// Service resolves a user's checkout and, on payment, commits it in a single
// transaction: paid orders recorded, unpaid orders settled, cart cleared,
// vouchers and affiliation discounts consumed. An abandoned checkout touches
// nothing.
type Service struct {
	items     itemRepo
	orders    orderRepo
	discounts discountRepo
	vouchers  voucherRepo
	commits   commitRepo
	gateway   payment.Gateway
	now       func() time.Time
}

type itemRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.LineItem, error)
}

type orderRepo interface {
	ListByUser(ctx context.Context, userID string, paid bool) ([]domain.StoredOrder, error)
}

type discountRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
}

type voucherRepo interface {
	GetByCode(ctx context.Context, userID, code string) (*domain.Voucher, error)
}

type commitRepo interface {
	Commit(ctx context.Context, in checkoutrepo.CommitInput) ([]domain.StoredOrder, error)
}

func New(items itemRepo, orders orderRepo, discounts discountRepo, vouchers voucherRepo, commits commitRepo, gw payment.Gateway) *Service {
	return &Service{
		items:     items,
		orders:    orders,
		discounts: discounts,
		vouchers:  vouchers,
		commits:   commits,
		gateway:   gw,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Input carries the codes the user submitted for this checkout pass.
type Input struct {
	DiscountCode string   `json:"discountCode"`
	VoucherCodes []string `json:"voucherCodes"`
}

// unpaidPrefix tags resolver lines that come from the unpaid order
// collection rather than the cart; commit settles them in place instead of
// inserting a new order.
const unpaidPrefix = "unpaid-"

// Resolve snapshots the cart plus the user's unpaid orders and applies the
// submitted codes sequentially.
func (s *Service) Resolve(ctx context.Context, userID string, in Input) (*Resolver, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.orders.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	for _, o := range unpaid {
		items = append(items, domain.LineItem{
			ID:          unpaidPrefix + o.ID,
			UserID:      o.UserID,
			Code:        o.Code,
			UnitPrice:   o.Amount,
			BundleID:    o.BundleID,
			BookingDate: o.BookingDate,
		})
	}
	r := NewResolver(items)

	if in.DiscountCode != "" {
		d, err := s.discounts.GetByCode(ctx, in.DiscountCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidCode
			}
			return nil, err
		}
		if err := r.ApplyDiscount(*d); err != nil {
			return nil, err
		}
	}

	for _, code := range in.VoucherCodes {
		v, err := s.vouchers.GetByCode(ctx, userID, code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidCode
			}
			return nil, err
		}
		if err := r.ApplyVoucher(*v, s.now()); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Quote resolves the checkout and returns its totals without committing.
func (s *Service) Quote(ctx context.Context, userID string, in Input) (Totals, error) {
	r, err := s.Resolve(ctx, userID, in)
	if err != nil {
		return Totals{}, err
	}
	return r.Totals(), nil
}

// Pay charges the gateway and commits the checkout. The commit is the only
// point where vouchers and affiliation discounts transition to used, and it
// is all-or-nothing with recording the paid orders.
func (s *Service) Pay(ctx context.Context, userID string, in Input) ([]domain.StoredOrder, Totals, error) {
	r, err := s.Resolve(ctx, userID, in)
	if err != nil {
		return nil, Totals{}, err
	}
	items := r.Items()
	if len(items) == 0 {
		return nil, Totals{}, ErrEmptyCart
	}
	totals := r.Totals()

	if err := s.gateway.Charge(ctx, userID, totals.Total, uuid.New()); err != nil {
		return nil, Totals{}, fmt.Errorf("charge: %w", err)
	}

	commit := checkoutrepo.CommitInput{
		UserID:       userID,
		VoucherCodes: r.VoucherCodes(),
	}
	for _, item := range items {
		if strings.HasPrefix(item.ID, unpaidPrefix) {
			commit.UnpaidOrderIDs = append(commit.UnpaidOrderIDs, strings.TrimPrefix(item.ID, unpaidPrefix))
			continue
		}
		commit.CartItemIDs = append(commit.CartItemIDs, item.ID)
		commit.PaidOrders = append(commit.PaidOrders, checkoutrepo.PaidOrderInput{
			UserID:      userID,
			Code:        item.Code,
			TestName:    testName(item.Code),
			Amount:      item.UnitPrice,
			BundleID:    item.BundleID,
			BookingDate: item.BookingDate,
			Scheduled:   item.Status == domain.ItemBooked,
		})
		if item.Discounted() && item.AffiliationCodeID != nil {
			commit.AffiliationUses = append(commit.AffiliationUses, checkoutrepo.AffiliationUse{
				AffiliationID: *item.AffiliationCodeID,
				Code:          item.Code,
			})
		}
	}

	orders, err := s.commits.Commit(ctx, commit)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("commit checkout: %w", err)
	}
	return orders, totals, nil
}

func testName(code domain.AssessmentCode) string {
	if a, err := catalog.Get(code); err == nil {
		return a.Title
	}
	return code.String()
}
