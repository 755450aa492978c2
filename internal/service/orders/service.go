package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"supsindex-navigator/internal/domain"
)

// Service builds the unified order list and owns the removal, booking and
// test-completion contracts over the two persisted collections.
type Service struct {
	orders       orderRepo
	items        itemRepo
	affiliations affiliationRepo
}

type orderRepo interface {
	ListByUser(ctx context.Context, userID string, paid bool) ([]domain.StoredOrder, error)
	GetByID(ctx context.Context, userID, id string) (*domain.StoredOrder, error)
	MarkTestTaken(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}

type itemRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.LineItem, error)
	GetByID(ctx context.Context, userID, id string) (*domain.LineItem, error)
	SetBooking(ctx context.Context, userID, id string, date time.Time, slot string) error
	Delete(ctx context.Context, userID, id string) error
}

type affiliationRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.AffiliationCode, error)
	AppendCompletedTest(ctx context.Context, id string, code domain.AssessmentCode) error
}

func New(orders orderRepo, items itemRepo, affiliations affiliationRepo) *Service {
	return &Service{orders: orders, items: items, affiliations: affiliations}
}

// List rebuilds the unified order list from the current snapshot and applies
// the filter.
func (s *Service) List(ctx context.Context, userID string, f Filter) ([]domain.Order, error) {
	unpaid, err := s.orders.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	paid, err := s.orders.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterOrders(Aggregate(unpaid, paid, items), f), nil
}

// RemoveResult reports side effects of a removal the caller should surface.
type RemoveResult struct {
	// BookingCancelled is true when the removed record carried a booking,
	// which is implicitly cancelled with it.
	BookingCancelled bool
}

// Remove deletes an order or cart item. An order that is paid and whose test
// is already taken is not removable.
func (s *Service) Remove(ctx context.Context, userID, id string) (RemoveResult, error) {
	o, err := s.orders.GetByID(ctx, userID, id)
	switch {
	case err == nil:
		if o.Paid && o.TestStatus == domain.TestTaken {
			return RemoveResult{}, domain.ErrNotRemovable
		}
		if err := s.orders.Delete(ctx, userID, id); err != nil {
			return RemoveResult{}, err
		}
		return RemoveResult{BookingCancelled: o.BookingDate != nil}, nil
	case errors.Is(err, domain.ErrNotFound):
		// Fall through to the cart collection.
	default:
		return RemoveResult{}, err
	}

	item, err := s.items.GetByID(ctx, userID, id)
	if err != nil {
		return RemoveResult{}, err
	}
	if err := s.items.Delete(ctx, userID, id); err != nil {
		return RemoveResult{}, err
	}
	return RemoveResult{BookingCancelled: item.BookingDate != nil || item.Status == domain.ItemBooked}, nil
}

// UpdateBooking schedules a cart item; the item transitions to booked.
func (s *Service) UpdateBooking(ctx context.Context, userID, itemID string, date time.Time, slot string) error {
	return s.items.SetBooking(ctx, userID, itemID, date, slot)
}

// CompleteTest records that the assessment behind a paid order was taken and
// propagates the completion to every affiliation code that requested that
// test. Completing an already taken test is a no-op.
func (s *Service) CompleteTest(ctx context.Context, userID, orderID string) error {
	o, err := s.orders.GetByID(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !o.Paid {
		return fmt.Errorf("%w: order not paid", domain.ErrValidation)
	}
	if o.TestStatus == domain.TestTaken {
		return nil
	}
	if err := s.orders.MarkTestTaken(ctx, userID, orderID); err != nil {
		return err
	}

	affs, err := s.affiliations.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, a := range affs {
		if !a.Requested(o.Code) {
			continue
		}
		if err := s.affiliations.AppendCompletedTest(ctx, a.ID, o.Code); err != nil {
			return fmt.Errorf("record completion on %s: %w", a.Code, err)
		}
	}
	return nil
}
