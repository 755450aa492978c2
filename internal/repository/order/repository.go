package order

import (
	"context"

	"supsindex-navigator/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string, paid bool) ([]domain.StoredOrder, error)
	GetByID(ctx context.Context, userID, id string) (*domain.StoredOrder, error)
	// MarkTestTaken records a completed test on a paid order in one atomic
	// update; unpaid orders are not eligible.
	MarkTestTaken(ctx context.Context, userID, id string) error
	// Delete refuses paid orders whose test is already taken.
	Delete(ctx context.Context, userID, id string) error
}
