package cartitem

import (
	"context"
	"time"

	"supsindex-navigator/internal/domain"
)

type CreateItemInput struct {
	UserID            string
	Code              domain.AssessmentCode
	UnitPrice         int64
	OriginalPrice     *int64
	BundleID          *string
	Status            domain.LineItemStatus
	AffiliationCodeID *string
}

type Repository interface {
	Create(ctx context.Context, in CreateItemInput) (*domain.LineItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.LineItem, error)
	GetByID(ctx context.Context, userID, id string) (*domain.LineItem, error)
	SetBooking(ctx context.Context, userID, id string, date time.Time, slot string) error
	Delete(ctx context.Context, userID, id string) error
}
