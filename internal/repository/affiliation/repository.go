package affiliation

import (
	"context"

	"supsindex-navigator/internal/domain"
)

type UpsertInput struct {
	UserID         string
	Code           string
	RequestedTests []domain.AssessmentCode
	Discounts      map[domain.AssessmentCode]int64
}

type Repository interface {
	Upsert(ctx context.Context, in UpsertInput) (*domain.AffiliationCode, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AffiliationCode, error)
	GetByCode(ctx context.Context, userID, code string) (*domain.AffiliationCode, error)
	GetByID(ctx context.Context, id string) (*domain.AffiliationCode, error)
	// AppendCompletedTest records a taken test on the code; append-only.
	AppendCompletedTest(ctx context.Context, id string, code domain.AssessmentCode) error
}
