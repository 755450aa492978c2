package affiliation

import (
	"context"
	"fmt"
	"strings"

	"supsindex-navigator/internal/domain"
	affiliationrepo "supsindex-navigator/internal/repository/affiliation"
)

// Service registers partner affiliation codes and lists them per user.
type Service struct {
	repo repo
}

type repo interface {
	Upsert(ctx context.Context, in affiliationrepo.UpsertInput) (*domain.AffiliationCode, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AffiliationCode, error)
}

func New(r repo) *Service {
	return &Service{repo: r}
}

// RegisterInput is a partner code the user enters, together with the tests
// the partner requested and the discount it grants per test.
type RegisterInput struct {
	Code           string           `json:"code"`
	RequestedTests []string         `json:"requestedTests"`
	Discounts      map[string]int64 `json:"discounts"`
}

func (s *Service) Register(ctx context.Context, userID string, in RegisterInput) (*domain.AffiliationCode, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code required", domain.ErrValidation)
	}
	requested := make([]domain.AssessmentCode, 0, len(in.RequestedTests))
	for _, raw := range in.RequestedTests {
		c, ok := domain.ParseAssessmentCode(raw)
		if !ok || c == domain.CodeBundle {
			return nil, domain.ErrInvalidCode
		}
		requested = append(requested, c)
	}
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: at least one requested test required", domain.ErrValidation)
	}
	discounts := make(map[domain.AssessmentCode]int64, len(in.Discounts))
	for raw, amount := range in.Discounts {
		c, ok := domain.ParseAssessmentCode(raw)
		if !ok || c == domain.CodeBundle {
			return nil, domain.ErrInvalidCode
		}
		if amount < 0 {
			return nil, fmt.Errorf("%w: discount amount must not be negative", domain.ErrValidation)
		}
		discounts[c] = amount
	}
	return s.repo.Upsert(ctx, affiliationrepo.UpsertInput{
		UserID:         userID,
		Code:           code,
		RequestedTests: requested,
		Discounts:      discounts,
	})
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.AffiliationCode, error) {
	return s.repo.ListByUser(ctx, userID)
}
