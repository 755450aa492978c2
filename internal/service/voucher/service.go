package voucher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"supsindex-navigator/internal/domain"
	voucherrepo "supsindex-navigator/internal/repository/voucher"
)

// defaultValidity is how long a newly issued voucher stays redeemable.
const defaultValidity = 365 * 24 * time.Hour

// Service issues and lists vouchers. Vouchers are granted by other flows
// (scholarship acceptance, referral milestones) and consumed exactly once at
// checkout commit.
type Service struct {
	repo repo
	now  func() time.Time
}

type repo interface {
	Create(ctx context.Context, in voucherrepo.CreateVoucherInput) (*domain.Voucher, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Voucher, error)
}

func New(r repo) *Service {
	return &Service{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// IssueInput grants a voucher. Source is a short origin tag (e.g. SCH for
// scholarship, REF for referral); TestType is an assessment code or "Bundle".
type IssueInput struct {
	Source   string `json:"source"`
	TestType string `json:"testType"`
}

func (s *Service) Issue(ctx context.Context, userID string, in IssueInput) (*domain.Voucher, error) {
	source := strings.ToUpper(strings.TrimSpace(in.Source))
	if source == "" {
		return nil, fmt.Errorf("%w: source required", domain.ErrValidation)
	}
	testType := strings.TrimSpace(in.TestType)
	if testType != "Bundle" {
		if _, ok := domain.ParseAssessmentCode(testType); !ok {
			return nil, domain.ErrNotFound
		}
	}
	now := s.now()
	return s.repo.Create(ctx, voucherrepo.CreateVoucherInput{
		UserID:     userID,
		Code:       domain.NewVoucherCode(source, testType, now),
		TestType:   testType,
		ExpiryDate: now.Add(defaultValidity),
	})
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Voucher, error) {
	return s.repo.ListByUser(ctx, userID)
}
