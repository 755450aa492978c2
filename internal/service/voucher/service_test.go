package voucher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"supsindex-navigator/internal/domain"
	voucherrepo "supsindex-navigator/internal/repository/voucher"
)

type stubRepo struct {
	created []voucherrepo.CreateVoucherInput
}

func (s *stubRepo) Create(_ context.Context, in voucherrepo.CreateVoucherInput) (*domain.Voucher, error) {
	s.created = append(s.created, in)
	return &domain.Voucher{
		ID:         "v1",
		UserID:     in.UserID,
		Code:       in.Code,
		TestType:   in.TestType,
		Status:     domain.VoucherAvailable,
		ExpiryDate: in.ExpiryDate,
	}, nil
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.Voucher, error) {
	return nil, nil
}

func TestIssueVoucher(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	issuedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	v, err := svc.Issue(context.Background(), "u1", IssueInput{Source: "sch", TestType: "FPA"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !strings.HasPrefix(v.Code, "SCH-FPA-") {
		t.Fatalf("code must carry uppercased source and test type, got %q", v.Code)
	}
	if v.Status != domain.VoucherAvailable {
		t.Fatalf("new voucher must be available, got %s", v.Status)
	}
	if want := issuedAt.Add(defaultValidity); !v.ExpiryDate.Equal(want) {
		t.Fatalf("expiry mismatch: got %v want %v", v.ExpiryDate, want)
	}
}

func TestIssueBundleVoucher(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	if _, err := svc.Issue(context.Background(), "u1", IssueInput{Source: "REF", TestType: "Bundle"}); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if repo.created[0].TestType != "Bundle" {
		t.Fatalf("bundle test type must pass through, got %q", repo.created[0].TestType)
	}
}

func TestIssueValidation(t *testing.T) {
	svc := New(&stubRepo{})

	if _, err := svc.Issue(context.Background(), "u1", IssueInput{Source: "", TestType: "FPA"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing source: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Issue(context.Background(), "u1", IssueInput{Source: "SCH", TestType: "XYZ"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown test type: expected ErrNotFound, got %v", err)
	}
}
