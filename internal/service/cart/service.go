package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supsindex-navigator/internal/catalog"
	"supsindex-navigator/internal/domain"
	cartitemrepo "supsindex-navigator/internal/repository/cartitem"
	"github.com/google/uuid"
)

// Service configures assessments into cart line items. Affiliation discounts
// are the only discount applied here: they lower the unit price at item
// creation, which in turn makes the item ineligible for checkout-time
// discounts.
type Service struct {
	repo         itemRepo
	affiliations affiliationRepo
}

type itemRepo interface {
	Create(ctx context.Context, in cartitemrepo.CreateItemInput) (*domain.LineItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.LineItem, error)
}

type affiliationRepo interface {
	GetByCode(ctx context.Context, userID, code string) (*domain.AffiliationCode, error)
}

func New(repo itemRepo, affiliations affiliationRepo) *Service {
	return &Service{repo: repo, affiliations: affiliations}
}

// AddInput configures one assessment (or the bundle) for purchase.
type AddInput struct {
	Code            string            `json:"assessmentCode"`
	Config          map[string]string `json:"config"`
	AffiliationCode string            `json:"affiliationCode,omitempty"`
	TakeNow         bool              `json:"takeNow,omitempty"`
}

// List returns the user's cart in creation order.
func (s *Service) List(ctx context.Context, userID string) ([]domain.LineItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add validates the configuration against the catalog and creates the line
// item. Adding the bundle creates one item per constituent sharing a fresh
// bundle id, priced pro-rata of the authored bundle price.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) ([]domain.LineItem, error) {
	code, ok := domain.ParseAssessmentCode(strings.TrimSpace(in.Code))
	if !ok {
		return nil, domain.ErrNotFound
	}

	if code == domain.CodeBundle {
		if in.AffiliationCode != "" {
			return nil, fmt.Errorf("%w: affiliation discounts do not apply to the bundle", domain.ErrValidation)
		}
		return s.addBundle(ctx, userID, in)
	}

	assessment, err := catalog.Get(code)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(assessment, in.Config); err != nil {
		return nil, err
	}

	create := cartitemrepo.CreateItemInput{
		UserID:    userID,
		Code:      code,
		UnitPrice: assessment.BasePrice,
		Status:    itemStatus(in.TakeNow),
	}

	if in.AffiliationCode != "" {
		aff, err := s.affiliations.GetByCode(ctx, userID, in.AffiliationCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidCode
			}
			return nil, err
		}
		if !aff.Requested(code) {
			return nil, domain.ErrNoMatchingItem
		}
		amount, ok := aff.DiscountFor(code)
		if !ok {
			return nil, domain.ErrAlreadyUsed
		}
		if amount > assessment.BasePrice {
			amount = assessment.BasePrice
		}
		original := assessment.BasePrice
		create.UnitPrice = assessment.BasePrice - amount
		create.OriginalPrice = &original
		create.AffiliationCodeID = &aff.ID
	}

	item, err := s.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	return []domain.LineItem{*item}, nil
}

func (s *Service) addBundle(ctx context.Context, userID string, in AddInput) ([]domain.LineItem, error) {
	bundle := catalog.GetBundle()
	for _, a := range bundle.Constituents {
		if err := validateConfig(a, in.Config); err != nil {
			return nil, err
		}
	}

	bundleID := uuid.NewString()
	prices := bundle.MemberPrices()
	items := make([]domain.LineItem, 0, len(bundle.Constituents))
	for i, a := range bundle.Constituents {
		item, err := s.repo.Create(ctx, cartitemrepo.CreateItemInput{
			UserID:    userID,
			Code:      a.Code,
			UnitPrice: prices[i],
			BundleID:  &bundleID,
			Status:    itemStatus(in.TakeNow),
		})
		if err != nil {
			return nil, fmt.Errorf("create bundle member %s: %w", a.Code, err)
		}
		items = append(items, *item)
	}
	return items, nil
}

func validateConfig(a domain.AssessmentType, config map[string]string) error {
	for _, field := range a.RequiredConfigFields {
		if strings.TrimSpace(config[field]) == "" {
			return fmt.Errorf("%w: field %s required for %s", domain.ErrValidation, field, a.Code)
		}
	}
	return nil
}

func itemStatus(takeNow bool) domain.LineItemStatus {
	if takeNow {
		return domain.ItemTakeNow
	}
	return domain.ItemEmpty
}
