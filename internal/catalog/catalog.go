// Package catalog holds the build-time constant table of assessment types
// and the bundle definition. It is reference data: nothing here is fetched
// or mutated at runtime.
package catalog

import "supsindex-navigator/internal/domain"

var assessments = []domain.AssessmentType{
	{
		Code:                 domain.CodeFPA,
		Title:                "Founder Public Awareness",
		Description:          "Assesses a founder's public-market readiness and investor communication.",
		DurationMinutes:      60,
		BasePrice:            50,
		RequiredConfigFields: []string{"industry", "stage"},
	},
	{
		Code:                 domain.CodeGEB,
		Title:                "General Entrepreneurial Behavior",
		Description:          "Behavioral assessment covering decision making under uncertainty.",
		DurationMinutes:      90,
		BasePrice:            60,
		RequiredConfigFields: []string{"industry", "stage", "ecosystem"},
	},
	{
		Code:                 domain.CodeEEA,
		Title:                "Ecosystem Environment Awareness",
		Description:          "Measures awareness of the startup ecosystem the venture operates in.",
		DurationMinutes:      75,
		BasePrice:            75,
		RequiredConfigFields: []string{"ecosystem"},
	},
	{
		Code:            domain.CodeBundle,
		Title:           "Full Certification Bundle",
		Description:     "All three assessments at an authored bundle price.",
		DurationMinutes: 225,
		// Authored below the 185 sum of the constituents.
		BasePrice: 165,
	},
}

// bundleConstituents lists the assessments the bundle entry is composed of,
// in the order they are added to the cart.
var bundleConstituents = []domain.AssessmentCode{domain.CodeFPA, domain.CodeGEB, domain.CodeEEA}

// Get returns the assessment type for code, or domain.ErrNotFound.
func Get(code domain.AssessmentCode) (domain.AssessmentType, error) {
	for _, a := range assessments {
		if a.Code == code {
			return a, nil
		}
	}
	return domain.AssessmentType{}, domain.ErrNotFound
}

// All returns the full catalog in display order.
func All() []domain.AssessmentType {
	out := make([]domain.AssessmentType, len(assessments))
	copy(out, assessments)
	return out
}

// Bundle describes the bundle entry and its constituents.
type Bundle struct {
	Entry        domain.AssessmentType
	Constituents []domain.AssessmentType
}

// GetBundle returns the bundle definition.
func GetBundle() Bundle {
	entry, _ := Get(domain.CodeBundle)
	constituents := make([]domain.AssessmentType, 0, len(bundleConstituents))
	for _, code := range bundleConstituents {
		a, _ := Get(code)
		constituents = append(constituents, a)
	}
	return Bundle{Entry: entry, Constituents: constituents}
}

// Savings is the authored difference between the constituents' combined base
// price and the bundle price.
func (b Bundle) Savings() int64 {
	var sum int64
	for _, a := range b.Constituents {
		sum += a.BasePrice
	}
	return sum - b.Entry.BasePrice
}

// MemberPrices splits the authored bundle price across the constituents
// pro-rata of their base prices, putting any rounding remainder on the last
// member so the parts always sum to the bundle price exactly.
func (b Bundle) MemberPrices() []int64 {
	var sum int64
	for _, a := range b.Constituents {
		sum += a.BasePrice
	}
	prices := make([]int64, len(b.Constituents))
	var allocated int64
	for i, a := range b.Constituents {
		if i == len(b.Constituents)-1 {
			prices[i] = b.Entry.BasePrice - allocated
			break
		}
		prices[i] = b.Entry.BasePrice * a.BasePrice / sum
		allocated += prices[i]
	}
	return prices
}
