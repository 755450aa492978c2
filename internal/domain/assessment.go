package domain

// AssessmentCode identifies one of the known assessment products. The set is
// closed: anything that does not parse is CodeUnknown, never a silent map miss.
type AssessmentCode string

const (
	CodeFPA     AssessmentCode = "FPA"
	CodeGEB     AssessmentCode = "GEB"
	CodeEEA     AssessmentCode = "EEA"
	CodeBundle  AssessmentCode = "BUNDLE"
	CodeUnknown AssessmentCode = ""
)

// ParseAssessmentCode maps a raw string onto the closed code set.
func ParseAssessmentCode(s string) (AssessmentCode, bool) {
	switch AssessmentCode(s) {
	case CodeFPA, CodeGEB, CodeEEA, CodeBundle:
		return AssessmentCode(s), true
	default:
		return CodeUnknown, false
	}
}

func (c AssessmentCode) String() string {
	return string(c)
}

// AssessmentType is immutable reference data for a purchasable assessment.
// Prices are whole currency units.
type AssessmentType struct {
	Code                 AssessmentCode `json:"code"`
	Title                string         `json:"title"`
	Description          string         `json:"description,omitempty"`
	DurationMinutes      int            `json:"durationMinutes"`
	BasePrice            int64          `json:"basePrice"`
	RequiredConfigFields []string       `json:"requiredConfigFields,omitempty"`
}
