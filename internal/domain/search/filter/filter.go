package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/text"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Candidate fields a condition can target.
const (
	FieldLocation     = "location"
	FieldAvailability = "availability"
	FieldHourlyRate   = "hourly_rate"
	FieldRating       = "rating"
)

var (
	textFields    = map[string]struct{}{FieldLocation: {}, FieldAvailability: {}}
	numericFields = map[string]struct{}{FieldHourlyRate: {}, FieldRating: {}}
)

// Expression is a structured filter with must/should/must_not boolean semantics.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// And returns an expression whose must group is e's followed by other's.
// Should and must-not groups are concatenated the same way.
func (e Expression) And(other Expression) Expression {
	return Expression{
		must:    append(append([]Condition(nil), e.must...), other.must...),
		should:  append(append([]Condition(nil), e.should...), other.should...),
		mustNot: append(append([]Condition(nil), e.mustNot...), other.mustNot...),
	}
}

// Matches reports whether c satisfies every must condition, at least one
// should condition (when any) and no must-not condition.
func (e Expression) Matches(c candidate.Candidate) bool {
	for _, cond := range e.must {
		if !cond.Matches(c) {
			return false
		}
	}
	if len(e.should) > 0 {
		matched := false
		for _, cond := range e.should {
			if cond.Matches(c) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, cond := range e.mustNot {
		if cond.Matches(c) {
			return false
		}
	}
	return true
}

type conditionKind int

const (
	kindMatch conditionKind = iota + 1
	kindContains
	kindRange
)

// Condition is a single filter clause: an exact match, a substring match or a numeric range.
type Condition struct {
	kind      conditionKind
	key       string
	value     string
	rangeExpr *Range
}

// NewMatch creates an exact, case-insensitive match on a text field.
func NewMatch(key, match string) (Condition, error) {
	if err := validateTextKey(key); err != nil {
		return Condition{}, err
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: kindMatch, key: key, value: match}, nil
}

// NewContains creates a substring match on a text field. Both sides are normalized.
func NewContains(key, substr string) (Condition, error) {
	if err := validateTextKey(key); err != nil {
		return Condition{}, err
	}
	normalized := text.Normalize(substr)
	if normalized == "" {
		return Condition{}, fmt.Errorf("contains value is required for key %q", key)
	}
	return Condition{kind: kindContains, key: key, value: normalized}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if _, ok := numericFields[key]; !ok {
		return Condition{}, fmt.Errorf("unknown numeric field %q", key)
	}
	return Condition{kind: kindRange, key: key, rangeExpr: &r}, nil
}

func validateTextKey(key string) error {
	if key == "" {
		return fmt.Errorf("filter key is required")
	}
	if _, ok := textFields[key]; !ok {
		return fmt.Errorf("unknown text field %q", key)
	}
	return nil
}

// Matches evaluates the condition against one candidate.
func (c Condition) Matches(cand candidate.Candidate) bool {
	switch c.kind {
	case kindMatch:
		return strings.EqualFold(textField(cand, c.key), c.value)
	case kindContains:
		return strings.Contains(text.Normalize(textField(cand, c.key)), c.value)
	case kindRange:
		return c.rangeExpr.Contains(numericField(cand, c.key))
	default:
		return false
	}
}

func textField(c candidate.Candidate, key string) string {
	switch key {
	case FieldLocation:
		return c.Location()
	case FieldAvailability:
		return string(c.Availability())
	default:
		return ""
	}
}

func numericField(c candidate.Candidate, key string) float64 {
	switch key {
	case FieldHourlyRate:
		return c.HourlyRate()
	case FieldRating:
		return c.Rating()
	default:
		return 0
	}
}

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// Contains reports whether v lies within every set boundary.
func (r Range) Contains(v float64) bool {
	if r.gt != nil && v <= *r.gt {
		return false
	}
	if r.gte != nil && v < *r.gte {
		return false
	}
	if r.lt != nil && v >= *r.lt {
		return false
	}
	if r.lte != nil && v > *r.lte {
		return false
	}
	return true
}
