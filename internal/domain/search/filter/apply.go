package filter

import (
	"fmt"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
)

// Apply returns the candidates matching expr in their input order.
// The input slice is never modified.
func Apply(cands []candidate.Candidate, expr Expression) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(cands))
	for _, c := range cands {
		if expr.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// FromIntent converts the hard constraints of an intent into an expression:
// location substring, hourly rate ceiling and immediate availability.
// Absent intent fields add no condition.
func FromIntent(in intent.Intent) Expression {
	var must []Condition

	if loc := in.Location(); loc != "" {
		if c, err := NewContains(FieldLocation, loc); err == nil {
			must = append(must, c)
		}
	}
	if budget, ok := in.MaxBudget(); ok {
		r := Range{lte: &budget}
		must = append(must, Condition{kind: kindRange, key: FieldHourlyRate, rangeExpr: &r})
	}
	if in.NeedsImmediate() {
		must = append(must, Condition{kind: kindMatch, key: FieldAvailability, value: string(candidate.Immediate)})
	}

	return Expression{must: must}
}

// Criteria are the explicit filters a caller can set next to the free-text query.
type Criteria struct {
	MinRate       *float64
	MaxRate       *float64
	MinRating     *float64
	ImmediateOnly bool
	Location      string
	// AnyLocation keeps candidates whose location contains at least one entry.
	AnyLocation []string
	// ExcludeLocations drops candidates whose location contains any entry.
	ExcludeLocations []string
}

// FromCriteria validates c and converts it into an expression.
func FromCriteria(c Criteria) (Expression, error) {
	var must []Condition

	if c.MinRate != nil && *c.MinRate < 0 {
		return Expression{}, fmt.Errorf("%w: min_rate must be non-negative", domain.ErrInvalidFilter)
	}
	if c.MaxRate != nil && *c.MaxRate < 0 {
		return Expression{}, fmt.Errorf("%w: max_rate must be non-negative", domain.ErrInvalidFilter)
	}
	if c.MinRate != nil && c.MaxRate != nil && *c.MinRate > *c.MaxRate {
		return Expression{}, fmt.Errorf("%w: min_rate must not exceed max_rate", domain.ErrInvalidFilter)
	}
	if c.MinRating != nil && (*c.MinRating < 0 || *c.MinRating > candidate.MaxRating) {
		return Expression{}, fmt.Errorf("%w: min_rating must be between 0 and %v",
			domain.ErrInvalidFilter, candidate.MaxRating)
	}

	if c.MinRate != nil || c.MaxRate != nil {
		r, err := NewRangeFilter(nil, c.MinRate, nil, c.MaxRate)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		cond, err := NewRange(FieldHourlyRate, r)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		must = append(must, cond)
	}
	if c.MinRating != nil {
		r, err := NewRangeFilter(nil, c.MinRating, nil, nil)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		cond, err := NewRange(FieldRating, r)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		must = append(must, cond)
	}
	if c.ImmediateOnly {
		cond, err := NewMatch(FieldAvailability, string(candidate.Immediate))
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		must = append(must, cond)
	}
	if c.Location != "" {
		cond, err := NewContains(FieldLocation, c.Location)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		must = append(must, cond)
	}

	should, err := locationConditions("locations", c.AnyLocation)
	if err != nil {
		return Expression{}, err
	}
	mustNot, err := locationConditions("exclude_locations", c.ExcludeLocations)
	if err != nil {
		return Expression{}, err
	}

	e, err := NewExpression(must, should, mustNot)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	return e, nil
}

func locationConditions(field string, locs []string) ([]Condition, error) {
	out := make([]Condition, 0, len(locs))
	for i, loc := range locs {
		cond, err := NewContains(FieldLocation, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", domain.ErrInvalidFilter, field, i, err)
		}
		out = append(out, cond)
	}
	return out, nil
}
