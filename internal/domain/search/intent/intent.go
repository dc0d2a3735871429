// Package intent holds the structured interpretation of a free-text query.
package intent

import (
	"fmt"
	"math"
)

// Intent is built fresh for every query and discarded once the pipeline ran.
type Intent struct {
	originalQuery  string
	skills         []string
	location       string
	maxBudget      *float64
	needsImmediate bool
	limit          *int
}

// Params groups the intent fields for New. Nil pointers mean "not stated".
type Params struct {
	OriginalQuery  string
	Skills         []string
	Location       string
	MaxBudget      *float64
	NeedsImmediate bool
	Limit          *int
}

// New validates p and builds an Intent. Skills keep their order and duplicates.
func New(p Params) (Intent, error) {
	if p.MaxBudget != nil && (math.IsNaN(*p.MaxBudget) || *p.MaxBudget < 0) {
		return Intent{}, fmt.Errorf("max budget must be non-negative, got %v", *p.MaxBudget)
	}
	if p.Limit != nil && *p.Limit <= 0 {
		return Intent{}, fmt.Errorf("limit must be positive, got %d", *p.Limit)
	}

	in := Intent{
		originalQuery:  p.OriginalQuery,
		skills:         make([]string, len(p.Skills)),
		location:       p.Location,
		needsImmediate: p.NeedsImmediate,
	}
	copy(in.skills, p.Skills)
	if p.MaxBudget != nil {
		b := *p.MaxBudget
		in.maxBudget = &b
	}
	if p.Limit != nil {
		l := *p.Limit
		in.limit = &l
	}
	return in, nil
}

// Empty returns the maximally permissive intent for query.
func Empty(query string) Intent {
	return Intent{originalQuery: query, skills: []string{}}
}

// OriginalQuery returns the verbatim input.
func (i Intent) OriginalQuery() string { return i.originalQuery }

// Skills returns the detected skill keywords in detection order.
func (i Intent) Skills() []string { return i.skills }

// Location returns the normalized location, or "" when none was detected.
func (i Intent) Location() string { return i.location }

// MaxBudget returns the hourly budget ceiling and whether one was stated.
func (i Intent) MaxBudget() (float64, bool) {
	if i.maxBudget == nil {
		return 0, false
	}
	return *i.maxBudget, true
}

// NeedsImmediate reports whether the query asked for immediate availability.
func (i Intent) NeedsImmediate() bool { return i.needsImmediate }

// Limit returns the requested result count and whether one was stated.
func (i Intent) Limit() (int, bool) {
	if i.limit == nil {
		return 0, false
	}
	return *i.limit, true
}

// IsEmpty reports whether the intent carries no constraint at all.
func (i Intent) IsEmpty() bool {
	return len(i.skills) == 0 && i.location == "" && i.maxBudget == nil &&
		!i.needsImmediate && i.limit == nil
}
