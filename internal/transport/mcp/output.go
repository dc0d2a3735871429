package mcp

import (
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
)

type intentOutput struct {
	Skills         []string `json:"skills"`
	Location       string   `json:"location,omitempty"`
	MaxBudget      *float64 `json:"max_budget,omitempty"`
	NeedsImmediate bool     `json:"needs_immediate"`
	Limit          *int     `json:"limit,omitempty"`
}

type freelancerOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills"`
	HourlyRate   float64  `json:"hourly_rate"`
	Rating       float64  `json:"rating"`
	Availability string   `json:"availability"`
	Location     string   `json:"location"`
}

type searchOutput struct {
	Intent intentOutput       `json:"intent"`
	Items  []freelancerOutput `json:"items"`
}

func newSearchOutput(in intent.Intent, items []candidate.Candidate) searchOutput {
	out := searchOutput{
		Intent: intentOutput{
			Skills:         append([]string{}, in.Skills()...),
			Location:       in.Location(),
			NeedsImmediate: in.NeedsImmediate(),
		},
		Items: make([]freelancerOutput, len(items)),
	}
	if b, ok := in.MaxBudget(); ok {
		out.Intent.MaxBudget = &b
	}
	if l, ok := in.Limit(); ok {
		out.Intent.Limit = &l
	}
	for i, c := range items {
		out.Items[i] = freelancerOutput{
			ID:           c.ID(),
			Name:         c.Name(),
			Skills:       c.Skills(),
			HourlyRate:   c.HourlyRate(),
			Rating:       c.Rating(),
			Availability: string(c.Availability()),
			Location:     c.Location(),
		}
	}
	return out
}
