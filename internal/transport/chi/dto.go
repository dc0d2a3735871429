package chi

import (
	"fmt"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/filter"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeUnavailable      = "service_unavailable"
	codeBadGateway       = "recognizer_error"
	codeInternal         = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query   string       `json:"query"`
	Filters *FiltersBody `json:"filters,omitempty"`
}

// BatchSearchRequest is the body of POST /v1/search/batch.
// The filters apply to every query.
type BatchSearchRequest struct {
	Queries []string     `json:"queries"`
	Filters *FiltersBody `json:"filters,omitempty"`
}

// FiltersBody are optional explicit filters applied after the query intent.
type FiltersBody struct {
	MinRate               *float64 `json:"min_rate,omitempty"`
	MaxRate               *float64 `json:"max_rate,omitempty"`
	MinRating             *float64 `json:"min_rating,omitempty"`
	ImmediateAvailability bool     `json:"immediate_availability,omitempty"`
	Location              string   `json:"location,omitempty"`
	Locations             []string `json:"locations,omitempty"`         // any of
	ExcludeLocations      []string `json:"exclude_locations,omitempty"` // none of
}

// IntentBody is the JSON form of a parsed query.
type IntentBody struct {
	OriginalQuery  string   `json:"original_query"`
	Skills         []string `json:"skills"`
	Location       string   `json:"location,omitempty"`
	MaxBudget      *float64 `json:"max_budget,omitempty"`
	NeedsImmediate bool     `json:"needs_immediate"`
	Limit          *int     `json:"limit,omitempty"`
}

// CandidateBody is the JSON form of a freelancer.
type CandidateBody struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar,omitempty"`
	Skills       []string `json:"skills"`
	HourlyRate   float64  `json:"hourly_rate"`
	Rating       float64  `json:"rating"`
	Availability string   `json:"availability"`
	Platform     string   `json:"platform"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
}

// SearchResponse is the body of a successful POST /v1/search.
type SearchResponse struct {
	Intent IntentBody      `json:"intent"`
	Items  []CandidateBody `json:"items"`
	Stats  stats.Market    `json:"stats"`
}

// BatchSearchResponse holds one SearchResponse per query, in request order.
type BatchSearchResponse struct {
	Results []SearchResponse `json:"results"`
}

// CandidateListResponse is the body of GET /v1/candidates.
type CandidateListResponse struct {
	Items []CandidateBody `json:"items"`
	Total int             `json:"total"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (f *FiltersBody) criteria() filter.Criteria {
	return filter.Criteria{
		MinRate:          f.MinRate,
		MaxRate:          f.MaxRate,
		MinRating:        f.MinRating,
		ImmediateOnly:    f.ImmediateAvailability,
		Location:         f.Location,
		AnyLocation:      f.Locations,
		ExcludeLocations: f.ExcludeLocations,
	}
}

// expression validates the filters. A nil body yields the empty expression.
func (f *FiltersBody) expression() (filter.Expression, error) {
	if f == nil {
		return filter.Expression{}, nil
	}
	expr, err := filter.FromCriteria(f.criteria())
	if err != nil {
		return filter.Expression{}, fmt.Errorf("filters: %w", err)
	}
	return expr, nil
}

// IntentToBody converts an intent for JSON output.
func IntentToBody(in intent.Intent) IntentBody {
	body := IntentBody{
		OriginalQuery:  in.OriginalQuery(),
		Skills:         append([]string{}, in.Skills()...),
		Location:       in.Location(),
		NeedsImmediate: in.NeedsImmediate(),
	}
	if b, ok := in.MaxBudget(); ok {
		body.MaxBudget = &b
	}
	if l, ok := in.Limit(); ok {
		body.Limit = &l
	}
	return body
}

// CandidateToBody converts a candidate for JSON output.
func CandidateToBody(c candidate.Candidate) CandidateBody {
	return CandidateBody{
		ID:           c.ID(),
		Name:         c.Name(),
		Avatar:       c.Avatar(),
		Skills:       append([]string{}, c.Skills()...),
		HourlyRate:   c.HourlyRate(),
		Rating:       c.Rating(),
		Availability: string(c.Availability()),
		Platform:     c.Platform(),
		Location:     c.Location(),
		Description:  c.Description(),
	}
}

// CandidatesToBody converts a candidate list, never returning nil.
func CandidatesToBody(cands []candidate.Candidate) []CandidateBody {
	out := make([]CandidateBody, len(cands))
	for i, c := range cands {
		out[i] = CandidateToBody(c)
	}
	return out
}
