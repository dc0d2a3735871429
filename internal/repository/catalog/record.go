package catalog

import (
	"fmt"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
)

// record is the storage shape of a candidate, shared by YAML seeds and JSON snapshots.
type record struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Avatar       string   `yaml:"avatar,omitempty" json:"avatar,omitempty"`
	Skills       []string `yaml:"skills" json:"skills"`
	HourlyRate   float64  `yaml:"hourly_rate" json:"hourly_rate"`
	Rating       float64  `yaml:"rating" json:"rating"`
	Availability string   `yaml:"availability" json:"availability"`
	Platform     string   `yaml:"platform,omitempty" json:"platform,omitempty"`
	Location     string   `yaml:"location" json:"location"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
}

type seedFile struct {
	Candidates []record `yaml:"candidates"`
}

func fromRecords(recs []record) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for i, r := range recs {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("candidate %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = struct{}{}

		c, err := candidate.New(candidate.Params{
			ID:           r.ID,
			Name:         r.Name,
			Avatar:       r.Avatar,
			Skills:       r.Skills,
			HourlyRate:   r.HourlyRate,
			Rating:       r.Rating,
			Availability: candidate.Availability(r.Availability),
			Platform:     r.Platform,
			Location:     r.Location,
			Description:  r.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func toRecords(cands []candidate.Candidate) []record {
	out := make([]record, len(cands))
	for i, c := range cands {
		out[i] = record{
			ID:           c.ID(),
			Name:         c.Name(),
			Avatar:       c.Avatar(),
			Skills:       c.Skills(),
			HourlyRate:   c.HourlyRate(),
			Rating:       c.Rating(),
			Availability: string(c.Availability()),
			Platform:     c.Platform(),
			Location:     c.Location(),
			Description:  c.Description(),
		}
	}
	return out
}
