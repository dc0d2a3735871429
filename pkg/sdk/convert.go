package qbet

import (
	"fmt"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	domintent "github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
)

func toCandidates(fs []Freelancer) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0, len(fs))
	for i := range fs {
		f := &fs[i]
		c, err := candidate.New(candidate.Params{
			ID:           f.ID,
			Name:         f.Name,
			Avatar:       f.Avatar,
			Skills:       f.Skills,
			HourlyRate:   f.HourlyRate,
			Rating:       f.Rating,
			Availability: candidate.Availability(f.Availability),
			Platform:     f.Platform,
			Location:     f.Location,
			Description:  f.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("freelancer %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func fromCandidates(cs []candidate.Candidate) []Freelancer {
	out := make([]Freelancer, len(cs))
	for i, c := range cs {
		skills := make([]string, len(c.Skills()))
		copy(skills, c.Skills())
		out[i] = Freelancer{
			ID:           c.ID(),
			Name:         c.Name(),
			Avatar:       c.Avatar(),
			Skills:       skills,
			HourlyRate:   c.HourlyRate(),
			Rating:       c.Rating(),
			Availability: Availability(c.Availability()),
			Platform:     c.Platform(),
			Location:     c.Location(),
			Description:  c.Description(),
		}
	}
	return out
}

func fromIntent(in domintent.Intent) Intent {
	out := Intent{
		OriginalQuery:  in.OriginalQuery(),
		Skills:         append([]string{}, in.Skills()...),
		Location:       in.Location(),
		NeedsImmediate: in.NeedsImmediate(),
	}
	if b, ok := in.MaxBudget(); ok {
		out.MaxBudget = &b
	}
	if l, ok := in.Limit(); ok {
		out.Limit = &l
	}
	return out
}

func fromMarket(m stats.Market) Market {
	out := Market{
		Total:       m.Total,
		Available:   m.Available,
		AverageRate: m.AverageRate,
		TopSkills:   make([]SkillCount, len(m.TopSkills)),
		RateBuckets: make([]RateBucket, len(m.RateBuckets)),
	}
	for i, s := range m.TopSkills {
		out.TopSkills[i] = SkillCount{Skill: s.Skill, Count: s.Count}
	}
	for i, b := range m.RateBuckets {
		out.RateBuckets[i] = RateBucket{Label: b.Label, Count: b.Count}
	}
	return out
}
