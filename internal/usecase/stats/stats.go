// Package stats summarizes a candidate list for the market overview.
package stats

import (
	"math"
	"sort"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
)

// DefaultTopSkills is the number of skills reported when the caller does not choose.
const DefaultTopSkills = 5

// Rate bucket labels, in display order.
const (
	BucketUnder100 = "< 100"
	Bucket100To120 = "100-120"
	Bucket120To140 = "120-140"
	BucketOver140  = ">= 140"
)

// SkillCount is one skill and the number of candidates listing it.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// RateBucket is one hourly rate range and its candidate count.
type RateBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Market is the summary of a candidate list.
type Market struct {
	Total       int          `json:"total"`
	Available   int          `json:"available"`
	AverageRate int          `json:"average_rate"`
	TopSkills   []SkillCount `json:"top_skills"`
	RateBuckets []RateBucket `json:"rate_buckets"`
}

// Compute summarizes cands. Skills are counted by exact tag; ties keep first appearance.
// A non-positive topN reports every skill.
func Compute(cands []candidate.Candidate, topN int) Market {
	m := Market{
		Total:     len(cands),
		TopSkills: []SkillCount{},
		RateBuckets: []RateBucket{
			{Label: BucketUnder100},
			{Label: Bucket100To120},
			{Label: Bucket120To140},
			{Label: BucketOver140},
		},
	}
	if len(cands) == 0 {
		return m
	}

	var rateSum float64
	counts := make(map[string]int)
	var order []string

	for _, c := range cands {
		if c.Availability() == candidate.Immediate {
			m.Available++
		}
		rate := c.HourlyRate()
		rateSum += rate
		m.RateBuckets[bucketIndex(rate)].Count++

		for _, s := range c.Skills() {
			if _, ok := counts[s]; !ok {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	m.AverageRate = int(math.Round(rateSum / float64(len(cands))))

	for _, s := range order {
		m.TopSkills = append(m.TopSkills, SkillCount{Skill: s, Count: counts[s]})
	}
	sort.SliceStable(m.TopSkills, func(i, j int) bool {
		return m.TopSkills[i].Count > m.TopSkills[j].Count
	})
	if topN > 0 && len(m.TopSkills) > topN {
		m.TopSkills = m.TopSkills[:topN]
	}

	return m
}

func bucketIndex(rate float64) int {
	switch {
	case rate < 100:
		return 0
	case rate < 120:
		return 1
	case rate < 140:
		return 2
	default:
		return 3
	}
}
