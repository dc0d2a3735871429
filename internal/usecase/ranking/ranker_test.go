package ranking

import (
	"testing"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
)

func seed(t *testing.T) []candidate.Candidate {
	t.Helper()
	return []candidate.Candidate{
		newCandidate(t, candidate.Params{ID: "michael", Skills: []string{"React", "TypeScript"}, HourlyRate: 120, Rating: 4.9, Availability: candidate.Immediate}),
		newCandidate(t, candidate.Params{ID: "sarah", Skills: []string{"Figma", "iOS"}, HourlyRate: 110, Rating: 5.0, Availability: candidate.Immediate}),
		newCandidate(t, candidate.Params{ID: "david", Skills: []string{"Python", "Django"}, HourlyRate: 130, Rating: 4.8, Availability: candidate.WithinWeek}),
		newCandidate(t, candidate.Params{ID: "rachel", Skills: []string{"React Native", "Swift"}, HourlyRate: 125, Rating: 4.9, Availability: candidate.Immediate}),
		newCandidate(t, candidate.Params{ID: "james", Skills: []string{"TensorFlow", "Python"}, HourlyRate: 150, Rating: 5.0, Availability: candidate.WithinWeek}),
	}
}

func idsOf(cs []candidate.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID()
	}
	return out
}

func TestRank_OrderDescending(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	in := newIntent(t, intent.Params{Skills: []string{"python"}})

	scored := r.rankScored(seed(t), in)
	for i := 1; i < len(scored); i++ {
		if scored[i-1].Score() < scored[i].Score() {
			t.Fatalf("not descending at %d: %v < %v", i, scored[i-1].Score(), scored[i].Score())
		}
	}
	got := idsOf(r.Rank(seed(t), in))
	if got[0] != "david" || got[1] != "james" {
		t.Errorf("top two = %v, want david, james", got[:2])
	}
}

func TestRank_Permutation(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	in := newIntent(t, intent.Params{Skills: []string{"react"}, Location: "tokyo"})

	input := seed(t)
	out := r.Rank(input, in)
	if len(out) != len(input) {
		t.Fatalf("len = %d, want %d", len(out), len(input))
	}
	seen := make(map[string]int)
	for _, c := range out {
		seen[c.ID()]++
	}
	for _, c := range input {
		if seen[c.ID()] != 1 {
			t.Errorf("candidate %s appears %d times", c.ID(), seen[c.ID()])
		}
	}
}

func TestRank_Truncation(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	for _, limit := range []int{1, 2, 5, 10} {
		l := limit
		in := newIntent(t, intent.Params{Limit: &l})
		got := r.Rank(seed(t), in)
		want := min(limit, 5)
		if len(got) != want {
			t.Errorf("limit %d: len = %d, want %d", limit, len(got), want)
		}
	}
	if got := r.Rank(seed(t), intent.Empty("")); len(got) != 5 {
		t.Errorf("no limit: len = %d, want 5", len(got))
	}
}

func TestRank_TruncatesAfterSorting(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	one := 1
	in := newIntent(t, intent.Params{Skills: []string{"tensorflow"}, Limit: &one})

	got := r.Rank(seed(t), in)
	if len(got) != 1 || got[0].ID() != "james" {
		t.Errorf("Rank = %v, want [james]", idsOf(got))
	}
}

func TestRank_StableTies(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	var cands []candidate.Candidate
	for _, id := range []string{"a", "b", "c", "d"} {
		cands = append(cands, newCandidate(t, candidate.Params{ID: id, HourlyRate: 100, Rating: 4}))
	}
	got := idsOf(r.Rank(cands, intent.Empty("")))
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank = %v, want %v", got, want)
		}
	}
}

func TestRank_Empty(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	got := r.Rank(nil, intent.Empty(""))
	if got == nil || len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty slice", got)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	r := NewRanker(NewScorer(DefaultConfig()))
	input := seed(t)
	before := idsOf(input)
	_ = r.Rank(input, newIntent(t, intent.Params{Skills: []string{"python"}}))
	after := idsOf(input)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input reordered: %v -> %v", before, after)
		}
	}
}
