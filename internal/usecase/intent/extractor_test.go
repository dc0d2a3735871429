package intent

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain/search/vocabulary"
	"github.com/kailas-cloud/qbet/internal/usecase/location"
)

// --- Mocks ---

type stubResolver struct {
	loc   string
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) string {
	s.calls++
	return s.loc
}

func newExtractor() *Extractor {
	loc := location.New(location.DefaultConfig(), nil, zap.NewNop())
	return New(vocabulary.Default(), loc, zap.NewNop())
}

// --- Tests ---

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", []int{}},
		{"donne moi 2 profils", []int{2}},
		{"budget 50 ou 80", []int{50, 80}},
		{"0 and 1000 and 1001", []int{1000}},
		{"tel 0612345678", []int{}},
		{"react120euros", []int{120}},
		{"99999999999999999999999 then 5", []int{5}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ExtractNumbers(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractNumbers(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtract_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "?!"} {
		in := newExtractor().Extract(context.Background(), q)
		if !in.IsEmpty() {
			t.Errorf("Extract(%q) not empty: %+v", q, in)
		}
		if in.OriginalQuery() != q {
			t.Errorf("OriginalQuery() = %q, want %q", in.OriginalQuery(), q)
		}
	}
}

func TestExtract_NothingRecognizable(t *testing.T) {
	in := newExtractor().Extract(context.Background(), "le la de pour avec")
	if len(in.Skills()) != 0 {
		t.Errorf("Skills() = %v, want empty", in.Skills())
	}
	if in.Location() != "" {
		t.Errorf("Location() = %q", in.Location())
	}
	if _, ok := in.MaxBudget(); ok {
		t.Error("MaxBudget set")
	}
	if in.NeedsImmediate() {
		t.Error("NeedsImmediate set")
	}
	if _, ok := in.Limit(); ok {
		t.Error("Limit set")
	}
}

func TestExtract_SkillsAndImmediate(t *testing.T) {
	in := newExtractor().Extract(context.Background(), "développeur react disponible immédiatement")

	want := []string{"developpeur", "react"}
	if !reflect.DeepEqual(in.Skills(), want) {
		t.Errorf("Skills() = %v, want %v", in.Skills(), want)
	}
	if !in.NeedsImmediate() {
		t.Error("expected NeedsImmediate")
	}
	if _, ok := in.Limit(); ok {
		t.Error("Limit should not be set without numbers")
	}
}

func TestExtract_DuplicateSkillsKept(t *testing.T) {
	in := newExtractor().Extract(context.Background(), "react REACT réact")
	if len(in.Skills()) != 3 {
		t.Errorf("Skills() = %v, want 3 entries", in.Skills())
	}
}

func TestExtract_Limit(t *testing.T) {
	in := newExtractor().Extract(context.Background(), "donne moi 2 profils")
	limit, ok := in.Limit()
	if !ok || limit != 2 {
		t.Errorf("Limit() = (%d, %v), want (2, true)", limit, ok)
	}
	if _, ok := in.MaxBudget(); ok {
		t.Error("MaxBudget should not be set")
	}
}

func TestExtract_Budget(t *testing.T) {
	tests := []struct {
		query string
		want  float64
	}{
		{"budget 50", 50},
		{"react prix 80 ou 120", 120},
		{"tarif maximum 90€", 90},
		{"under $75 please", 75},
		{"react 150€", 150},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			in := newExtractor().Extract(context.Background(), tt.query)
			got, ok := in.MaxBudget()
			if !ok || got != tt.want {
				t.Errorf("MaxBudget() = (%v, %v), want (%v, true)", got, ok, tt.want)
			}
		})
	}
}

func TestExtract_BudgetWithoutKeyword(t *testing.T) {
	in := newExtractor().Extract(context.Background(), "react 50")
	if _, ok := in.MaxBudget(); ok {
		t.Error("a bare number must not become a budget")
	}
}

func TestExtract_LimitBeforeBudget(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantBudget float64
		hasBudget  bool
	}{
		{"one number goes to limit", "montre 3 profils budget", 3, 0, false},
		{"second number goes to budget", "montre 3 profils budget 120", 3, 120, true},
		{"budget is max of all numbers", "trouve 5 dev prix 90 ou 140", 5, 140, true},
		{"largest number first", "budget 150 montre 3 profils", 150, 150, true},
		{"limit larger than prices", "montre 200 dev prix 90", 200, 200, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newExtractor().Extract(context.Background(), tt.query)
			limit, ok := in.Limit()
			if !ok || limit != tt.wantLimit {
				t.Errorf("Limit() = (%d, %v), want %d", limit, ok, tt.wantLimit)
			}
			budget, ok := in.MaxBudget()
			if ok != tt.hasBudget || budget != tt.wantBudget {
				t.Errorf("MaxBudget() = (%v, %v), want (%v, %v)", budget, ok, tt.wantBudget, tt.hasBudget)
			}
		})
	}
}

func TestExtract_Location(t *testing.T) {
	in := newExtractor().Extract(context.Background(), "freelance à manhatan")
	if in.Location() != "manhattan" {
		t.Errorf("Location() = %q, want manhattan", in.Location())
	}
}

func TestExtract_NilResolver(t *testing.T) {
	e := New(vocabulary.Default(), nil, nil)
	in := e.Extract(context.Background(), "react à manhattan")
	if in.Location() != "" {
		t.Errorf("Location() = %q, want empty", in.Location())
	}
}

func TestExtract_ResolverGetsRawQuery(t *testing.T) {
	r := &stubResolver{loc: "paris"}
	e := New(vocabulary.Default(), r, zap.NewNop())
	in := e.Extract(context.Background(), "Designer à Paris")
	if in.Location() != "paris" || r.calls != 1 {
		t.Errorf("Location() = %q, calls = %d", in.Location(), r.calls)
	}
}

func TestExtract_CustomVocabulary(t *testing.T) {
	vocab := vocabulary.New(vocabulary.Lists{
		Skills:       []string{"cobol"},
		Availability: []string{"pronto"},
		Budget:       []string{"cap"},
		Quantity:     []string{"top"},
	})
	e := New(vocab, nil, zap.NewNop())

	in := e.Extract(context.Background(), "top 4 cobol react pronto cap 60")
	if !reflect.DeepEqual(in.Skills(), []string{"cobol"}) {
		t.Errorf("Skills() = %v", in.Skills())
	}
	if limit, _ := in.Limit(); limit != 4 {
		t.Errorf("Limit() = %d, want 4", limit)
	}
	if budget, _ := in.MaxBudget(); budget != 60 {
		t.Errorf("MaxBudget() = %v, want 60", budget)
	}
	if !in.NeedsImmediate() {
		t.Error("expected NeedsImmediate")
	}
}
