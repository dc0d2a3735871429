package intent

import (
	"strings"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func TestNew_Valid(t *testing.T) {
	in, err := New(Params{
		OriginalQuery:  "react budget 80",
		Skills:         []string{"react", "react"},
		Location:       "tokyo",
		MaxBudget:      floatPtr(80),
		NeedsImmediate: true,
		Limit:          intPtr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.OriginalQuery() != "react budget 80" {
		t.Errorf("OriginalQuery() = %q", in.OriginalQuery())
	}
	if len(in.Skills()) != 2 {
		t.Errorf("Skills() = %v, duplicates must be kept", in.Skills())
	}
	if b, ok := in.MaxBudget(); !ok || b != 80 {
		t.Errorf("MaxBudget() = %v, %v", b, ok)
	}
	if l, ok := in.Limit(); !ok || l != 3 {
		t.Errorf("Limit() = %v, %v", l, ok)
	}
	if !in.NeedsImmediate() {
		t.Error("NeedsImmediate() = false")
	}
	if in.IsEmpty() {
		t.Error("IsEmpty() = true for populated intent")
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	budget := 50.0
	skills := []string{"php"}
	in, err := New(Params{Skills: skills, MaxBudget: &budget})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	budget = 10
	skills[0] = "go"
	if b, _ := in.MaxBudget(); b != 50 {
		t.Errorf("MaxBudget() = %v, caller mutation leaked", b)
	}
	if in.Skills()[0] != "php" {
		t.Errorf("Skills()[0] = %q, caller mutation leaked", in.Skills()[0])
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Params{MaxBudget: floatPtr(-1)})
	if err == nil || !strings.Contains(err.Error(), "max budget") {
		t.Errorf("expected max budget error, got %v", err)
	}

	_, err = New(Params{Limit: intPtr(0)})
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Errorf("expected limit error, got %v", err)
	}
}

func TestEmpty(t *testing.T) {
	in := Empty("hello")
	if !in.IsEmpty() {
		t.Error("Empty().IsEmpty() = false")
	}
	if in.OriginalQuery() != "hello" {
		t.Errorf("OriginalQuery() = %q", in.OriginalQuery())
	}
	if in.Skills() == nil || len(in.Skills()) != 0 {
		t.Errorf("Skills() = %v, want empty non-nil", in.Skills())
	}
	if _, ok := in.MaxBudget(); ok {
		t.Error("MaxBudget() should be unset")
	}
	if _, ok := in.Limit(); ok {
		t.Error("Limit() should be unset")
	}
}
