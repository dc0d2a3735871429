package vocabulary

import "testing"

func TestTerms_AccentedEntriesMatchNormalizedWords(t *testing.T) {
	v := Default()
	if !v.Skills().Has("developpeur") {
		t.Error("accented skill entry should match its normalized form")
	}
	if !v.Availability().Has("immediatement") {
		t.Error("accented availability entry should match its normalized form")
	}
	if v.Skills().Has("développeur") {
		t.Error("Has expects normalized words only")
	}
}

func TestTerms_MatchAny(t *testing.T) {
	v := Default()
	tests := []struct {
		name  string
		terms Terms
		query string
		want  bool
	}{
		{"single word", v.Availability(), "j'ai besoin d'un dev", true},
		{"phrase", v.Availability(), "dès que possible svp", true},
		{"phrase split", v.Availability(), "possible que dès", false},
		{"symbol", v.Budget(), "react 50€", true},
		{"dollar symbol", v.Budget(), "react $80", true},
		{"no match", v.Budget(), "react developer", false},
		{"quantity", v.Quantity(), "donne moi 2 profils", true},
		{"empty query", v.Quantity(), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.terms.MatchAny(NewQuery(tt.query)); got != tt.want {
				t.Errorf("MatchAny(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestNew_CustomLists(t *testing.T) {
	v := New(Lists{Skills: []string{"Rust"}, Quantity: []string{"give"}})
	if !v.Skills().Has("rust") {
		t.Error("custom skill not found")
	}
	if v.Skills().Has("react") {
		t.Error("default skills must not leak into a custom vocabulary")
	}
	if v.Budget().MatchAny(NewQuery("budget 50")) {
		t.Error("empty budget table should never match")
	}
}

func TestLists_Merge(t *testing.T) {
	base := DefaultLists()
	merged := base.Merge(Lists{Budget: []string{"budget"}})
	if len(merged.Budget) != 1 {
		t.Errorf("Budget len = %d, want override", len(merged.Budget))
	}
	if len(merged.Skills) != len(base.Skills) {
		t.Error("Skills should keep the base list when override is empty")
	}
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("Développeur REACT")
	words := q.Words()
	if len(words) != 2 || words[0] != "developpeur" || words[1] != "react" {
		t.Errorf("Words() = %v", words)
	}
}
