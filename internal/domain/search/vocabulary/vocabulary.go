// Package vocabulary holds the keyword tables the intent extractor matches
// query words against. Tables are immutable once built.
package vocabulary

import (
	"strings"

	"github.com/kailas-cloud/qbet/internal/domain/text"
)

// Lists is the raw, human-edited form of the keyword tables.
type Lists struct {
	Skills       []string `yaml:"skills"`
	Availability []string `yaml:"availability"`
	Budget       []string `yaml:"budget"`
	Quantity     []string `yaml:"quantity"`
}

// DefaultLists returns the built-in French and English keyword tables.
func DefaultLists() Lists {
	return Lists{
		Skills: []string{
			"développeur", "dev", "expert", "spécialiste", "maîtrise",
			"connait", "connaissant", "sachant", "capable",
			"wordpress", "react", "javascript", "php", "html", "css",
			"fullstack", "frontend", "backend", "web", "mobile",
			"python", "ruby", "rails", "vue", "angular", "node",
			"aws", "cloud", "devops", "ml", "ai",
			"developer", "typescript", "java", "golang", "swift", "kotlin",
			"django", "postgresql", "figma", "ios", "android", "firebase", "tensorflow",
		},
		Availability: []string{
			"disponible", "urgent", "rapidement", "immédiatement",
			"maintenant", "vite", "pressé", "besoin", "dès que possible",
			"immediately", "asap", "now", "urgently", "available",
		},
		Budget: []string{
			"budget", "prix", "coût", "tarif", "euros", "€", "yen", "¥",
			"maximum", "minimum", "moins", "plus", "environ", "autour",
			"price", "cost", "rate", "max", "dollars", "$", "under",
		},
		Quantity: []string{
			"donne", "montre", "affiche", "trouve", "cherche",
			"freelance", "freelances", "profil", "profils",
			"personne", "personnes", "développeur", "développeurs",
			"show", "find", "give", "list", "freelancer", "freelancers",
			"profile", "profiles", "developers", "people",
		},
	}
}

// Merge returns l with every non-empty list of override replacing its counterpart.
func (l Lists) Merge(override Lists) Lists {
	if len(override.Skills) > 0 {
		l.Skills = override.Skills
	}
	if len(override.Availability) > 0 {
		l.Availability = override.Availability
	}
	if len(override.Budget) > 0 {
		l.Budget = override.Budget
	}
	if len(override.Quantity) > 0 {
		l.Quantity = override.Quantity
	}
	return l
}

// Query is a query prepared once for keyword matching.
type Query struct {
	raw        string
	normalized string
	words      []string
}

// NewQuery lower-cases and normalizes raw for matching.
func NewQuery(raw string) Query {
	normalized := text.Normalize(raw)
	return Query{
		raw:        strings.ToLower(raw),
		normalized: normalized,
		words:      strings.Fields(normalized),
	}
}

// Words returns the normalized words in order.
func (q Query) Words() []string { return q.words }

// Terms is one keyword table. Entries are normalized on construction so
// accented entries match accent-stripped query words.
type Terms struct {
	words   map[string]struct{}
	phrases []string
	symbols []string
}

func newTerms(entries []string) Terms {
	t := Terms{words: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		n := text.Normalize(e)
		switch {
		case n == "":
			// Pure symbols ("€") vanish under normalization; match them raw.
			if s := strings.TrimSpace(strings.ToLower(e)); s != "" {
				t.symbols = append(t.symbols, s)
			}
		case strings.Contains(n, " "):
			t.phrases = append(t.phrases, n)
		default:
			t.words[n] = struct{}{}
		}
	}
	return t
}

// Has reports whether word (already normalized) is a single-word entry.
func (t Terms) Has(word string) bool {
	_, ok := t.words[word]
	return ok
}

// MatchAny reports whether any entry of t occurs in q.
func (t Terms) MatchAny(q Query) bool {
	for _, w := range q.words {
		if t.Has(w) {
			return true
		}
	}
	for _, p := range t.phrases {
		if text.ContainsPhrase(q.normalized, p) {
			return true
		}
	}
	for _, s := range t.symbols {
		if strings.Contains(q.raw, s) {
			return true
		}
	}
	return false
}

// Vocabulary bundles the four keyword tables.
type Vocabulary struct {
	skills       Terms
	availability Terms
	budget       Terms
	quantity     Terms
}

// New builds a Vocabulary from raw lists.
func New(l Lists) Vocabulary {
	return Vocabulary{
		skills:       newTerms(l.Skills),
		availability: newTerms(l.Availability),
		budget:       newTerms(l.Budget),
		quantity:     newTerms(l.Quantity),
	}
}

// Default returns the built-in vocabulary.
func Default() Vocabulary {
	return New(DefaultLists())
}

// Skills returns the known-skill table.
func (v Vocabulary) Skills() Terms { return v.skills }

// Availability returns the urgency table.
func (v Vocabulary) Availability() Terms { return v.availability }

// Budget returns the budget trigger table.
func (v Vocabulary) Budget() Terms { return v.budget }

// Quantity returns the result-count trigger table.
func (v Vocabulary) Quantity() Terms { return v.quantity }
