// Package intent turns a raw free-text query into a structured search intent.
package intent

import (
	"context"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	domintent "github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/domain/search/vocabulary"
)

// MaxNumber is the largest digit run still read as a budget or a result count.
const MaxNumber = 1000

var digitRun = regexp.MustCompile(`\d+`)

// Extractor detects skills, location, budget, urgency and result count in a query.
type Extractor struct {
	vocab    vocabulary.Vocabulary
	location LocationResolver
	logger   *zap.Logger
}

// New creates an Extractor. location can be nil, in which case no location is detected.
func New(vocab vocabulary.Vocabulary, location LocationResolver, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{vocab: vocab, location: location, logger: logger}
}

// Extract builds the intent for query. It never fails: an unrecognizable
// query produces the empty intent.
func (e *Extractor) Extract(ctx context.Context, query string) domintent.Intent {
	q := vocabulary.NewQuery(query)
	if len(q.Words()) == 0 {
		return domintent.Empty(query)
	}

	p := domintent.Params{
		OriginalQuery: query,
		Skills:        e.skills(q),
	}

	numbers := ExtractNumbers(query)
	limitTaken := false
	if len(numbers) > 0 && e.vocab.Quantity().MatchAny(q) {
		limit := numbers[0]
		p.Limit = &limit
		limitTaken = true
	}
	// A lone number already used as the limit is not also a budget.
	if len(numbers) > 0 && !(limitTaken && len(numbers) == 1) && e.vocab.Budget().MatchAny(q) {
		budget := float64(maxOf(numbers))
		p.MaxBudget = &budget
	}

	p.NeedsImmediate = e.vocab.Availability().MatchAny(q)

	if e.location != nil {
		p.Location = e.location.Resolve(ctx, query)
	}

	in, err := domintent.New(p)
	if err != nil {
		// Unreachable: numbers are bounded to (0, MaxNumber].
		e.logger.Error("Intent construction failed", zap.Error(err))
		return domintent.Empty(query)
	}

	e.logger.Debug("Intent extracted",
		zap.Strings("skills", in.Skills()),
		zap.String("location", in.Location()),
		zap.Bool("needs_immediate", in.NeedsImmediate()),
		zap.Ints("numbers", numbers),
	)
	return in
}

func (e *Extractor) skills(q vocabulary.Query) []string {
	skills := make([]string, 0)
	terms := e.vocab.Skills()
	for _, w := range q.Words() {
		if terms.Has(w) {
			skills = append(skills, w)
		}
	}
	return skills
}

// ExtractNumbers returns every maximal digit run of s in (0, MaxNumber], in order.
// Runs too long to parse are dropped.
func ExtractNumbers(s string) []int {
	runs := digitRun.FindAllString(s, -1)
	out := make([]int, 0, len(runs))
	for _, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		if n > 0 && n <= MaxNumber {
			out = append(out, n)
		}
	}
	return out
}

func maxOf(ns []int) int {
	m := ns[0]
	for _, n := range ns[1:] {
		if n > m {
			m = n
		}
	}
	return m
}
