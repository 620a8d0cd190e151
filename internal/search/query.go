package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Query is a listing filter: whitespace-separated tokens that must all
// fuzzy-match a name. Matching ignores case.
type Query struct {
	tokens  [][]rune
	matcher *FuzzyMatcher
	fold    cases.Caser
}

// NewQuery parses raw into tokens.
func NewQuery(raw string) *Query {
	q := &Query{
		matcher: NewFuzzyMatcher(),
		fold:    cases.Fold(),
	}
	for _, tok := range strings.Fields(raw) {
		q.tokens = append(q.tokens, []rune(q.fold.String(tok)))
	}
	return q
}

// Empty reports whether the query has no tokens and so matches everything.
func (q *Query) Empty() bool {
	return len(q.tokens) == 0
}

// Match scores name against every token and returns the mean score.
func (q *Query) Match(name string) (float64, bool) {
	if q.Empty() {
		return 1.0, true
	}
	target := []rune(q.fold.String(name))
	total := 0.0
	for _, tok := range q.tokens {
		score, ok := q.matcher.MatchRunes(tok, target)
		if !ok {
			return 0, false
		}
		total += score
	}
	return total / float64(len(q.tokens)), true
}
