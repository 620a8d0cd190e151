package search

import (
	"math"
	"unicode"
)

// FuzzyMatcher scores a pattern against a file name. A name matches when
// every pattern rune appears in it in order.
//
// Scoring:
//   - every matched rune earns charBonus, more at a word start
//   - runs of adjacent runes earn consecutiveBonus
//   - gaps between matched runes cost gapPenalty per skipped rune
//   - a contiguous hit earns substringBonus, a prefix hit also prefixBonus
type FuzzyMatcher struct {
	consecutiveBonus        float64
	wordBoundaryBonus       float64
	charBonus               float64
	gapPenalty              float64
	substringBonus          float64
	prefixBonus             float64
	wordHitBonus            float64
	substringBoundaryFactor float64
	substringInteriorFactor float64
}

// NewFuzzyMatcher creates a matcher with the default weights.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{
		consecutiveBonus:        1.2,
		wordBoundaryBonus:       0.6,
		charBonus:               1.2,
		gapPenalty:              0.18,
		substringBonus:          1.2,
		prefixBonus:             2.4,
		wordHitBonus:            3.2,
		substringBoundaryFactor: 0.3,
		substringInteriorFactor: 0.15,
	}
}

// Match returns the score of pattern against text and whether it matched.
// Runes are compared as given; callers fold case beforehand.
func (fm *FuzzyMatcher) Match(pattern, text string) (score float64, matched bool) {
	if pattern == "" {
		return 1.0, true
	}
	return fm.MatchRunes([]rune(pattern), []rune(text))
}

// MatchRunes is Match over pre-split runes.
func (fm *FuzzyMatcher) MatchRunes(pattern, text []rune) (float64, bool) {
	if len(pattern) == 0 {
		return 1.0, true
	}
	if len(pattern) > len(text) {
		return 0, false
	}

	var score float64
	var wordHits int
	if idx := indexRunes(text, pattern); idx >= 0 {
		score, wordHits = fm.contiguousScore(text, idx, len(pattern))
		bonus := fm.substringBonus
		if idx == 0 {
			score += fm.prefixBonus
		} else {
			switch text[idx-1] {
			case '-', '_', ' ', '.':
				bonus *= fm.substringBoundaryFactor
			default:
				bonus *= fm.substringInteriorFactor
			}
		}
		score += bonus
	} else {
		var ok bool
		score, wordHits, ok = fm.subsequenceScore(pattern, text)
		if !ok {
			return 0, false
		}
	}
	return score + fm.wordHitBonus*float64(wordHits), true
}

func (fm *FuzzyMatcher) charScore(text []rune, idx int) float64 {
	if isWordBoundary(text, idx) {
		return fm.charBonus + fm.wordBoundaryBonus
	}
	return fm.charBonus
}

func (fm *FuzzyMatcher) contiguousScore(text []rune, start, length int) (float64, int) {
	score := 0.0
	wordHits := 0
	for i := 0; i < length; i++ {
		idx := start + i
		s := fm.charScore(text, idx)
		if isStrongWordBoundary(text, idx) {
			wordHits++
		}
		if i == 0 {
			s -= fm.gapPenalty * 0.02 * float64(idx)
		} else {
			s += fm.consecutiveBonus
		}
		score += s
	}
	return score, wordHits
}

// subsequenceScore finds the best-scoring placement of pattern in text.
// dp[i][j] is the best score with pattern[i] matched at text[j]; a gap of
// g skipped runes costs g*gapPenalty, so the running maximum is kept over
// prev[k]+gapPenalty*k and shifted back when used.
func (fm *FuzzyMatcher) subsequenceScore(pattern, text []rune) (float64, int, bool) {
	m, n := len(pattern), len(text)
	negInf := math.Inf(-1)
	prev := make([]float64, n)
	curr := make([]float64, n)
	back := make([]int, m*n)

	for j := range prev {
		prev[j] = negInf
		if pattern[0] == text[j] {
			prev[j] = fm.charScore(text, j) - fm.gapPenalty*0.02*float64(j)
		}
	}

	for i := 1; i < m; i++ {
		runBest, runIdx := negInf, -1
		for j := 0; j < n; j++ {
			curr[j] = negInf
			if k := j - 2; k >= 0 && prev[k] > negInf {
				if v := prev[k] + fm.gapPenalty*float64(k); v > runBest {
					runBest, runIdx = v, k
				}
			}
			if pattern[i] != text[j] {
				continue
			}

			cs := fm.charScore(text, j)
			if j > 0 && prev[j-1] > negInf {
				curr[j] = prev[j-1] + cs + fm.consecutiveBonus
				back[i*n+j] = j - 1
			}
			if runIdx >= 0 {
				if v := runBest - fm.gapPenalty*float64(j-1) + cs; v > curr[j] {
					curr[j] = v
					back[i*n+j] = runIdx
				}
			}
		}
		prev, curr = curr, prev
	}

	end := -1
	for j, v := range prev {
		if v > negInf && (end < 0 || v > prev[end]) {
			end = j
		}
	}
	if end < 0 {
		return 0, 0, false
	}

	wordHits := 0
	k := end
	for i := m - 1; i >= 0; i-- {
		if isStrongWordBoundary(text, k) {
			wordHits++
		}
		if i > 0 {
			k = back[i*n+k]
		}
	}
	return prev[end], wordHits, true
}

func isWordBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, curr := text[idx-1], text[idx]
	switch prev {
	case '-', '_', ' ', '.':
		return true
	}
	if !unicode.IsLetter(prev) && unicode.IsLetter(curr) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

// isStrongWordBoundary is a word start that is not just after '_' or '.'.
func isStrongWordBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, curr := text[idx-1], text[idx]
	switch prev {
	case ' ', '-':
		return true
	case '_', '.':
		return false
	}
	if !unicode.IsLetter(prev) && unicode.IsLetter(curr) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

func indexRunes(haystack, needle []rune) int {
	n, m := len(haystack), len(needle)
outer:
	for i := 0; i+m <= n; i++ {
		for j := 0; j < m; j++ {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
