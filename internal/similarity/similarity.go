// Package similarity detects near-duplicate headlines. The same story often
// arrives from several outlets with lightly reworded titles; character n-gram
// Jaccard similarity catches those where exact matching cannot.
package similarity

import (
	"strings"
	"unicode"
)

// Checker accumulates the texts it has seen and flags newcomers that are too
// close to any of them. It is scoped to a single run and is not safe for
// concurrent use.
type Checker struct {
	threshold float64
	ngramSize int
	seen      []map[string]struct{}
}

func New(threshold float64, ngramSize int) *Checker {
	return &Checker{threshold: threshold, ngramSize: ngramSize}
}

// SeenBefore reports whether text is a near-duplicate of any earlier text.
// Novel texts are recorded so later duplicates of them are caught.
func (c *Checker) SeenBefore(text string) bool {
	grams := c.ngrams(text)
	for _, prev := range c.seen {
		if c.jaccard(grams, prev) >= c.threshold {
			return true
		}
	}
	c.seen = append(c.seen, grams)
	return false
}

// normalize lowercases, removes punctuation, and collapses whitespace.
func (c *Checker) normalize(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevSpace = false
		} else if !prevSpace {
			sb.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}

func (c *Checker) ngrams(text string) map[string]struct{} {
	normalized := c.normalize(text)
	set := make(map[string]struct{})
	runes := []rune(normalized)
	for i := 0; i <= len(runes)-c.ngramSize; i++ {
		set[string(runes[i:i+c.ngramSize])] = struct{}{}
	}
	return set
}

// jaccard computes |A intersection B| / |A union B|.
func (c *Checker) jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
