// Package matching decides which required terms are present in free resume text.
package matching

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

const (
	// DefaultThreshold is the similarity a segment must exceed to count as a match.
	DefaultThreshold = 80.0
	// DefaultSeparator splits resume text into candidate segments.
	DefaultSeparator = ","
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)

// Matcher performs approximate term matching against separator-delimited segments.
type Matcher struct {
	Threshold float64
	Separator string
}

func New() *Matcher {
	return &Matcher{
		Threshold: DefaultThreshold,
		Separator: DefaultSeparator,
	}
}

// Match returns the required terms present in text, in the order of required.
func (m *Matcher) Match(required []string, text string) []string {
	matched := make([]string, 0, len(required))
	if len(required) == 0 {
		return matched
	}

	segments := m.Segments(text)
	for _, term := range required {
		if m.Contains(segments, term) {
			matched = append(matched, term)
		}
	}

	return matched
}

// Contains reports whether any segment is similar enough to term.
func (m *Matcher) Contains(segments []string, term string) bool {
	for _, segment := range segments {
		if PartialRatio(term, segment) > m.Threshold {
			return true
		}
	}
	return false
}

// Segments lower-cases text and splits it on the separator.
// Text without a separator is a single segment.
func (m *Matcher) Segments(text string) []string {
	text = strings.ToLower(text)
	if m.Separator == "" {
		return []string{text}
	}
	return strings.Split(text, m.Separator)
}

// PartialRatio scores, from 0 to 100, how well term matches its best-aligned
// fragment of segment. Fragments are runs of whole words, from one word up to
// one more word than the term has.
func PartialRatio(term, segment string) float64 {
	t := Normalize(term)
	words := strings.Fields(Normalize(segment))
	if t == "" || len(words) == 0 {
		return 0
	}

	width := len(strings.Fields(t)) + 1
	best := 0.0
	for size := 1; size <= width && size <= len(words); size++ {
		for start := 0; start+size <= len(words); start++ {
			score := Ratio(t, strings.Join(words[start:start+size], " "))
			if score > best {
				best = score
			}
			if best == 100 {
				return best
			}
		}
	}

	return best
}

// Ratio is the normalized Indel similarity of a and b, from 0 to 100.
func Ratio(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	return float64(200*edlib.LCS(a, b)) / float64(total)
}

// Normalize lower-cases s and collapses every run of characters that are not
// letters, digits, '+' or '#' into a single space.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
