// Package matching decides whether two free-text names, as typed in operational
// spreadsheets, refer to the same driver or city.
package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher compares two names. Implementations must be symmetric.
type Matcher interface {
	Match(a, b string) bool
}

// DefaultMinLength is the shortest name allowed to match by substring or by first word.
const DefaultMinLength = 4

// Fold lower-cases s, removes diacritics and trims surrounding space.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// NameMatcher is the heuristic used for driver names: after folding, names
// match when equal, when the shorter one (at least MinLength characters) is
// contained in the other, or when both start with the same word of at least
// MinLength characters. It tolerates accents, middle names and the "Rota "
// prefix some report files carry.
type NameMatcher struct {
	MinLength int
}

// NewNameMatcher returns the matcher used for driver names.
func NewNameMatcher() NameMatcher {
	return NameMatcher{MinLength: DefaultMinLength}
}

func (m NameMatcher) Match(a, b string) bool {
	return heuristicMatch(NormalizeDriverName(a), NormalizeDriverName(b), m.minLength())
}

func (m NameMatcher) minLength() int {
	if m.MinLength <= 0 {
		return DefaultMinLength
	}
	return m.MinLength
}

// NormalizeDriverName folds s and strips a leading "rota" word followed by
// any whitespace.
func NormalizeDriverName(s string) string {
	n := Fold(s)
	rest := strings.TrimPrefix(n, "rota")
	if rest != n && rest != "" && unicode.IsSpace([]rune(rest)[0]) {
		n = strings.TrimSpace(rest)
	}
	return n
}

// CityMatcher compares city names with the same heuristic as NameMatcher,
// ignoring a trailing "/UF" state suffix ("Ribeirão Preto/SP").
type CityMatcher struct {
	MinLength int
}

func NewCityMatcher() CityMatcher {
	return CityMatcher{MinLength: DefaultMinLength}
}

func (m CityMatcher) Match(a, b string) bool {
	min := m.MinLength
	if min <= 0 {
		min = DefaultMinLength
	}
	return heuristicMatch(NormalizeCityName(a), NormalizeCityName(b), min)
}

// NormalizeCityName keeps the part before the first '/' and folds it.
func NormalizeCityName(s string) string {
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return Fold(s)
}

// SameCity reports exact equality after city normalization.
func SameCity(a, b string) bool {
	na, nb := NormalizeCityName(a), NormalizeCityName(b)
	return na != "" && na == nb
}

func heuristicMatch(a, b string, minLen int) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	if charLen(a) >= minLen && strings.Contains(b, a) {
		return true
	}
	if charLen(b) >= minLen && strings.Contains(a, b) {
		return true
	}

	fa, fb := firstWord(a), firstWord(b)
	return fa == fb && charLen(fa) >= minLen
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func charLen(s string) int {
	return len([]rune(s))
}
