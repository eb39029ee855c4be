// Package gedval implements the typed-payload datatypes (component C):
// parsing and serializing Age, Time, Date, DateValue, Enum, list-of-text,
// list-of-enum, and the validated scalar grammars Name, Language,
// MediaType, and NonNegativeInteger. Every type exposes a canonical
// String() for round-trip and an Empty() predicate, following the
// teacher's internal/value lexical-scanner idiom (hand-written fixed-width
// digit scanning for numeric sub-grammars, e.g. internal/value/datetime.go's
// parseFixedDigits) rather than a single monolithic regexp.
package gedval

import "strconv"

// NonNegativeInteger parses and serializes the "[0-9]+" grammar.
type NonNegativeInteger struct {
	Value int
	valid bool
}

// ParseNonNegativeInteger parses text, which must be one or more decimal
// digits. On mismatch it reports via ok=false and returns the sentinel 0.
func ParseNonNegativeInteger(text string) (NonNegativeInteger, bool) {
	if text == "" {
		return NonNegativeInteger{}, false
	}
	n := 0
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			return NonNegativeInteger{}, false
		}
		n = n*10 + int(ch-'0')
	}
	return NonNegativeInteger{Value: n, valid: true}, true
}

func (n NonNegativeInteger) String() string {
	if !n.valid {
		return "0"
	}
	return strconv.Itoa(n.Value)
}

// Empty reports whether no informative value is set.
func (n NonNegativeInteger) Empty() bool { return !n.valid }
