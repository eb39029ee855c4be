package gedval

import (
	"regexp"
	"strings"
)

// mediaTypeSubset accepts "type/subtype" with an RFC 6838 restricted-name
// token on each side and optional ";parameter=value" pairs — a practical
// subset of the full RFC 6838 grammar.
var mediaTypeSubset = regexp.MustCompile(
	`^[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*/[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*(;[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*=[^;]+)*$`)

// MediaType parses and serializes an RFC 6838 media type.
type MediaType struct {
	value string
}

// ParseMediaType parses text. On mismatch it substitutes
// "application/octet-stream" and ok is false.
func ParseMediaType(text string) (MediaType, bool) {
	if text != "" && mediaTypeSubset.MatchString(text) {
		return MediaType{value: strings.ToLower(text)}, true
	}
	return MediaType{value: "application/octet-stream"}, false
}

func (m MediaType) String() string { return m.value }

// Empty reports whether no media type is set.
func (m MediaType) Empty() bool { return m.value == "" }
