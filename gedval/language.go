package gedval

import (
	"regexp"
	"strings"
)

// bcp47Subset accepts the common shapes of a BCP-47 language tag: a
// primary language subtag, optional script, region, and variant/extension
// subtags, separated by '-'. It is a practical subset, not the full ABNF.
var bcp47Subset = regexp.MustCompile(`^(?i)[a-z]{2,8}(-[a-z0-9]{1,8})*$`)

// Language parses and serializes a BCP-47 language tag.
type Language struct {
	tag string
}

// ParseLanguage parses text as a BCP-47 tag. On mismatch it substitutes
// "und" (the undetermined-language tag) and ok is false.
func ParseLanguage(text string) (Language, bool) {
	if text != "" && bcp47Subset.MatchString(text) {
		return Language{tag: strings.ToLower(text)}, true
	}
	return Language{tag: "und"}, false
}

func (l Language) String() string { return l.tag }

// Empty reports whether no tag is set (the sentinel "und" is not empty —
// it is itself a valid, if uninformative, tag).
func (l Language) Empty() bool { return l.tag == "" }
