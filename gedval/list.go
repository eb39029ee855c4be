package gedval

import "strings"

// ParseListText parses a comma-separated list with optional surrounding
// whitespace around each element, per the List#Text grammar.
func ParseListText(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// FormatListText serializes a List#Text, separating elements with ", ".
func FormatListText(elems []string) string {
	return strings.Join(elems, ", ")
}

// ListEnum is a comma-separated list of set-scoped enumeration tags.
type ListEnum struct {
	Set    string
	Values []Enum
}

// ParseListEnum parses a comma-separated List#Enum, resolving each element
// against set via resolver (which may be nil, see ParseEnum).
func ParseListEnum(set, text string, resolver EnumResolver) (ListEnum, bool) {
	l := ListEnum{Set: set}
	if text == "" {
		return l, true
	}
	ok := true
	for _, raw := range strings.Split(text, ",") {
		tag := strings.TrimSpace(raw)
		e, valid := ParseEnum(set, tag, resolver)
		l.Values = append(l.Values, e)
		if !valid {
			ok = false
		}
	}
	return l, ok
}

func (l ListEnum) String() string {
	tags := make([]string, len(l.Values))
	for i, e := range l.Values {
		tags[i] = e.Tag
	}
	return strings.Join(tags, ", ")
}

// Empty reports whether the list has no elements.
func (l ListEnum) Empty() bool { return len(l.Values) == 0 }
