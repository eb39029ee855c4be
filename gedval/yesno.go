package gedval

// YesNo parses and serializes the "Y|<NULL>" grammar: either empty, or the
// literal "Y".
type YesNo struct {
	yes bool
}

// ParseYesNo parses text; only "" and "Y" are valid.
func ParseYesNo(text string) (YesNo, bool) {
	switch text {
	case "":
		return YesNo{}, true
	case "Y":
		return YesNo{yes: true}, true
	default:
		return YesNo{}, false
	}
}

func (y YesNo) String() string {
	if y.yes {
		return "Y"
	}
	return ""
}

// Empty reports whether the value is the empty (not "Y") form.
func (y YesNo) Empty() bool { return !y.yes }
