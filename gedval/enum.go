package gedval

// EnumStatus classifies how an Enum tag was resolved against its set.
type EnumStatus int

const (
	EnumOK EnumStatus = iota
	EnumAliased
	EnumUnregistered
	EnumUnknown // no resolver was supplied; the tag could not be checked
)

// EnumResolver answers set-scoped enumeration-value questions without
// gedval importing a schema package directly.
type EnumResolver interface {
	// EnumValue resolves tag within set, reporting its canonical URI, a
	// status classifying the resolution, and whether the tag conforms to
	// the enumeration-tag grammar at all.
	EnumValue(set, tag string) (uri string, status EnumStatus, ok bool)
}

// Enum is a tag resolved to a URI within a set-scoped enumeration.
type Enum struct {
	Set    string
	Tag    string
	URI    string
	Status EnumStatus
}

// ParseEnum resolves tag within set. resolver may be nil, in which case
// the tag is accepted as-is with EnumUnknown status whenever it conforms
// to the bare enumeration-tag grammar.
func ParseEnum(set, tag string, resolver EnumResolver) (Enum, bool) {
	if !isEnumTagShape(tag) {
		return Enum{Set: set, Tag: tag, Status: EnumUnregistered}, false
	}
	if resolver == nil {
		return Enum{Set: set, Tag: tag, Status: EnumUnknown}, true
	}
	uri, status, ok := resolver.EnumValue(set, tag)
	if !ok {
		return Enum{Set: set, Tag: tag, Status: EnumUnregistered}, false
	}
	return Enum{Set: set, Tag: tag, URI: uri, Status: status}, status == EnumOK || status == EnumAliased
}

func isEnumTagShape(tag string) bool {
	if tag == "" {
		return false
	}
	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if !((ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_') {
			return false
		}
	}
	return true
}

func (e Enum) String() string { return e.Tag }

// Empty reports whether no tag is set.
func (e Enum) Empty() bool { return e.Tag == "" }
