// Package typed implements the schema-aware typed-structure and dataset
// layer (component E): structures addressed by a type URI rather than a
// bare tag, typed payloads dispatched through gedval's datatype parsers,
// and a six-step validator. Modeled on the tag-layer arena/handle design
// in tagtree, generalized from a flat child list to a type-URI-keyed child
// map.
package typed

import "github.com/jacoelho/gedcom/gedval"

// Handle addresses a Structure within a Dataset's arena.
type Handle int32

// NoHandle is the sentinel for "no structure."
const NoHandle Handle = -1

// PayloadKind discriminates the typed-layer payload tagged union.
type PayloadKind int

const (
	PayloadAbsent PayloadKind = iota
	PayloadString
	PayloadInteger
	PayloadAge
	PayloadTime
	PayloadDateValue
	PayloadEnum
	PayloadListText
	PayloadListEnum
	PayloadPointer
	PayloadNullPointer
)

// Payload is the typed-layer tagged union: {string, integer, Age, Time,
// DateValue, Enum, List<string>, List<Enum>, pointer-handle, null-pointer,
// absent}.
type Payload struct {
	Kind      PayloadKind
	Str       string
	Int       gedval.NonNegativeInteger
	Age       gedval.Age
	Time      gedval.Time
	DateValue gedval.DateValue
	Enum      gedval.Enum
	ListText  []string
	ListEnum  gedval.ListEnum
	Pointer   Handle
}

// Empty reports whether the payload carries no value, deferring to each
// datatype's own Empty() predicate rather than just checking Kind: a
// structure can declare a typed payload (e.g. type-Age) and still receive
// empty raw text, which parses cleanly into an empty-valued Age rather than
// collapsing to PayloadAbsent.
func (p Payload) Empty() bool {
	switch p.Kind {
	case PayloadAbsent, PayloadNullPointer:
		return true
	case PayloadString:
		return p.Str == ""
	case PayloadInteger:
		return p.Int.Empty()
	case PayloadAge:
		return p.Age.Empty()
	case PayloadTime:
		return p.Time.Empty()
	case PayloadDateValue:
		return p.DateValue.Empty()
	case PayloadEnum:
		return p.Enum.Empty()
	case PayloadListText:
		return len(p.ListText) == 0
	case PayloadListEnum:
		return p.ListEnum.Empty()
	default:
		return false
	}
}

// Structure is a typed GEDCOM structure: a type URI, an optional xref ID,
// a payload, and children keyed by their type URI.
type Structure struct {
	self    Handle
	Type    string
	ID      string
	Payload Payload
	Sub     map[string][]Handle
	Super   Handle
	Line    int

	dataset        *Dataset
	payloadInvalid bool // set when parsePayload rejected this structure's raw text
}

// Self returns this structure's handle.
func (s *Structure) Self() Handle { return s.self }

// TagName satisfies gedpath.Node by returning the type URI; gedpath
// matches path segments against whatever Node.TagName returns, and here
// that is the type URI rather than a short tag.
func (s *Structure) TagName() string { return s.Type }

// Children flattens Sub for gedpath traversal and for the "remove empty
// child lists" validation step, grouping children by type URI in the order
// each type was first added, insertion order within a type.
func (s *Structure) Children() []*Structure {
	var out []*Structure
	for _, uri := range s.sortedChildTypes() {
		for _, h := range s.Sub[uri] {
			out = append(out, s.dataset.At(h))
		}
	}
	return out
}

// ChildrenOfType returns the children whose type URI is uri, in insertion
// order.
func (s *Structure) ChildrenOfType(uri string) []*Structure {
	handles := s.Sub[uri]
	out := make([]*Structure, len(handles))
	for i, h := range handles {
		out[i] = s.dataset.At(h)
	}
	return out
}

// Superstructure returns the parent structure, or nil at the dataset root.
func (s *Structure) Superstructure() *Structure {
	if s.Super == NoHandle {
		return nil
	}
	return s.dataset.At(s.Super)
}

func (s *Structure) sortedChildTypes() []string {
	types := make([]string, 0, len(s.Sub))
	for uri := range s.Sub {
		types = append(types, uri)
	}
	// Children() is used for validation/traversal where type grouping
	// order doesn't affect correctness; insertion order within a type is
	// preserved, and types are walked in first-insertion order via the
	// dataset's recorded type order on the structure.
	if order, ok := s.dataset.childTypeOrder[s.self]; ok {
		return order
	}
	return types
}
