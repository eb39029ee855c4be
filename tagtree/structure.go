// Package tagtree implements the tag layer (component B): the
// dialect-parameterized parser and serializer for the line-oriented GEDC
// grammar, producing and consuming a forest of generic tag-structures.
package tagtree

// Handle addresses a Structure within the Forest arena that owns it.
// Superstructure and reference-set fields are Handles rather than pointers,
// per the "Cyclic and back-referenced object graphs" design note: this
// replaces identity back-pointers with index lookups and sidesteps Go's
// lack of a lifetime story for pointer cycles.
type Handle int32

// NoHandle is the sentinel used where a Handle field is absent (no
// superstructure, no pointer target).
const NoHandle Handle = -1

// PayloadKind distinguishes a Structure's payload shape.
type PayloadKind int

const (
	PayloadAbsent PayloadKind = iota
	PayloadString
	PayloadPointer // resolved reference to another Structure in the forest
	PayloadNull    // the "@VOID@" sentinel
)

// Payload is the tagged union a tag-structure's payload holds: absent,
// string, pointer-handle, or null-pointer.
type Payload struct {
	Kind PayloadKind
	// Text holds the string payload when Kind == PayloadString. Parse keeps
	// not-yet-resolved xref-id strings outside the payload until its second
	// pointer-resolution pass runs.
	Text   string
	Target Handle // set when Kind == PayloadPointer
}

// Structure is one node of the tag forest: a tag, a payload, an ordered
// list of children, a reverse superstructure link, and the set of
// structures that point at it.
type Structure struct {
	Tag     string
	Payload Payload
	Sub     []Handle
	Super   Handle
	Refs    []Handle
	ID      string // preferred cross-reference identifier, "" if none
	Line    int    // 1-based source line this structure's header occupied

	self   Handle
	forest *Forest
}

// Self returns this structure's own handle within its forest.
func (s *Structure) Self() Handle { return s.self }

// Children returns the structure's substructures as pointers, satisfying
// gedpath.Node.
func (s *Structure) Children() []*Structure {
	out := make([]*Structure, len(s.Sub))
	for i, h := range s.Sub {
		out[i] = s.forest.At(h)
	}
	return out
}

// TagName returns the structure's tag, satisfying gedpath.Node.
func (s *Structure) TagName() string { return s.Tag }

// Superstructure returns the structure's parent, or nil at top level.
func (s *Structure) Superstructure() *Structure {
	if s.Super == NoHandle {
		return nil
	}
	return s.forest.At(s.Super)
}

// References returns the structures that point at this one.
func (s *Structure) References() []*Structure {
	out := make([]*Structure, len(s.Refs))
	for i, h := range s.Refs {
		out[i] = s.forest.At(h)
	}
	return out
}

// PointerTarget returns the structure a pointer payload refers to, or nil
// if the payload is not a resolved pointer.
func (s *Structure) PointerTarget() *Structure {
	if s.Payload.Kind != PayloadPointer {
		return nil
	}
	return s.forest.At(s.Payload.Target)
}

// StringPayload returns the structure's string payload and whether it is
// present (Kind == PayloadString).
func (s *Structure) StringPayload() (string, bool) {
	if s.Payload.Kind != PayloadString {
		return "", false
	}
	return s.Payload.Text, true
}

// IsVoidPointer reports whether the payload is the null-pointer sentinel.
func (s *Structure) IsVoidPointer() bool {
	return s.Payload.Kind == PayloadNull
}

// Forest returns the arena this structure belongs to.
func (s *Structure) Forest() *Forest { return s.forest }
