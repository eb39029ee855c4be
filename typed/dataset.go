package typed

import (
	"fmt"
	"strconv"

	"github.com/jacoelho/gedcom/schema"
)

// Dataset owns the arena of typed structures for one document, mirroring
// tagtree.Forest's arena/handle pattern generalized to type-URI-keyed
// children. Each dataset owns its own schema lookup wrapper, per §5's "no
// shared mutable state across datasets."
type Dataset struct {
	nodes   []*Structure
	header  Handle
	records map[string][]Handle // type URI -> top-level record handles, insertion order
	byID    map[string]Handle
	nextMin int

	childTypeOrder map[Handle][]string

	Lookup *schema.Lookup
}

// NewDataset returns an empty dataset bound to lookup.
func NewDataset(lookup *schema.Lookup) *Dataset {
	return &Dataset{
		header:         NoHandle,
		records:        make(map[string][]Handle),
		byID:           make(map[string]Handle),
		childTypeOrder: make(map[Handle][]string),
		Lookup:         lookup,
	}
}

// At returns the structure for h.
func (d *Dataset) At(h Handle) *Structure {
	if h == NoHandle {
		return nil
	}
	return d.nodes[h]
}

// Header returns the dataset's HEAD structure, or nil if none was created.
func (d *Dataset) Header() *Structure { return d.At(d.header) }

// Records returns the top-level record handles for a record type URI.
func (d *Dataset) Records(typeURI string) []*Structure {
	handles := d.records[typeURI]
	out := make([]*Structure, len(handles))
	for i, h := range handles {
		out[i] = d.At(h)
	}
	return out
}

func (d *Dataset) alloc(typeURI string, super Handle) *Structure {
	h := Handle(len(d.nodes))
	s := &Structure{self: h, Type: typeURI, Super: super, Sub: make(map[string][]Handle), dataset: d}
	d.nodes = append(d.nodes, s)
	return s
}

// NewRecord resolves tagOrURI at record level and creates a new top-level
// structure, registering it under its type in Records.
func (d *Dataset) NewRecord(tagOrURI string) (*Structure, error) {
	typeURI, err := d.resolveTag("", tagOrURI)
	if err != nil {
		return nil, err
	}
	s := d.alloc(typeURI, NoHandle)
	if typeURI == headerType {
		d.header = s.self
	} else {
		d.records[typeURI] = append(d.records[typeURI], s.self)
	}
	return s, nil
}

// headerType is the well-known type URI for the HEAD structure, needed to
// special-case it out of the generic records map.
const headerType = "https://gedcom.io/terms/v7/HEAD"

// NewChild resolves tagOrURI within parent's type and appends a new child
// structure.
func (s *Structure) NewChild(tagOrURI string) (*Structure, error) {
	typeURI, err := s.dataset.resolveTag(s.Type, tagOrURI)
	if err != nil {
		return nil, err
	}
	child := s.dataset.alloc(typeURI, s.self)
	s.addChild(typeURI, child.self)
	return child, nil
}

func (s *Structure) addChild(typeURI string, h Handle) {
	if _, ok := s.Sub[typeURI]; !ok {
		s.dataset.childTypeOrder[s.self] = append(s.dataset.childTypeOrder[s.self], typeURI)
	}
	s.Sub[typeURI] = append(s.Sub[typeURI], h)
}

func (d *Dataset) resolveTag(containerURI, tagOrURI string) (string, error) {
	if isURI(tagOrURI) {
		return tagOrURI, nil
	}
	if d.Lookup == nil {
		return "", fmt.Errorf("resolve tag %s: no schema lookup bound", tagOrURI)
	}
	uri, ok := d.Lookup.Substructure(containerURI, tagOrURI)
	if !ok && uri == "" {
		return "", fmt.Errorf("resolve tag %s: unresolvable", tagOrURI)
	}
	return uri, nil
}

func isURI(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return i > 0
		}
		if s[i] == ' ' {
			return false
		}
	}
	return false
}

// RegisterID records id as the xref identifier of h.
func (d *Dataset) RegisterID(id string, h Handle) bool {
	if _, exists := d.byID[id]; exists {
		return false
	}
	d.byID[id] = h
	d.At(h).ID = id
	return true
}

// LookupID resolves an xref identifier to its structure handle.
func (d *Dataset) LookupID(id string) (Handle, bool) {
	h, ok := d.byID[id]
	return h, ok
}

// EnsureID mints an identifier for h if it has none, skipping identifiers
// already claimed.
func (d *Dataset) EnsureID(h Handle) string {
	s := d.At(h)
	if s.ID != "" {
		return s.ID
	}
	for {
		d.nextMin++
		candidate := "X" + strconv.Itoa(d.nextMin)
		if _, taken := d.byID[candidate]; !taken {
			d.RegisterID(candidate, h)
			return candidate
		}
	}
}

// Len reports the number of structures in the dataset's arena.
func (d *Dataset) Len() int { return len(d.nodes) }
