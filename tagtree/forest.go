package tagtree

import "strconv"

// Forest is an arena of Structures plus the ordered list of top-level
// (level-0) structures. It owns every Structure it creates; a Structure is
// destroyed only when its Forest is, per spec §3's lifecycle rule.
type Forest struct {
	nodes   []*Structure
	roots   []Handle
	byID    map[string]Handle
	nextMin int // last suffix tried for minted identifiers, e.g. X<n>
}

// New returns an empty forest.
func New() *Forest {
	return &Forest{byID: make(map[string]Handle)}
}

// At returns the structure addressed by h.
func (f *Forest) At(h Handle) *Structure {
	if h == NoHandle {
		return nil
	}
	return f.nodes[h]
}

// Roots returns the top-level structures in document order.
func (f *Forest) Roots() []*Structure {
	out := make([]*Structure, len(f.roots))
	for i, h := range f.roots {
		out[i] = f.nodes[h]
	}
	return out
}

// NewStructure allocates a Structure with the given tag and superstructure
// handle (NoHandle for a top-level structure), appending it to the arena
// and, if super is NoHandle, to the root list. It does not link the new
// handle into the parent's Sub list — callers needing that should use
// AddChild.
func (f *Forest) NewStructure(tag string, super Handle) *Structure {
	h := Handle(len(f.nodes))
	s := &Structure{Tag: tag, Super: super, self: h, forest: f}
	f.nodes = append(f.nodes, s)
	if super == NoHandle {
		f.roots = append(f.roots, h)
	}
	return s
}

// AddChild allocates a child structure under parent with the given tag and
// links it into parent.Sub.
func (f *Forest) AddChild(parent *Structure, tag string) *Structure {
	super := NoHandle
	if parent != nil {
		super = parent.self
	}
	child := f.NewStructure(tag, super)
	if parent != nil {
		parent.Sub = append(parent.Sub, child.self)
	}
	return child
}

// RegisterID claims id for handle h if free, returning false if it was
// already claimed by a different structure. "VOID" is always rejected: it
// is reserved for the null-pointer sentinel.
func (f *Forest) RegisterID(id string, h Handle) bool {
	if id == "" || id == "VOID" {
		return false
	}
	if existing, ok := f.byID[id]; ok && existing != h {
		return false
	}
	f.byID[id] = h
	f.nodes[h].ID = id
	return true
}

// LookupID resolves an xref-id string to a handle, reporting false if
// unresolved. "VOID" is never resolvable through LookupID — callers must
// special-case it as the null-pointer sentinel before calling.
func (f *Forest) LookupID(id string) (Handle, bool) {
	h, ok := f.byID[id]
	return h, ok
}

// AddReference records that the structure at from points at the structure
// at to.
func (f *Forest) AddReference(to, from Handle) {
	target := f.nodes[to]
	target.Refs = append(target.Refs, from)
}

// EnsureID returns a stable identifier for h, reusing its preferred ID if
// unclaimed, otherwise minting "X1", "X2", … skipping identifiers already
// claimed or reserved ("VOID"), per the "Identifier minting" design note.
func (f *Forest) EnsureID(h Handle) string {
	s := f.nodes[h]
	if s.ID != "" {
		if existing, ok := f.byID[s.ID]; !ok || existing == h {
			f.byID[s.ID] = h
			return s.ID
		}
	}
	for {
		f.nextMin++
		candidate := "X" + strconv.Itoa(f.nextMin)
		if _, taken := f.byID[candidate]; taken {
			continue
		}
		f.byID[candidate] = h
		s.ID = candidate
		return candidate
	}
}

// Len returns the number of structures in the arena.
func (f *Forest) Len() int { return len(f.nodes) }
