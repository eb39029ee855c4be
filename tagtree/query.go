package tagtree

import "github.com/jacoelho/gedcom/gedpath"

// Select runs a dot-path query (spec §4.6) against the forest's top-level
// structures, returning matches in document order.
func (f *Forest) Select(path string) []*Structure {
	return gedpath.Select(f.Roots(), gedpath.Compile(path))
}

// SelectFirst returns the first match for path, or nil if there is none.
func (f *Forest) SelectFirst(path string) *Structure {
	s, ok := gedpath.SelectFirst(f.Roots(), gedpath.Compile(path))
	if !ok {
		return nil
	}
	return s
}
