package typed

import "github.com/jacoelho/gedcom/gedpath"

// Roots returns the dataset's top-level structures — the header, if any,
// followed by records in first-registration order — for gedpath traversal.
func (d *Dataset) Roots() []*Structure {
	var out []*Structure
	if h := d.Header(); h != nil {
		out = append(out, h)
	}
	for _, uri := range d.recordTypeOrder() {
		out = append(out, d.Records(uri)...)
	}
	return out
}

// Select walks a chain of type URIs from the dataset's top-level structures
// downward: tags[0] matches among top-level roots, each subsequent tags[i]
// matches among the previous step's direct children. Type URIs contain
// ".", so they can't be written through gedpath.Compile's dot-separated
// string syntax the way short tags can; the chain is built directly from
// gedpath.Step values instead.
func (d *Dataset) Select(tags ...string) []*Structure {
	return gedpath.Select(d.Roots(), chainPath(tags))
}

// SelectFirst returns the first match for the tags chain, or nil if there
// is none. See Select.
func (d *Dataset) SelectFirst(tags ...string) *Structure {
	s, ok := gedpath.SelectFirst(d.Roots(), chainPath(tags))
	if !ok {
		return nil
	}
	return s
}

// SelectDescendant returns every structure anywhere in the dataset whose
// type URI is uri, regardless of position or depth.
func (d *Dataset) SelectDescendant(uri string) []*Structure {
	return gedpath.Select(d.Roots(), gedpath.Path{Steps: []gedpath.Step{{Axis: gedpath.AxisDescendant, Tag: uri}}})
}

func chainPath(tags []string) gedpath.Path {
	steps := make([]gedpath.Step, len(tags))
	for i, tag := range tags {
		axis := gedpath.AxisChild
		if i == 0 {
			axis = gedpath.AxisTop
		}
		steps[i] = gedpath.Step{Axis: axis, Tag: tag}
	}
	return gedpath.Path{Steps: steps}
}
