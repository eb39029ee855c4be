package gedpath

// Node is the minimal shape a tree must present for path selection. Both
// tagtree.Structure and typed.Structure satisfy this (the latter flattens
// its type-keyed substructure map before matching, grouping children by type
// URI in the order each type was first added).
type Node[T any] interface {
	TagName() string
	Children() []T
}

// Select evaluates path against roots, returning every matching node in
// document order.
func Select[T Node[T]](roots []T, path Path) []T {
	if len(path.Steps) == 0 {
		return nil
	}
	frontier := matchFirstStep(roots, path.Steps[0])
	for _, step := range path.Steps[1:] {
		var next []T
		for _, node := range frontier {
			next = append(next, matchStep(node, step)...)
		}
		frontier = next
	}
	return frontier
}

// SelectFirst returns the first match for path, or the zero value and
// false if there is none.
func SelectFirst[T Node[T]](roots []T, path Path) (T, bool) {
	matches := Select(roots, path)
	if len(matches) == 0 {
		var zero T
		return zero, false
	}
	return matches[0], true
}

func matchFirstStep[T Node[T]](roots []T, step Step) []T {
	switch step.Axis {
	case AxisTop:
		var out []T
		for _, r := range roots {
			if r.TagName() == step.Tag {
				out = append(out, r)
			}
		}
		return out
	default: // AxisDescendant: search every root's subtree, roots included
		var out []T
		for _, r := range roots {
			out = append(out, collectMatching(r, step.Tag, true)...)
		}
		return out
	}
}

func matchStep[T Node[T]](node T, step Step) []T {
	switch step.Axis {
	case AxisChild:
		var out []T
		for _, c := range node.Children() {
			if c.TagName() == step.Tag {
				out = append(out, c)
			}
		}
		return out
	default: // AxisDescendant: any depth below node, not including node itself
		return collectMatching(node, step.Tag, false)
	}
}

// collectMatching walks node's subtree in document (pre-)order, collecting
// every node whose tag matches. includeSelf controls whether node itself is
// checked before its children.
func collectMatching[T Node[T]](node T, tag string, includeSelf bool) []T {
	var out []T
	if includeSelf && node.TagName() == tag {
		out = append(out, node)
	}
	for _, c := range node.Children() {
		if c.TagName() == tag {
			out = append(out, c)
		}
		out = append(out, collectMatching(c, tag, false)...)
	}
	return out
}
