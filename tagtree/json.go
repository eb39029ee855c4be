package tagtree

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// jsonNode mirrors the tag-layer intermediate JSON shape from spec §6:
// {tag, id?, (href|text)?, sub?}. href is the identifier of the pointed-to
// structure, or JSON null for a void pointer; it is a raw message (rather
// than *string) so a void payload can be distinguished from an absent one
// ("href":null vs. no href key at all).
type jsonNode struct {
	Tag  string             `json:"tag"`
	ID   string             `json:"id,omitempty"`
	Href gojson.RawMessage  `json:"href,omitempty"`
	Text *string            `json:"text,omitempty"`
	Sub  []*jsonNode        `json:"sub,omitempty"`
}

// ToJSON encodes the forest as a JSON array of {tag, id?, (href|text)?,
// sub?} nodes, using goccy/go-json for encoding.
func (f *Forest) ToJSON() ([]byte, error) {
	nodes := make([]*jsonNode, 0, len(f.roots))
	for _, h := range f.roots {
		nodes = append(nodes, toJSONNode(f, f.nodes[h]))
	}
	return gojson.Marshal(nodes)
}

func toJSONNode(f *Forest, s *Structure) *jsonNode {
	n := &jsonNode{Tag: s.Tag}
	if len(s.Refs) > 0 {
		n.ID = f.EnsureID(s.self)
	}
	switch s.Payload.Kind {
	case PayloadNull:
		n.Href = gojson.RawMessage("null")
	case PayloadPointer:
		target := f.nodes[s.Payload.Target]
		id := f.EnsureID(target.self)
		n.Href = gojson.RawMessage(`"` + id + `"`)
	case PayloadString:
		text := s.Payload.Text
		n.Text = &text
	}
	for _, ch := range s.Sub {
		n.Sub = append(n.Sub, toJSONNode(f, f.nodes[ch]))
	}
	return n
}

// FromJSON decodes a JSON array of tag-layer nodes into a forest,
// performing the same two-pass pointer resolution as Parse (the "href"
// field is resolved against "id" values in a second pass).
func FromJSON(data []byte) (*Forest, error) {
	var nodes []*jsonNode
	if err := gojson.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("tagtree: decode json: %w", err)
	}
	f := New()
	var pending []pendingPointer
	for _, n := range nodes {
		buildFromJSON(f, NoHandle, n, &pending)
	}
	for _, p := range pending {
		holder := f.At(p.holder)
		target, ok := f.LookupID(p.raw)
		if !ok {
			holder.Payload = Payload{Kind: PayloadNull}
			continue
		}
		holder.Payload = Payload{Kind: PayloadPointer, Target: target}
		f.AddReference(target, p.holder)
	}
	return f, nil
}

func buildFromJSON(f *Forest, super Handle, n *jsonNode, pending *[]pendingPointer) {
	s := f.NewStructure(n.Tag, super)
	if super != NoHandle {
		parent := f.At(super)
		parent.Sub = append(parent.Sub, s.self)
	}
	if n.ID != "" {
		f.RegisterID(n.ID, s.self)
	}
	switch {
	case len(n.Href) > 0 && string(n.Href) == "null":
		s.Payload = Payload{Kind: PayloadNull}
	case len(n.Href) > 0:
		var id string
		_ = gojson.Unmarshal(n.Href, &id)
		*pending = append(*pending, pendingPointer{holder: s.self, raw: id})
	case n.Text != nil:
		s.Payload = Payload{Kind: PayloadString, Text: *n.Text}
	default:
		s.Payload = Payload{Kind: PayloadAbsent}
	}
	for _, ch := range n.Sub {
		buildFromJSON(f, s.self, ch, pending)
	}
}
