package typed

import (
	"fmt"
	"strings"

	gederrors "github.com/jacoelho/gedcom/errors"
	"github.com/jacoelho/gedcom/schema"
	"github.com/jacoelho/gedcom/tagtree"
)

type pendingPointer struct {
	holder    Handle
	rawTarget tagtree.Handle
}

// FromForest converts a parsed tag forest into a typed dataset, resolving
// every tag against containerURI via the schema lookup, parsing payloads
// through the type-class table, and fixing up pointer payloads in a second
// pass once every xref ID is registered — mirroring tagtree.Parse's own
// two-pass pointer resolution, one layer up.
func FromForest(forest *tagtree.Forest, lookup *schema.Lookup) (*Dataset, error) {
	preRegisterExtensions(forest, lookup)

	ds := NewDataset(lookup)
	var pending []pendingPointer

	for _, root := range forest.Roots() {
		buildTop(ds, lookup, root, &pending)
	}

	resolvePointers(ds, lookup, forest, pending)
	return ds, nil
}

// preRegisterExtensions scans HEAD.SCHMA.TAG lines up front so extension
// tags used anywhere else in the document resolve correctly regardless of
// their position relative to the SCHMA block.
func preRegisterExtensions(forest *tagtree.Forest, lookup *schema.Lookup) {
	if lookup == nil {
		return
	}
	for _, root := range forest.Roots() {
		if root.Tag != "HEAD" {
			continue
		}
		for _, schmaNode := range root.Children() {
			if schmaNode.Tag != "SCHMA" {
				continue
			}
			for _, tagNode := range schmaNode.Children() {
				if tagNode.Tag != "TAG" {
					continue
				}
				text, ok := tagNode.StringPayload()
				if !ok {
					continue
				}
				extTag, uri, ok := strings.Cut(text, " ")
				if !ok {
					continue
				}
				lookup.AddExtension(extTag, uri)
			}
		}
	}
}

func buildTop(ds *Dataset, lookup *schema.Lookup, raw *tagtree.Structure, pending *[]pendingPointer) *Structure {
	typeURI := resolveOrFallback(lookup, "", raw.Tag)
	s := ds.alloc(typeURI, NoHandle)
	s.Line = raw.Line
	if raw.ID != "" {
		ds.RegisterID(raw.ID, s.self)
	}
	if typeURI == headerType {
		ds.header = s.self
	} else {
		ds.records[typeURI] = append(ds.records[typeURI], s.self)
	}
	populatePayload(ds, lookup, s, raw, pending)
	for _, childRaw := range raw.Children() {
		buildChild(ds, lookup, s, childRaw, pending)
	}
	return s
}

func buildChild(ds *Dataset, lookup *schema.Lookup, parent *Structure, raw *tagtree.Structure, pending *[]pendingPointer) {
	typeURI := resolveOrFallback(lookup, parent.Type, raw.Tag)
	child := ds.alloc(typeURI, parent.self)
	child.Line = raw.Line
	if raw.ID != "" {
		ds.RegisterID(raw.ID, child.self)
	}
	parent.addChild(typeURI, child.self)
	populatePayload(ds, lookup, child, raw, pending)
	for _, grandchildRaw := range raw.Children() {
		buildChild(ds, lookup, child, grandchildRaw, pending)
	}
}

// resolveOrFallback resolves tag and, when resolution fails outright
// (undocumented, with no URI at all), falls back to a synthetic
// "tag:"+tag URI so construction can still proceed with a normalized
// sentinel type rather than aborting, per §7's error-recovery policy.
func resolveOrFallback(lookup *schema.Lookup, containerURI, tag string) string {
	if lookup == nil {
		return "tag:" + tag
	}
	uri, ok := lookup.Substructure(containerURI, tag)
	if !ok && uri == "" {
		return "tag:" + tag
	}
	return uri
}

func populatePayload(ds *Dataset, lookup *schema.Lookup, s *Structure, raw *tagtree.Structure, pending *[]pendingPointer) {
	switch raw.Payload.Kind {
	case tagtree.PayloadAbsent:
		s.Payload = Payload{Kind: PayloadAbsent}
	case tagtree.PayloadNull:
		s.Payload = Payload{Kind: PayloadNullPointer}
	case tagtree.PayloadPointer:
		*pending = append(*pending, pendingPointer{holder: s.self, rawTarget: raw.Payload.Target})
		s.Payload = Payload{Kind: PayloadPointer, Pointer: NoHandle}
	case tagtree.PayloadString:
		desc := schema.Payload{Type: "?"}
		var sink gederrors.ErrWarner = gederrors.NewSink()
		if lookup != nil {
			desc = lookup.Payload(s.Type)
			sink = lookup.Sink().WithPathPrefix(s.Type)
		}
		var ok bool
		s.Payload, ok = parsePayload(raw.Payload.Text, desc, lookup, sink)
		s.payloadInvalid = !ok
	}
}

func resolvePointers(ds *Dataset, lookup *schema.Lookup, forest *tagtree.Forest, pending []pendingPointer) {
	for _, p := range pending {
		holder := ds.At(p.holder)
		rawTarget := forest.At(p.rawTarget)
		if rawTarget == nil || rawTarget.Superstructure() != nil {
			if lookup != nil {
				lookup.Sink().Err(gederrors.CodePointerToSubstruct, 0, holder.Type,
					"pointer to substructure is not permitted")
			}
			holder.Payload = Payload{Kind: PayloadNullPointer}
			continue
		}
		targetHandle, ok := findTopLevelHandle(ds, rawTarget)
		if !ok {
			holder.Payload = Payload{Kind: PayloadNullPointer}
			continue
		}
		target := ds.At(targetHandle)
		if lookup != nil {
			desc := lookup.Payload(holder.Type)
			if desc.To != "" && target.Type != desc.To {
				lookup.Sink().Err(gederrors.CodePointerTypeMismatch, 0, holder.Type,
					fmt.Sprintf("pointer target type mismatch: expected %s, got %s", desc.To, target.Type))
				holder.Payload = Payload{Kind: PayloadNullPointer}
				continue
			}
		}
		holder.Payload = Payload{Kind: PayloadPointer, Pointer: targetHandle}
	}
}

// findTopLevelHandle finds the typed structure built from rawTarget by its
// xref ID — every pointer target in the tag forest was addressed by ID, so
// the same registry built during construction resolves it here.
func findTopLevelHandle(ds *Dataset, rawTarget *tagtree.Structure) (Handle, bool) {
	if rawTarget.ID != "" {
		if h, ok := ds.LookupID(rawTarget.ID); ok {
			return h, true
		}
	}
	return NoHandle, false
}
