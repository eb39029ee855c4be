package typed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacoelho/gedcom/tagtree"
)

const (
	schmaURI    = "https://gedcom.io/terms/v7/HEAD-SCHMA"
	schmaTagURI = "https://gedcom.io/terms/v7/SCHMA-TAG"
)

// ToForest serializes a typed dataset back into a tag forest. populateSchema
// first mints tags for every type URI in use that has neither a standard
// nor an already-registered extension tag; each typed structure is then
// re-emitted using the standard, schema-minted, or extension form of its
// tag, and pointer payloads are fixed up through a typed-to-raw handle map
// once every structure exists, mirroring tagtree.Parse's own two-pass
// pointer resolution in reverse.
func (d *Dataset) ToForest() *tagtree.Forest {
	minted := d.populateSchema()

	forest := tagtree.New()
	typedToRaw := make(map[Handle]tagtree.Handle)

	var headerRaw *tagtree.Structure
	if h := d.Header(); h != nil {
		headerRaw = forest.NewStructure(d.tagFor(h.Type), tagtree.NoHandle)
		typedToRaw[h.self] = headerRaw.Self()
		d.writeChildren(forest, h, headerRaw, typedToRaw)
	}
	d.emitSchemaBlock(forest, headerRaw, minted)

	for _, uri := range d.recordTypeOrder() {
		if uri == trlrURI {
			continue
		}
		for _, s := range d.Records(uri) {
			raw := forest.NewStructure(d.tagFor(s.Type), tagtree.NoHandle)
			typedToRaw[s.self] = raw.Self()
			d.writeChildren(forest, s, raw, typedToRaw)
		}
	}

	d.fixupPointers(forest, typedToRaw)
	return forest
}

// trlrURI is skipped during the record sweep since Serialize mints its own
// closing TRLR line.
const trlrURI = "https://gedcom.io/terms/v7/TRLR"

func (d *Dataset) populateSchema() map[string]string {
	minted := make(map[string]string)
	if d.Lookup == nil {
		return minted
	}
	seen := make(map[string]bool)
	n := 0
	for _, s := range d.nodes {
		uri := s.Type
		if seen[uri] || strings.HasPrefix(uri, "tag:") {
			continue
		}
		seen[uri] = true
		if d.Lookup.Tag(uri, false) != "" || d.Lookup.Tag(uri, true) != "" {
			continue
		}
		var tag string
		for {
			n++
			candidate := fmt.Sprintf("_EXT%d", n)
			if !d.Lookup.TagInUse(candidate) {
				tag = candidate
				break
			}
		}
		d.Lookup.AddExtension(tag, uri)
		minted[uri] = tag
	}
	return minted
}

// tagFor returns the tag to serialize uri under: the literal tag for a
// fallback "tag:"+tag sentinel URI, or the lookup's preferred (possibly
// extension) tag otherwise.
func (d *Dataset) tagFor(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "tag:"); ok {
		return rest
	}
	if d.Lookup == nil {
		return uri
	}
	return d.Lookup.Tag(uri, true)
}

func (d *Dataset) writeChildren(forest *tagtree.Forest, s *Structure, raw *tagtree.Structure, typedToRaw map[Handle]tagtree.Handle) {
	if s.ID != "" {
		forest.RegisterID(s.ID, raw.Self())
	}
	d.writePayload(raw, s)
	for _, child := range s.Children() {
		childRaw := forest.AddChild(raw, d.tagFor(child.Type))
		typedToRaw[child.self] = childRaw.Self()
		d.writeChildren(forest, child, childRaw, typedToRaw)
	}
}

func (d *Dataset) writePayload(raw *tagtree.Structure, s *Structure) {
	switch s.Payload.Kind {
	case PayloadAbsent:
		raw.Payload = tagtree.Payload{Kind: tagtree.PayloadAbsent}
	case PayloadPointer, PayloadNullPointer:
		// Resolved in fixupPointers once every raw handle exists.
	default:
		raw.Payload = tagtree.Payload{Kind: tagtree.PayloadString, Text: s.payloadText()}
	}
}

func (d *Dataset) fixupPointers(forest *tagtree.Forest, typedToRaw map[Handle]tagtree.Handle) {
	for _, s := range d.nodes {
		rawHandle, ok := typedToRaw[s.self]
		if !ok {
			continue
		}
		raw := forest.At(rawHandle)
		switch s.Payload.Kind {
		case PayloadNullPointer:
			raw.Payload = tagtree.Payload{Kind: tagtree.PayloadNull}
		case PayloadPointer:
			targetRaw, ok := typedToRaw[s.Payload.Pointer]
			if !ok {
				raw.Payload = tagtree.Payload{Kind: tagtree.PayloadNull}
				continue
			}
			raw.Payload = tagtree.Payload{Kind: tagtree.PayloadPointer, Target: targetRaw}
			forest.AddReference(targetRaw, rawHandle)
		}
	}
}

func (d *Dataset) emitSchemaBlock(forest *tagtree.Forest, headerRaw *tagtree.Structure, minted map[string]string) {
	if headerRaw == nil || len(minted) == 0 {
		return
	}
	schmaTag := d.tagFor(schmaURI)
	var schmaRaw *tagtree.Structure
	for _, h := range headerRaw.Sub {
		if child := forest.At(h); child.Tag == schmaTag {
			schmaRaw = child
			break
		}
	}
	if schmaRaw == nil {
		schmaRaw = forest.AddChild(headerRaw, schmaTag)
	}
	uris := make([]string, 0, len(minted))
	for uri := range minted {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	tagTag := d.tagFor(schmaTagURI)
	for _, uri := range uris {
		tagChild := forest.AddChild(schmaRaw, tagTag)
		tagChild.Payload = tagtree.Payload{Kind: tagtree.PayloadString, Text: minted[uri] + " " + uri}
	}
}
