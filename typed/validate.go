package typed

import (
	"fmt"

	gederrors "github.com/jacoelho/gedcom/errors"
	"github.com/jacoelho/gedcom/schema"
)

// exidURI and exidTypeURI identify EXID and its TYPE child for the
// deprecation step below.
const (
	exidURI     = "https://gedcom.io/terms/v7/EXID"
	exidTypeURI = "https://gedcom.io/terms/v7/EXID-TYPE"
)

// Validate runs the six-step structural validator over every top-level
// structure (header and records) and returns the number of errors it
// reported; warnings, such as the EXID deprecation notice, are not counted.
func (d *Dataset) Validate() int {
	count := 0
	if h := d.Header(); h != nil {
		count += d.validateStructure(h)
	}
	for _, uri := range d.recordTypeOrder() {
		for _, s := range d.Records(uri) {
			count += d.validateStructure(s)
		}
	}
	return count
}

// recordTypeOrder returns record type URIs in first-registration order so
// Validate's diagnostics come out in a stable, document-following order.
func (d *Dataset) recordTypeOrder() []string {
	seen := make(map[string]bool, len(d.records))
	var order []string
	for _, s := range d.nodes {
		if s.Super != NoHandle || s.self == d.header {
			continue
		}
		if !seen[s.Type] {
			seen[s.Type] = true
			order = append(order, s.Type)
		}
	}
	return order
}

func (d *Dataset) validateStructure(s *Structure) int {
	count := 0

	// 1. Remove empty child lists.
	for uri, handles := range s.Sub {
		if len(handles) == 0 {
			delete(s.Sub, uri)
		}
	}

	sink := d.sinkFor()

	// 2. Cardinality.
	if d.Lookup != nil {
		for _, req := range requiredChildren(d.Lookup, s.Type) {
			n := len(s.Sub[req.Type])
			if req.Lower >= 1 && n == 0 {
				sink.Err(gederrors.CodeMissingSubstructure, s.Line, s.Type,
					fmt.Sprintf("missing required substructure %s", req.Type))
				count++
			}
			if req.Upper == 1 && n > 1 {
				sink.Err(gederrors.CodeTooManySubstructure, s.Line, s.Type,
					fmt.Sprintf("substructure %s present %d times, at most 1 allowed", req.Type, n))
				count++
			}
		}
	}

	// 3. Empty structure, unless the schema declares this type as a pure
	// marker with no possible payload or substructures (e.g. TRLR).
	if len(s.Sub) == 0 && s.Payload.Empty() &&
		!(d.Lookup != nil && d.Lookup.IsContentless(s.Type)) {
		sink.Err(gederrors.CodeEmptyStructure, s.Line, s.Type, "structure has no children and no payload")
		count++
	}

	// 4. Payload check: parsePayload already validated against the
	// type-class table at construction time and flagged the structure;
	// Validate re-counts that failure so a single pass surfaces it.
	if s.payloadInvalid {
		sink.Err(gederrors.CodeInvalidPayload, s.Line, s.Type, "payload does not match its declared type")
		count++
	}

	// 5. Deprecation: EXID without EXID-TYPE.
	if s.Type == exidURI && len(s.Sub[exidTypeURI]) == 0 {
		sink.Warn(gederrors.CodeDeprecatedEXID, s.Line, s.Type, "EXID without a TYPE substructure is deprecated")
	}

	// 6. Recurse.
	for _, child := range s.Children() {
		count += d.validateStructure(child)
	}

	return count
}

func (d *Dataset) sinkFor() gederrors.ErrWarner {
	if d.Lookup != nil {
		return d.Lookup.Sink()
	}
	return gederrors.NewSink()
}

func requiredChildren(lookup *schema.Lookup, containerURI string) []schema.Substructure {
	return lookup.SubstructureSpecs(containerURI)
}
