package schema

import (
	"fmt"
	"strings"

	gederrors "github.com/jacoelho/gedcom/errors"
)

// recordLevel is the pseudo-container key used for record-level (level-0)
// structures, i.e. when no container URI is known.
const recordLevel = ""

// Lookup wraps a parsed schema and answers the typed layer's resolution
// questions. It maintains a mutable SCHMA extension table and a
// deduplicating diagnostic sink, per the teacher's single-engine-per-schema
// pattern (internal/runtime.Tables bound to one compiled schema).
type Lookup struct {
	substructure map[string]map[string]Substructure
	payload      map[string]Payload
	set          map[string]map[string]string
	calendar     map[string]Calendar
	tag          map[string]string
	tagInContext rawTagInContext

	reqSubstr map[string][]string

	knownURIs map[string]bool

	extensions map[string][]string // SCHMA-declared tag -> registered URIs

	sink *gederrors.Sink
}

func newLookup(raw rawSchema, sink *gederrors.Sink) *Lookup {
	l := &Lookup{
		substructure: make(map[string]map[string]Substructure),
		payload:      make(map[string]Payload),
		set:          raw.Set,
		calendar:     make(map[string]Calendar),
		tag:          raw.Tag,
		tagInContext: raw.TagInContext,
		reqSubstr:    make(map[string][]string),
		knownURIs:    make(map[string]bool),
		extensions:   make(map[string][]string),
		sink:         sink,
	}
	for container, members := range raw.Substructure {
		tags := make(map[string]Substructure, len(members))
		for tag, entry := range members {
			lower, upper := parseCardinality(entry.Cardinality)
			sub := Substructure{Type: entry.Type, Lower: lower, Upper: upper}
			tags[tag] = sub
			l.knownURIs[entry.Type] = true
			if lower == 1 {
				l.reqSubstr[container] = append(l.reqSubstr[container], entry.Type)
			}
		}
		l.substructure[container] = tags
	}
	for uri, entry := range raw.Payload {
		l.payload[uri] = Payload{Type: entry.Type, Set: entry.Set, To: entry.To}
		l.knownURIs[uri] = true
	}
	for cal, entry := range raw.Calendar {
		l.calendar[cal] = Calendar{Type: entry.Type, Months: entry.Months, Epochs: entry.Epochs}
		l.knownURIs[entry.Type] = true
		for _, monthURI := range entry.Months {
			l.knownURIs[monthURI] = true
		}
	}
	for _, setVals := range raw.Set {
		for _, uri := range setVals {
			l.knownURIs[uri] = true
		}
	}
	for uri := range raw.Tag {
		l.knownURIs[uri] = true
	}
	return l
}

// IsContentless reports whether uri's schema entry declares no payload type
// and no possible substructures — the shape of a pure marker structure like
// TRLR, which the empty-structure validation step must not flag.
func (l *Lookup) IsContentless(uri string) bool {
	if _, hasPayload := l.payload[uri]; hasPayload {
		return false
	}
	if len(l.substructure[uri]) > 0 {
		return false
	}
	return true
}

// SubstructureSpecs returns the cardinality specification for every member
// declared under containerURI, for the typed validator's cardinality step.
func (l *Lookup) SubstructureSpecs(containerURI string) []Substructure {
	members := l.substructure[containerURI]
	specs := make([]Substructure, 0, len(members))
	for _, spec := range members {
		specs = append(specs, spec)
	}
	return specs
}

// ReqSubstr returns the required (cardinality lower-bound 1) child type
// URIs for the given container URI.
func (l *Lookup) ReqSubstr(containerURI string) []string {
	return l.reqSubstr[containerURI]
}

// Substructure resolves tag within containerURI to a type URI, per the
// five-way resolution described in §4.4: a known container with tag as a
// member is the common case; otherwise an extension tag consults the SCHMA
// table, and a standard tag is diagnosed as prohibited (known container) or
// relocated (unknown container).
func (l *Lookup) Substructure(containerURI, tag string) (string, bool) {
	container := containerURI
	known, containerIsKnown := l.substructure[container]
	if containerIsKnown {
		if entry, ok := known[tag]; ok {
			return entry.Type, true
		}
		if isExtensionTag(tag) {
			return l.resolveExtension(tag, container)
		}
		l.sink.Err(gederrors.CodeProhibited, 0, container,
			fmt.Sprintf("tag %s is not permitted within %s", tag, container))
		return "", false
	}

	if container != recordLevel && !l.knownURIs[container] {
		l.sink.Warn(gederrors.CodeNovel, 0, container,
			fmt.Sprintf("extension-defined container %s has no registry match", container))
	}

	if entry, ok := l.substructure[recordLevel][tag]; ok {
		return entry.Type, true
	}
	if isExtensionTag(tag) {
		return l.resolveExtension(tag, recordLevel)
	}
	if uri := l.findStandardURIForTag(tag); uri != "" {
		l.sink.Warn(gederrors.CodeRelocated, 0, uri,
			fmt.Sprintf("tag %s used outside its documented placement", tag))
		return uri, true
	}
	l.sink.Warn(gederrors.CodeUndocumented, 0, "",
		fmt.Sprintf("undocumented tag %s", tag))
	return "", false
}

// Calendar resolves a calendar keyword tag.
func (l *Lookup) Calendar(tag string) (Calendar, bool) {
	if c, ok := l.calendar[tag]; ok {
		return c, true
	}
	if isExtensionTag(tag) {
		uri, ok := l.resolveExtension(tag, "calendar")
		return Calendar{Type: uri}, ok
	}
	l.sink.Warn(gederrors.CodeUndocumented, 0, "", fmt.Sprintf("undocumented calendar %s", tag))
	return Calendar{}, false
}

// Month resolves a month tag within a calendar tag.
func (l *Lookup) Month(calendarTag, monthTag string) (string, bool) {
	if c, ok := l.calendar[calendarTag]; ok {
		if uri, ok2 := c.Months[monthTag]; ok2 {
			return uri, true
		}
	}
	if isExtensionTag(monthTag) {
		return l.resolveExtension(monthTag, "month:"+calendarTag)
	}
	l.sink.Warn(gederrors.CodeUndocumented, 0, "",
		fmt.Sprintf("undocumented month %s in calendar %s", monthTag, calendarTag))
	return "", false
}

// Enumval resolves a value tag within a set URI.
func (l *Lookup) Enumval(setURI, tag string) (string, bool) {
	if vals, ok := l.set[setURI]; ok {
		if uri, ok2 := vals[tag]; ok2 {
			return uri, true
		}
	}
	if isExtensionTag(tag) {
		return l.resolveExtension(tag, setURI)
	}
	l.sink.Warn(gederrors.CodeUndocumented, 0, setURI,
		fmt.Sprintf("undocumented enumeration value %s", tag))
	return "", false
}

// Payload returns the payload-type descriptor for a URI, or the "?"
// sentinel when unknown.
func (l *Lookup) Payload(uri string) Payload {
	if p, ok := l.payload[uri]; ok {
		return p
	}
	return Payload{Type: "?"}
}

// Tag returns the recommended serialized tag for a URI. When
// preferExtension is set, a SCHMA-registered extension tag is preferred
// over the standard tag.
func (l *Lookup) Tag(uri string, preferExtension bool) string {
	if preferExtension {
		if t := l.findExtensionTagForURI(uri); t != "" {
			return t
		}
	}
	if t, ok := l.tag[uri]; ok {
		return t
	}
	return l.findExtensionTagForURI(uri)
}

// AddExtension registers a SCHMA-declared tag→URI mapping, as seen on a
// HEAD.SCHMA.TAG line.
func (l *Lookup) AddExtension(tag, uri string) {
	for _, existing := range l.extensions[tag] {
		if existing == uri {
			return
		}
	}
	l.extensions[tag] = append(l.extensions[tag], uri)
}

// TagInUse reports whether tag is already claimed as either a standard tag
// or an extension tag (for any URI), letting a caller mint a fresh
// extension tag without colliding with a document's own HEAD.SCHMA.TAG
// registrations or an earlier mint.
func (l *Lookup) TagInUse(tag string) bool {
	return l.findStandardURIForTag(tag) != "" || len(l.extensions[tag]) > 0
}

// resolveExtension looks up tag in the SCHMA table, emitting undocumented,
// unregistered, aliased, or ambiguous incidents as appropriate.
func (l *Lookup) resolveExtension(tag, scope string) (string, bool) {
	uris := l.extensions[tag]
	switch len(uris) {
	case 0:
		l.sink.Warn(gederrors.CodeUndocumented, 0, scope,
			fmt.Sprintf("undocumented extension tag %s", tag))
		return "", false
	case 1:
		uri := uris[0]
		if !l.knownURIs[uri] {
			l.sink.Warn(gederrors.CodeUnregistered, 0, uri,
				fmt.Sprintf("extension tag %s maps to unregistered URI %s", tag, uri))
		}
		if std, ok := l.tag[uri]; ok && std != tag {
			l.sink.Warn(gederrors.CodeAliased, 0, uri,
				fmt.Sprintf("extension tag %s aliases standard tag %s", tag, std))
		}
		return uri, true
	default:
		l.sink.Err(gederrors.CodeAmbiguous, 0, scope,
			fmt.Sprintf("extension tag %s maps to %d URIs", tag, len(uris)))
		return "", false
	}
}

func (l *Lookup) findStandardURIForTag(tag string) string {
	for uri, t := range l.tag {
		if t == tag {
			return uri
		}
	}
	return ""
}

func (l *Lookup) findExtensionTagForURI(uri string) string {
	for t, uris := range l.extensions {
		for _, u := range uris {
			if u == uri {
				return t
			}
		}
	}
	return ""
}

func isExtensionTag(tag string) bool {
	return strings.HasPrefix(tag, "_")
}
