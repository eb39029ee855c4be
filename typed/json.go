package typed

import (
	"fmt"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/jacoelho/gedcom/gedval"
	"github.com/jacoelho/gedcom/schema"
)

// jsonNode mirrors the typed-layer intermediate JSON shape from spec §6:
// {id?, (xref|payload)?, sub?}. sub is keyed by type URI, following
// Structure.Sub, rather than a flat list as in the tag layer's jsonNode.
type jsonNode struct {
	ID      string                 `json:"id,omitempty"`
	Xref    gojson.RawMessage      `json:"xref,omitempty"`
	Payload gojson.RawMessage      `json:"payload,omitempty"`
	Sub     map[string][]*jsonNode `json:"sub,omitempty"`
}

type datasetJSON struct {
	Header  *jsonNode              `json:"header,omitempty"`
	Records map[string][]*jsonNode `json:"records,omitempty"`
}

// dateJSON is a Date's canonical structured form.
type dateJSON struct {
	Calendar string `json:"calendar,omitempty"`
	Year     string `json:"year,omitempty"`
	Month    string `json:"month,omitempty"`
	Day      *int   `json:"day,omitempty"`
	Epoch    string `json:"epoch,omitempty"`
}

// ageJSON is an Age's canonical structured form.
type ageJSON struct {
	Mod    string `json:"mod,omitempty"`
	Years  *int   `json:"years,omitempty"`
	Months *int   `json:"months,omitempty"`
	Weeks  *int   `json:"weeks,omitempty"`
	Days   *int   `json:"days,omitempty"`
}

// dateValueJSON is a DateValue's canonical structured form, nesting dateJSON
// for its From/To members.
type dateValueJSON struct {
	Kind string    `json:"kind"`
	Qual string    `json:"qual,omitempty"`
	From *dateJSON `json:"from,omitempty"`
	To   *dateJSON `json:"to,omitempty"`
}

var dateValueKindNames = map[gedval.DateValueKind]string{
	gedval.DVEmpty:  "empty",
	gedval.DVDate:   "date",
	gedval.DVApprox: "approx",
	gedval.DVRange:  "range",
	gedval.DVPeriod: "period",
}

var dateValueKindByName = func() map[string]gedval.DateValueKind {
	m := make(map[string]gedval.DateValueKind, len(dateValueKindNames))
	for k, v := range dateValueKindNames {
		m[v] = k
	}
	return m
}()

func dateToJSON(d gedval.Date) dateJSON {
	return dateJSON{Calendar: d.Calendar, Year: d.Year, Month: d.Month, Day: d.Day, Epoch: d.Epoch}
}

func dateFromJSON(j dateJSON) gedval.Date {
	return gedval.Date{Calendar: j.Calendar, ExplicitCalendar: j.Calendar != "" && j.Calendar != "GREGORIAN", Year: j.Year, Month: j.Month, Day: j.Day, Epoch: j.Epoch}
}

func dateValueToJSON(dv gedval.DateValue) dateValueJSON {
	j := dateValueJSON{Kind: dateValueKindNames[dv.Kind], Qual: dv.Qual}
	if dv.From != nil {
		d := dateToJSON(*dv.From)
		j.From = &d
	}
	if dv.To != nil {
		d := dateToJSON(*dv.To)
		j.To = &d
	}
	return j
}

func dateValueFromJSON(j dateValueJSON) gedval.DateValue {
	dv := gedval.DateValue{Kind: dateValueKindByName[j.Kind], Qual: j.Qual}
	if j.From != nil {
		d := dateFromJSON(*j.From)
		dv.From = &d
	}
	if j.To != nil {
		d := dateFromJSON(*j.To)
		dv.To = &d
	}
	return dv
}

func ageToJSON(a gedval.Age) ageJSON {
	mod := ""
	if a.Modifier != 0 {
		mod = string(a.Modifier)
	}
	return ageJSON{Mod: mod, Years: a.Years, Months: a.Months, Weeks: a.Weeks, Days: a.Days}
}

func ageFromJSON(j ageJSON) gedval.Age {
	a := gedval.Age{Years: j.Years, Months: j.Months, Weeks: j.Weeks, Days: j.Days}
	if j.Mod != "" {
		a.Modifier = j.Mod[0]
	}
	return a
}

// ToJSON encodes the dataset as {header, records} with records keyed by
// type URI, per spec §6's typed-layer intermediate JSON shape.
func (d *Dataset) ToJSON() ([]byte, error) {
	out := datasetJSON{}
	if h := d.Header(); h != nil {
		out.Header = d.toJSONNode(h)
	}
	if order := d.recordTypeOrder(); len(order) > 0 {
		out.Records = make(map[string][]*jsonNode, len(order))
		for _, uri := range order {
			var nodes []*jsonNode
			for _, s := range d.Records(uri) {
				nodes = append(nodes, d.toJSONNode(s))
			}
			out.Records[uri] = nodes
		}
	}
	return gojson.Marshal(out)
}

func (d *Dataset) toJSONNode(s *Structure) *jsonNode {
	n := &jsonNode{ID: s.ID}
	n.Xref, n.Payload = d.encodePayload(s)
	for _, uri := range s.sortedChildTypes() {
		children := s.Sub[uri]
		if len(children) == 0 {
			continue
		}
		if n.Sub == nil {
			n.Sub = make(map[string][]*jsonNode, len(s.Sub))
		}
		nodes := make([]*jsonNode, len(children))
		for i, h := range children {
			nodes[i] = d.toJSONNode(d.At(h))
		}
		n.Sub[uri] = nodes
	}
	return n
}

func (d *Dataset) encodePayload(s *Structure) (xref, payload gojson.RawMessage) {
	switch s.Payload.Kind {
	case PayloadAbsent:
		return nil, nil
	case PayloadNullPointer:
		return gojson.RawMessage("null"), nil
	case PayloadPointer:
		id := d.EnsureID(s.Payload.Pointer)
		b, _ := gojson.Marshal("#" + id)
		return b, nil
	case PayloadDateValue:
		b, _ := gojson.Marshal(dateValueToJSON(s.Payload.DateValue))
		return nil, b
	case PayloadAge:
		b, _ := gojson.Marshal(ageToJSON(s.Payload.Age))
		return nil, b
	case PayloadInteger:
		b, _ := gojson.Marshal(s.Payload.Int.Value)
		return nil, b
	case PayloadListText:
		b, _ := gojson.Marshal(s.Payload.ListText)
		return nil, b
	case PayloadListEnum:
		tags := make([]string, len(s.Payload.ListEnum.Values))
		for i, e := range s.Payload.ListEnum.Values {
			tags[i] = e.Tag
		}
		b, _ := gojson.Marshal(tags)
		return nil, b
	case PayloadEnum:
		b, _ := gojson.Marshal(s.Payload.Enum.Tag)
		return nil, b
	case PayloadTime:
		b, _ := gojson.Marshal(s.Payload.Time.String())
		return nil, b
	default:
		b, _ := gojson.Marshal(s.Payload.Str)
		return nil, b
	}
}

// FromDatasetJSON decodes a typed-layer JSON document into a dataset bound
// to lookup, reversing ToJSON. Pointer payloads are fixed up in a second
// pass once every "id" has been registered, mirroring FromForest.
func FromDatasetJSON(data []byte, lookup *schema.Lookup) (*Dataset, error) {
	var doc datasetJSON
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("typed: decode json: %w", err)
	}
	ds := NewDataset(lookup)
	var pending []pendingJSONPointer

	if doc.Header != nil {
		h := ds.alloc(headerType, NoHandle)
		ds.header = h.self
		buildFromJSONNode(ds, h, doc.Header, &pending)
	}
	for uri, nodes := range doc.Records {
		for _, n := range nodes {
			s := ds.alloc(uri, NoHandle)
			ds.records[uri] = append(ds.records[uri], s.self)
			buildFromJSONNode(ds, s, n, &pending)
		}
	}

	for _, p := range pending {
		holder := ds.At(p.holder)
		target, ok := ds.LookupID(p.rawID)
		if !ok {
			holder.Payload = Payload{Kind: PayloadNullPointer}
			continue
		}
		holder.Payload = Payload{Kind: PayloadPointer, Pointer: target}
	}
	return ds, nil
}

type pendingJSONPointer struct {
	holder Handle
	rawID  string
}

func buildFromJSONNode(ds *Dataset, s *Structure, n *jsonNode, pending *[]pendingJSONPointer) {
	if n.ID != "" {
		ds.RegisterID(n.ID, s.self)
	}
	decodeJSONPayload(ds, s, n, pending)
	for uri, children := range n.Sub {
		for _, childNode := range children {
			child := ds.alloc(uri, s.self)
			s.addChild(uri, child.self)
			buildFromJSONNode(ds, child, childNode, pending)
		}
	}
}

func decodeJSONPayload(ds *Dataset, s *Structure, n *jsonNode, pending *[]pendingJSONPointer) {
	switch {
	case len(n.Xref) > 0 && string(n.Xref) == "null":
		s.Payload = Payload{Kind: PayloadNullPointer}
	case len(n.Xref) > 0:
		var ref string
		if err := gojson.Unmarshal(n.Xref, &ref); err == nil {
			*pending = append(*pending, pendingJSONPointer{holder: s.self, rawID: trimXrefPrefix(ref)})
		}
	case len(n.Payload) == 0:
		s.Payload = Payload{Kind: PayloadAbsent}
	default:
		decodeTypedPayload(ds, s, n.Payload)
	}
}

func trimXrefPrefix(ref string) string {
	if len(ref) > 0 && ref[0] == '#' {
		return ref[1:]
	}
	return ref
}

func decodeTypedPayload(ds *Dataset, s *Structure, raw gojson.RawMessage) {
	desc := schema.Payload{Type: "?"}
	if ds.Lookup != nil {
		desc = ds.Lookup.Payload(s.Type)
	}
	switch {
	case strings.HasSuffix(desc.Type, "type-Age"):
		var j ageJSON
		_ = gojson.Unmarshal(raw, &j)
		s.Payload = Payload{Kind: PayloadAge, Age: ageFromJSON(j)}
	case strings.HasSuffix(desc.Type, "type-Date#period"), strings.HasSuffix(desc.Type, "type-Date"):
		var j dateValueJSON
		_ = gojson.Unmarshal(raw, &j)
		s.Payload = Payload{Kind: PayloadDateValue, DateValue: dateValueFromJSON(j)}
	case strings.HasSuffix(desc.Type, "type-Enum"):
		var tag string
		_ = gojson.Unmarshal(raw, &tag)
		e, _ := gedval.ParseEnum(desc.Set, tag, enumResolver(ds.Lookup))
		s.Payload = Payload{Kind: PayloadEnum, Enum: e}
	case strings.HasSuffix(desc.Type, "type-List#Text"):
		var items []string
		_ = gojson.Unmarshal(raw, &items)
		s.Payload = Payload{Kind: PayloadListText, ListText: items}
	case strings.HasSuffix(desc.Type, "type-List#Enum"):
		var tags []string
		_ = gojson.Unmarshal(raw, &tags)
		l, _ := gedval.ParseListEnum(desc.Set, gedval.FormatListText(tags), enumResolver(ds.Lookup))
		s.Payload = Payload{Kind: PayloadListEnum, ListEnum: l}
	case strings.HasSuffix(desc.Type, "type-Time"):
		var text string
		_ = gojson.Unmarshal(raw, &text)
		tm, _ := gedval.ParseTime(text)
		s.Payload = Payload{Kind: PayloadTime, Time: tm}
	case strings.HasSuffix(desc.Type, "#nonNegativeInteger"):
		var n int
		_ = gojson.Unmarshal(raw, &n)
		val, _ := gedval.ParseNonNegativeInteger(strconv.Itoa(n))
		s.Payload = Payload{Kind: PayloadInteger, Int: val}
	default:
		var text string
		_ = gojson.Unmarshal(raw, &text)
		s.Payload = Payload{Kind: PayloadString, Str: text}
	}
}

