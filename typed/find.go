package typed

import (
	gederrors "github.com/jacoelho/gedcom/errors"
	"github.com/jacoelho/gedcom/gedval"
	"github.com/jacoelho/gedcom/schema"
)

// find descends s through alternating (childType, childPayload) argument
// pairs, returning the first descendant matched at every step. A payload
// argument of nil matches any payload; otherwise matching is by string
// coercion against the child's rendered payload text.
func (s *Structure) find(args ...any) *Structure {
	cur := s
	for i := 0; i+1 < len(args); i += 2 {
		childType, _ := args[i].(string)
		wantPayload := args[i+1]
		next := cur.findChild(childType, wantPayload)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func (s *Structure) findChild(childType string, wantPayload any) *Structure {
	for _, h := range s.Sub[childType] {
		c := s.dataset.At(h)
		if wantPayload == nil {
			return c
		}
		if c.payloadText() == coercePayloadArg(wantPayload) {
			return c
		}
	}
	return nil
}

// findOrCreate returns the first descendant matched by args, creating the
// missing chain (reusing every matched ancestor) when no match exists. Each
// created structure along the missing suffix is given the requested
// payload via SetText.
func (s *Structure) findOrCreate(args ...any) (*Structure, error) {
	cur := s
	for i := 0; i+1 < len(args); i += 2 {
		childType, _ := args[i].(string)
		wantPayload := args[i+1]
		next := cur.findChild(childType, wantPayload)
		if next == nil {
			child, err := cur.NewChild(childType)
			if err != nil {
				return nil, err
			}
			if wantPayload != nil {
				child.SetText(coercePayloadArg(wantPayload))
			}
			next = child
		}
		cur = next
	}
	return cur, nil
}

func (s *Structure) payloadText() string {
	switch s.Payload.Kind {
	case PayloadString:
		return s.Payload.Str
	case PayloadInteger:
		return s.Payload.Int.String()
	case PayloadAge:
		return s.Payload.Age.String()
	case PayloadTime:
		return s.Payload.Time.String()
	case PayloadDateValue:
		return s.Payload.DateValue.String()
	case PayloadEnum:
		return s.Payload.Enum.Tag
	case PayloadListText:
		return gedval.FormatListText(s.Payload.ListText)
	case PayloadListEnum:
		return s.Payload.ListEnum.String()
	default:
		return ""
	}
}

// SetText parses text through the type-class table for s's declared
// payload type, the same path FromForest uses, so direct record/child
// construction (paths a and b of §4.5) validates payloads identically to
// conversion from a tag forest.
func (s *Structure) SetText(text string) {
	lookup := s.dataset.Lookup
	desc := schema.Payload{Type: "?"}
	var sink gederrors.ErrWarner = gederrors.NewSink()
	if lookup != nil {
		desc = lookup.Payload(s.Type)
		sink = lookup.Sink().WithPathPrefix(s.Type)
	}
	var ok bool
	s.Payload, ok = parsePayload(text, desc, lookup, sink)
	s.payloadInvalid = !ok
}

func coercePayloadArg(v any) string {
	if str, ok := v.(string); ok {
		return str
	}
	return ""
}
