package typed

import (
	"strings"

	gederrors "github.com/jacoelho/gedcom/errors"
	"github.com/jacoelho/gedcom/gedval"
	"github.com/jacoelho/gedcom/schema"
)

// parsePayload dispatches raw payload text to the type-class table of
// §4.3, given the payload-type descriptor for the target structure's type
// URI. sink receives invalid-payload diagnostics already prefixed with the
// target URI (see populatePayload and Structure.SetText). The second return value
// reports whether raw parsed cleanly, letting Validate's payload-check step
// re-flag the same failure without re-running the parse.
func parsePayload(raw string, desc schema.Payload, lookup *schema.Lookup, sink gederrors.ErrWarner) (Payload, bool) {
	switch {
	case strings.HasSuffix(desc.Type, "type-Age"):
		a, ok := gedval.ParseAge(raw)
		if !ok {
			sink.Err(gederrors.CodeInvalidAge, 0, "", "invalid age: "+raw)
		}
		return Payload{Kind: PayloadAge, Age: a}, ok

	case strings.HasSuffix(desc.Type, "type-Time"):
		tm, ok := gedval.ParseTime(raw)
		if !ok {
			sink.Err(gederrors.CodeInvalidTime, 0, "", "invalid time: "+raw)
		}
		return Payload{Kind: PayloadTime, Time: tm}, ok

	case strings.HasSuffix(desc.Type, "type-Date#period"):
		dv, ok := gedval.ParseDateValue(raw, calendarResolver(lookup), true)
		if !ok {
			head, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
			sink.Err(gederrors.CodeInvalidDateVal, 0, "", "Expected DatePeriod, not "+head)
		}
		return Payload{Kind: PayloadDateValue, DateValue: dv}, ok

	case strings.HasSuffix(desc.Type, "type-Date"):
		dv, ok := gedval.ParseDateValue(raw, calendarResolver(lookup), false)
		if !ok {
			sink.Err(gederrors.CodeInvalidDateVal, 0, "", "invalid date value: "+raw)
		}
		return Payload{Kind: PayloadDateValue, DateValue: dv}, ok

	case strings.HasSuffix(desc.Type, "type-Enum"):
		e, ok := gedval.ParseEnum(desc.Set, raw, enumResolver(lookup))
		if !ok {
			sink.Err(gederrors.CodeInvalidEnum, 0, "", "invalid enumeration value: "+raw)
		}
		return Payload{Kind: PayloadEnum, Enum: e}, ok

	case strings.HasSuffix(desc.Type, "type-List#Text"):
		return Payload{Kind: PayloadListText, ListText: gedval.ParseListText(raw)}, true

	case strings.HasSuffix(desc.Type, "type-List#Enum"):
		l, ok := gedval.ParseListEnum(desc.Set, raw, enumResolver(lookup))
		if !ok {
			sink.Err(gederrors.CodeInvalidEnum, 0, "", "invalid enumeration list: "+raw)
		}
		return Payload{Kind: PayloadListEnum, ListEnum: l}, ok

	case strings.HasSuffix(desc.Type, "type-Name"):
		n, ok := gedval.ParseName(raw)
		if !ok {
			sink.Err(gederrors.CodeInvalidName, 0, "", "invalid name: "+raw)
		}
		return Payload{Kind: PayloadString, Str: n.String()}, ok

	case strings.HasSuffix(desc.Type, "type-Language"):
		lang, ok := gedval.ParseLanguage(raw)
		if !ok {
			sink.Err(gederrors.CodeInvalidLanguage, 0, "", "invalid language tag: "+raw)
		}
		return Payload{Kind: PayloadString, Str: lang.String()}, ok

	case strings.HasSuffix(desc.Type, "type-MediaType"):
		mt, ok := gedval.ParseMediaType(raw)
		if !ok {
			sink.Err(gederrors.CodeInvalidMedia, 0, "", "invalid media type: "+raw)
		}
		return Payload{Kind: PayloadString, Str: mt.String()}, ok

	case strings.HasSuffix(desc.Type, "#nonNegativeInteger"):
		n, ok := gedval.ParseNonNegativeInteger(raw)
		if !ok {
			sink.Err(gederrors.CodeInvalidInteger, 0, "", "invalid non-negative integer: "+raw)
		}
		return Payload{Kind: PayloadInteger, Int: n}, ok

	default:
		if raw == "" {
			return Payload{Kind: PayloadAbsent}, true
		}
		return Payload{Kind: PayloadString, Str: raw}, true
	}
}

func calendarResolver(lookup *schema.Lookup) gedval.CalendarResolver {
	if lookup == nil {
		return nil
	}
	return lookup
}

func enumResolver(lookup *schema.Lookup) gedval.EnumResolver {
	if lookup == nil {
		return nil
	}
	return lookup
}
