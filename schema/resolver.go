package schema

import "github.com/jacoelho/gedcom/gedval"

// Lookup implements gedval.CalendarResolver and gedval.EnumResolver so
// gedval's Date/Enum parsers can consult the schema without gedval
// importing this package (avoiding an import cycle, since schema's own
// typed-layer helpers reach into gedval's value types).

func (l *Lookup) KnownCalendar(tag string) bool {
	_, ok := l.calendar[tag]
	return ok
}

func (l *Lookup) KnownMonth(calendarTag, monthTag string) bool {
	c, ok := l.calendar[calendarTag]
	if !ok {
		return false
	}
	_, ok = c.Months[monthTag]
	return ok
}

func (l *Lookup) Epochs(calendarTag string) []string {
	return l.calendar[calendarTag].Epochs
}

func (l *Lookup) EnumValue(set, tag string) (string, gedval.EnumStatus, bool) {
	if vals, ok := l.set[set]; ok {
		if uri, ok2 := vals[tag]; ok2 {
			return uri, gedval.EnumOK, true
		}
	}
	if isExtensionTag(tag) {
		uri, ok := l.resolveExtension(tag, set)
		if !ok {
			return "", gedval.EnumUnregistered, false
		}
		if std, ok2 := l.tag[uri]; ok2 && std != tag {
			return uri, gedval.EnumAliased, true
		}
		return uri, gedval.EnumOK, true
	}
	return "", gedval.EnumUnregistered, false
}
