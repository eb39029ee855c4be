package gedval

import "strconv"

// CalendarResolver answers calendar-scoped questions that gedval cannot
// answer on its own without importing a schema package. A concrete
// implementation lives alongside the schema lookup and is threaded in by
// the typed layer; gedval only depends on this narrow interface to avoid an
// import cycle between gedval and schema.
type CalendarResolver interface {
	// KnownCalendar reports whether tag names a calendar the schema
	// documents at all.
	KnownCalendar(tag string) bool
	// KnownMonth reports whether monthTag is a documented month of the
	// named calendar.
	KnownMonth(calendarTag, monthTag string) bool
	// Epochs returns the permitted epoch tags for a calendar, or nil if
	// the calendar imposes no epoch restriction.
	Epochs(calendarTag string) []string
}

// Date parses and serializes the GEDCOM date production: an optional
// "@#DTAG@" calendar escape, optional day, optional month, a required
// year, and an optional epoch. Calendar defaults to Gregorian when the
// escape is absent.
type Date struct {
	Calendar         string
	ExplicitCalendar bool
	Day              *int
	Month            string
	Year             string // kept as text: some calendars permit a dual-form year such as "1644/45"
	Epoch            string
}

func sentinelDate() Date { return Date{Calendar: "GREGORIAN", Year: "0"} }

// ParseDate parses text under the GEDCOM date grammar. resolver may be nil,
// in which case month and epoch conformance are not checked against a
// calendar's registered vocabulary — they are accepted as given, matching
// the spec's rule that an unrecognized calendar accepts any month tag.
func ParseDate(text string, resolver CalendarResolver) (Date, bool) {
	d := Date{Calendar: "GREGORIAN"}

	rest := text
	if len(rest) >= 3 && rest[0] == '@' && rest[1] == '#' && rest[2] == 'D' {
		end := indexByte(rest[3:], '@')
		if end < 0 || end == 0 {
			return sentinelDate(), false
		}
		d.Calendar = rest[3 : 3+end]
		d.ExplicitCalendar = true
		rest = rest[3+end+1:]
		rest, _ = trimOneLeadingSpace(rest)
	}
	if rest == "" {
		return sentinelDate(), false
	}

	fields := splitBySingleSpace(rest)
	for _, f := range fields {
		if f == "" {
			return sentinelDate(), false
		}
	}

	if len(fields) >= 2 && yearConforms(fields[len(fields)-2]) && !yearConforms(fields[len(fields)-1]) {
		d.Epoch = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 || !yearConforms(fields[len(fields)-1]) {
		return sentinelDate(), false
	}
	d.Year = fields[len(fields)-1]
	fields = fields[:len(fields)-1]

	switch len(fields) {
	case 0:
	case 1:
		if n, ok := parseDecimal(fields[0]); ok {
			d.Day = &n
		} else {
			d.Month = fields[0]
		}
	case 2:
		n, ok := parseDecimal(fields[0])
		if !ok {
			return sentinelDate(), false
		}
		d.Day = &n
		d.Month = fields[1]
	default:
		return sentinelDate(), false
	}

	if resolver != nil && resolver.KnownCalendar(d.Calendar) {
		if d.Month != "" && !resolver.KnownMonth(d.Calendar, d.Month) {
			return d, false
		}
		if d.Epoch != "" {
			epochs := resolver.Epochs(d.Calendar)
			ok := false
			for _, e := range epochs {
				if e == d.Epoch {
					ok = true
					break
				}
			}
			if !ok && len(epochs) > 0 {
				return d, false
			}
		}
	}
	return d, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func trimOneLeadingSpace(s string) (string, bool) {
	if len(s) > 0 && s[0] == ' ' {
		return s[1:], true
	}
	return s, false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseDecimal(s string) (int, bool) {
	if !isAllDigits(s) {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// yearConforms accepts a plain decimal year, or a dual-form "YYYY/YY".
func yearConforms(s string) bool {
	if s == "" {
		return false
	}
	slash := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			if slash >= 0 {
				return false
			}
			slash = i
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	if slash < 0 {
		return true
	}
	return slash > 0 && slash < len(s)-1
}

func (d Date) String() string {
	var b []byte
	writeWord := func(w string) {
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, w...)
	}
	if d.ExplicitCalendar {
		writeWord("@#D" + d.Calendar + "@")
	}
	if d.Day != nil {
		writeWord(strconv.Itoa(*d.Day))
	}
	if d.Month != "" {
		writeWord(d.Month)
	}
	writeWord(d.Year)
	if d.Epoch != "" {
		writeWord(d.Epoch)
	}
	return string(b)
}

// Empty reports whether the date carries no year (a Date is never the
// result of an empty payload; DateValue models "no date" separately).
func (d Date) Empty() bool { return d.Year == "" }
