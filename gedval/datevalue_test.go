package gedval

import "testing"

func TestParseDateValueRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"1985",
		"ABT 1985",
		"CAL 1 JAN 1985",
		"EST 1985",
		"BET 1980 AND 1985",
		"BEF 1985",
		"AFT 1985",
		"FROM 1980 TO 1985",
		"FROM 1980",
		"TO 1985",
	}
	for _, c := range cases {
		dv, ok := ParseDateValue(c, nil, false)
		if !ok {
			t.Fatalf("ParseDateValue(%q): expected ok", c)
		}
		if got := dv.String(); got != c {
			t.Fatalf("round trip: ParseDateValue(%q).String() = %q", c, got)
		}
	}
}

func TestParseDateValueKinds(t *testing.T) {
	cases := map[string]DateValueKind{
		"":                    DVEmpty,
		"1985":                DVDate,
		"ABT 1985":             DVApprox,
		"BET 1980 AND 1985":    DVRange,
		"BEF 1985":             DVRange,
		"FROM 1980 TO 1985":    DVPeriod,
	}
	for text, want := range cases {
		dv, ok := ParseDateValue(text, nil, false)
		if !ok {
			t.Fatalf("ParseDateValue(%q): expected ok", text)
		}
		if dv.Kind != want {
			t.Fatalf("ParseDateValue(%q).Kind = %v, want %v", text, dv.Kind, want)
		}
	}
}

func TestParseDateValuePeriodOnlyDowngrades(t *testing.T) {
	dv, ok := ParseDateValue("ABT 1 JAN 2020", nil, true)
	if ok {
		t.Fatal("expected downgrade to report failure")
	}
	if dv.Kind != DVEmpty {
		t.Fatalf("expected downgrade to DVEmpty, got %v", dv.Kind)
	}
}

func TestParseDateValuePeriodOnlyAcceptsPeriodAndEmpty(t *testing.T) {
	for _, text := range []string{"", "FROM 1980 TO 1985"} {
		if _, ok := ParseDateValue(text, nil, true); !ok {
			t.Fatalf("ParseDateValue(%q, periodOnly): expected ok", text)
		}
	}
}

func TestParseDateValueBadInnerDateFails(t *testing.T) {
	if _, ok := ParseDateValue("ABT", nil, false); ok {
		t.Fatal("expected failure for ABT with no date")
	}
	if _, ok := ParseDateValue("BET 1980 1985", nil, false); ok {
		t.Fatal("expected failure for BET without AND")
	}
}
