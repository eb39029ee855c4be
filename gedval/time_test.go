package gedval

import "testing"

func TestParseTimeRoundTrip(t *testing.T) {
	cases := []string{"", "00:00", "23:59", "12:30:45", "12:30:45.123", "12:30:45Z", "08:15:00.5Z"}
	for _, c := range cases {
		tm, ok := ParseTime(c)
		if !ok {
			t.Fatalf("ParseTime(%q): expected ok", c)
		}
		if got := tm.String(); got != c {
			t.Fatalf("round trip: ParseTime(%q).String() = %q", c, got)
		}
	}
}

func TestParseTimeOutOfRangeFails(t *testing.T) {
	if _, ok := ParseTime("24:00"); ok {
		t.Fatal("expected failure for hour 24")
	}
	if _, ok := ParseTime("12:60"); ok {
		t.Fatal("expected failure for minute 60")
	}
}

func TestParseTimeInvalidYieldsMidnight(t *testing.T) {
	tm, ok := ParseTime("garbage")
	if ok {
		t.Fatal("expected failure")
	}
	if tm.String() != "00:00" {
		t.Fatalf("sentinel = %q, want 00:00", tm.String())
	}
}
