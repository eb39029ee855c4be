package gedval

import "testing"

func TestParseMediaTypeConforming(t *testing.T) {
	for _, c := range []string{"text/plain", "image/jpeg", "text/plain;charset=utf-8"} {
		m, ok := ParseMediaType(c)
		if !ok {
			t.Fatalf("ParseMediaType(%q): expected ok", c)
		}
		if m.String() != c {
			t.Fatalf("got %q, want %q", m.String(), c)
		}
	}
}

func TestParseMediaTypeRejectsGarbage(t *testing.T) {
	m, ok := ParseMediaType("not a media type")
	if ok {
		t.Fatal("expected failure")
	}
	if m.String() != "application/octet-stream" {
		t.Fatalf("sentinel = %q", m.String())
	}
}
