package gedval

import "testing"

func TestParseLanguageConforming(t *testing.T) {
	for _, c := range []string{"en", "en-US", "zh-Hant-TW"} {
		l, ok := ParseLanguage(c)
		if !ok {
			t.Fatalf("ParseLanguage(%q): expected ok", c)
		}
		if l.String() != lower(c) {
			t.Fatalf("got %q, want %q", l.String(), lower(c))
		}
	}
}

func TestParseLanguageRejectsGarbage(t *testing.T) {
	l, ok := ParseLanguage("???")
	if ok {
		t.Fatal("expected failure")
	}
	if l.String() != "und" {
		t.Fatalf("sentinel = %q, want und", l.String())
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
