package dialect

// GEDCOM5 returns the GEDCOM 5.x preset: 255-character lines, a limited
// tag/xref alphabet, leading zeros tolerated, and "@#" escaping enabled.
func GEDCOM5() Config {
	return Config{
		Len:     255,
		Tag:     `[A-Za-z0-9_]+`,
		Xref:    `[A-Za-z0-9_][A-Za-z0-9_ .+\-]*`,
		Zeros:   true,
		Escapes: true,
	}
}

// GEDCOM7 returns the GEDCOM 7 preset: unlimited line length (CONC
// forbidden), a stricter tag/xref alphabet, no leading zeros, and "@@#"
// escaping (Escapes = false).
func GEDCOM7() Config {
	return Config{
		Len:     -1,
		Tag:     `[A-Z0-9_][A-Z0-9_]*`,
		Xref:    `[A-Z0-9_]+`,
		Zeros:   false,
		Escapes: false,
	}
}
