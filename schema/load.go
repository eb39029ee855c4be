package schema

import (
	"fmt"
	"io"
	"io/fs"

	gojson "github.com/goccy/go-json"

	gederrors "github.com/jacoelho/gedcom/errors"
)

// Load reads and parses the schema JSON at location within fsys, mirroring
// the teacher's top-level Load(fsys, location) entry point.
func Load(fsys fs.FS, location string) (*Lookup, error) {
	if fsys == nil {
		return nil, fmt.Errorf("load schema: nil fs")
	}
	f, err := fsys.Open(location)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}

	var raw rawSchema
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load schema %s: parse: %w", location, err)
	}

	return newLookup(raw, gederrors.NewSink()), nil
}

// Diagnostics returns the diagnostics the lookup has accumulated so far.
func (l *Lookup) Diagnostics() gederrors.Diagnostics {
	return l.sink.Diagnostics()
}

// Sink returns the lookup's diagnostic sink, letting callers outside the
// package (the typed layer's payload parsing) report diagnostics against
// the same accumulator the lookup's own resolution methods use.
func (l *Lookup) Sink() *gederrors.Sink {
	return l.sink
}
