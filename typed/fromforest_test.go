package typed

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacoelho/gedcom/dialect"
	"github.com/jacoelho/gedcom/schema"
	"github.com/jacoelho/gedcom/tagtree"
)

func loadLookup(t *testing.T) *schema.Lookup {
	t.Helper()
	l, err := schema.Load(os.DirFS("../schema/testdata"), "g7validation.json")
	require.NoError(t, err)
	return l
}

func parseForest(t *testing.T, text string) *tagtree.Forest {
	t.Helper()
	forest, _, err := tagtree.Parse(text, dialect.GEDCOM7())
	require.NoError(t, err)
	return forest
}

func TestFromForestMinimumDataset(t *testing.T) {
	text := "0 HEAD\n1 GEDC\n2 VERS 7.0\n0 TRLR\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	header := ds.Header()
	require.NotNil(t, header)
	require.Equal(t, "https://gedcom.io/terms/v7/HEAD", header.Type)

	gedc := header.ChildrenOfType("https://gedcom.io/terms/v7/HEAD-GEDC")
	require.Len(t, gedc, 1)

	vers := gedc[0].ChildrenOfType("https://gedcom.io/terms/v7/GEDC-VERS")
	require.Len(t, vers, 1)
	require.Equal(t, "7.0", vers[0].Payload.Str)
}

func TestFromForestVoidPointer(t *testing.T) {
	text := "0 @I1@ INDI\n1 EXID @VOID@\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	require.Len(t, records, 1)

	exid := records[0].ChildrenOfType("https://gedcom.io/terms/v7/EXID")
	require.Len(t, exid, 1)
	require.Equal(t, PayloadNullPointer, exid[0].Payload.Kind)
}

func TestFromForestUnresolvedPointerRejected(t *testing.T) {
	text := "0 @I1@ INDI\n1 EXID @I2@\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	exid := records[0].ChildrenOfType("https://gedcom.io/terms/v7/EXID")
	require.Len(t, exid, 1)
	require.Equal(t, PayloadNullPointer, exid[0].Payload.Kind, "expected null pointer for unresolved target")
}

func TestFromForestPointerToSubstructureRejected(t *testing.T) {
	// EXID's payload declares no "To" constraint in the fixture, so this
	// exercises a pointer to a non-top-level structure, which is always
	// rejected regardless of declared target type.
	text := "0 @I1@ INDI\n1 NAME John /Doe/\n2 @I2@ EXID 1\n0 @I3@ INDI\n1 EXID @I2@\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	require.Len(t, records, 2)

	exid := records[1].ChildrenOfType("https://gedcom.io/terms/v7/EXID")
	require.Len(t, exid, 1)
	require.Equal(t, PayloadNullPointer, exid[0].Payload.Kind, "expected pointer-to-substructure to be nulled")
}

func TestFromForestExtensionRegistration(t *testing.T) {
	text := "0 HEAD\n1 GEDC\n2 VERS 7.0\n1 SCHMA\n2 TAG _FOO https://example.com/foo\n" +
		"0 @I1@ INDI\n1 _FOO bar\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	foo := records[0].ChildrenOfType("https://example.com/foo")
	require.Len(t, foo, 1)
	require.Equal(t, "bar", foo[0].Payload.Str)
}

func TestFromForestEnumPayload(t *testing.T) {
	text := "0 @I1@ INDI\n1 SEX M\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	sex := records[0].ChildrenOfType("https://gedcom.io/terms/v7/SEX")
	require.Len(t, sex, 1)
	require.Equal(t, PayloadEnum, sex[0].Payload.Kind)
	require.Equal(t, "https://gedcom.io/terms/v7/enum-M", sex[0].Payload.Enum.URI)
}

func TestFromForestDatePeriodPreserved(t *testing.T) {
	text := "0 @I1@ INDI\n1 BIRT\n2 PAGE FROM 1 JAN 2000 TO 28 FEB 2000\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	birt := records[0].ChildrenOfType("https://gedcom.io/terms/v7/INDI-BIRT")
	require.Len(t, birt, 1)

	page := birt[0].ChildrenOfType("https://gedcom.io/terms/v7/PAGE")
	require.Len(t, page, 1)
	require.Equal(t, PayloadDateValue, page[0].Payload.Kind)
	require.EqualValues(t, 4, page[0].Payload.DateValue.Kind, "expected date period kind")
}

func TestFromForestDatePeriodDowngradeReportsHeadKeywordOnly(t *testing.T) {
	text := "0 @I1@ INDI\n1 BIRT\n2 PAGE ABT 1 JAN 2020\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)
	_ = ds

	var found bool
	for _, d := range lookup.Diagnostics() {
		if d.Code == "ged-invalid-date-value" {
			require.Equal(t, "Expected DatePeriod, not ABT", d.Message)
			found = true
		}
	}
	require.True(t, found, "expected an invalid-date-value diagnostic for the non-period PAGE value")
}

func TestFromForestUndocumentedTagFallsBackToSentinel(t *testing.T) {
	text := "0 @I1@ INDI\n1 _BOGUS xyz\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)

	ds, err := FromForest(forest, lookup)
	require.NoError(t, err)

	records := ds.Records("https://gedcom.io/terms/v7/record-INDI")
	bogus := records[0].ChildrenOfType("tag:_BOGUS")
	require.Len(t, bogus, 1)
	require.Equal(t, "xyz", bogus[0].Payload.Str)

	diags := lookup.Diagnostics()
	require.NotEmpty(t, diags, "expected a diagnostic for the undocumented tag")
}
