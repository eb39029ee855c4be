package typed

import "testing"

func TestSelectFirstFindsHeaderVersion(t *testing.T) {
	text := "0 HEAD\n1 GEDC\n2 VERS 7.0\n0 TRLR\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)
	ds, err := FromForest(forest, lookup)
	if err != nil {
		t.Fatalf("FromForest: %v", err)
	}

	vers := ds.SelectFirst(
		"https://gedcom.io/terms/v7/HEAD",
		"https://gedcom.io/terms/v7/HEAD-GEDC",
		"https://gedcom.io/terms/v7/GEDC-VERS",
	)
	if vers == nil || vers.Payload.Str != "7.0" {
		t.Fatalf("expected GEDC.VERS 7.0, got %+v", vers)
	}
}

func TestSelectDescendantFindsNameAcrossRecords(t *testing.T) {
	text := "0 @I1@ INDI\n1 NAME John /Doe/\n0 @I2@ INDI\n1 NAME Jane /Doe/\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)
	ds, err := FromForest(forest, lookup)
	if err != nil {
		t.Fatalf("FromForest: %v", err)
	}

	names := ds.SelectDescendant("https://gedcom.io/terms/v7/INDI-NAME")
	if len(names) != 2 {
		t.Fatalf("expected two NAME matches, got %d", len(names))
	}
}

func TestRootsIncludesHeaderAndRecordsInOrder(t *testing.T) {
	text := "0 HEAD\n1 GEDC\n2 VERS 7.0\n0 @I1@ INDI\n0 TRLR\n"
	forest := parseForest(t, text)
	lookup := loadLookup(t)
	ds, err := FromForest(forest, lookup)
	if err != nil {
		t.Fatalf("FromForest: %v", err)
	}

	roots := ds.Roots()
	if len(roots) < 2 || roots[0].Type != headerType {
		t.Fatalf("expected header first among roots, got %+v", roots)
	}
}
