package logic

import (
	"testing"

	"pinatlas/internal/models"
)

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

func TestPinUpdateDocumentFullOverwriteWritesEveryField(t *testing.T) {
	set := pinUpdateDocument(PinUpdate{
		Title:    strptr("Lighthouse"),
		Latitude: floatptr(43.5),
	}, false)

	if set["title"] != "Lighthouse" {
		t.Fatalf("expected title to be set, got %v", set["title"])
	}
	// Absent fields are overwritten with their zero value, matching the
	// legacy full-overwrite behavior.
	for _, key := range []string{"description", "imageUrl", "bestTimeOfYear", "bestTimeOfDay", "photographyTips", "travelInformation"} {
		value, present := set[key]
		if !present {
			t.Fatalf("expected %s to be written in full overwrite mode", key)
		}
		if value != "" {
			t.Fatalf("expected %s to be blanked, got %v", key, value)
		}
	}

	location, ok := set["location"].(models.Location)
	if !ok {
		t.Fatalf("expected location document, got %T", set["location"])
	}
	if location.Latitude != 43.5 || location.Longitude != 0 {
		t.Fatalf("expected latitude 43.5 and zeroed longitude, got %+v", location)
	}
}

func TestPinUpdateDocumentPartialWritesOnlyProvidedFields(t *testing.T) {
	set := pinUpdateDocument(PinUpdate{
		Description: strptr("Golden hour spot"),
	}, true)

	if len(set) != 1 {
		t.Fatalf("expected only description to be written, got %v", set)
	}
	if set["description"] != "Golden hour spot" {
		t.Fatalf("unexpected description: %v", set["description"])
	}
}

func TestPinUpdateDocumentPartialCoordinates(t *testing.T) {
	set := pinUpdateDocument(PinUpdate{
		Latitude:  floatptr(12.3),
		Longitude: floatptr(45.6),
	}, true)

	if set["location.latitude"] != 12.3 || set["location.longitude"] != 45.6 {
		t.Fatalf("expected dotted coordinate paths, got %v", set)
	}
	if _, present := set["location"]; present {
		t.Fatal("partial update must not overwrite the whole location document")
	}
	if _, present := set["title"]; present {
		t.Fatal("partial update must not touch the title")
	}
}

func TestPinUpdateDocumentPartialSingleCoordinate(t *testing.T) {
	set := pinUpdateDocument(PinUpdate{Latitude: floatptr(12.3)}, true)

	if set["location.latitude"] != 12.3 {
		t.Fatalf("expected latitude path to be set, got %v", set)
	}
	// Only the provided coordinate may be written; a whole-document
	// overwrite would zero the stored longitude.
	if _, present := set["location"]; present {
		t.Fatal("partial update with only latitude must not overwrite the location document")
	}
	if _, present := set["location.longitude"]; present {
		t.Fatal("partial update with only latitude must not touch the longitude")
	}
}

func TestPinUpdateDocumentTrimsStrings(t *testing.T) {
	set := pinUpdateDocument(PinUpdate{Title: strptr("  Cliff walk  ")}, true)
	if set["title"] != "Cliff walk" {
		t.Fatalf("expected trimmed title, got %q", set["title"])
	}
}
