package logic

import (
	"testing"

	"pinatlas/internal/models"
)

func titled(titles ...string) []models.Collection {
	cols := make([]models.Collection, 0, len(titles))
	for _, title := range titles {
		cols = append(cols, models.Collection{Title: title})
	}
	return cols
}

func TestCollectionIndexFindsFirstMatch(t *testing.T) {
	cols := titled("Trips", "Beaches", "Trips")
	if got := collectionIndex(cols, "Beaches"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := collectionIndex(cols, "Trips"); got != 0 {
		t.Fatalf("expected first match at index 0, got %d", got)
	}
	if got := collectionIndex(cols, "Mountains"); got != -1 {
		t.Fatalf("expected -1 for missing title, got %d", got)
	}
}

func TestRenameCollidesLegacyMissesIndexZero(t *testing.T) {
	cols := titled("Trips", "Beaches", "Cities")

	// Renaming "Cities" to "Trips" collides at index 0, which the
	// legacy check does not see.
	if renameCollides(cols, 2, "Trips", false) {
		t.Fatal("legacy check should not detect a collision at index 0")
	}
	if renameCollides(cols, 2, "Beaches", false) == false {
		t.Fatal("legacy check should detect a collision at index 1")
	}
}

func TestRenameCollidesStrictCatchesIndexZero(t *testing.T) {
	cols := titled("Trips", "Beaches", "Cities")

	if !renameCollides(cols, 2, "Trips", true) {
		t.Fatal("strict check should detect a collision at index 0")
	}
	if !renameCollides(cols, 2, "Beaches", true) {
		t.Fatal("strict check should detect a collision at index 1")
	}
}

func TestRenameToOwnTitleNeverCollides(t *testing.T) {
	cols := titled("Trips", "Beaches")

	if renameCollides(cols, 0, "Trips", false) || renameCollides(cols, 0, "Trips", true) {
		t.Fatal("renaming a collection to its own title must be allowed")
	}
	if renameCollides(cols, 1, "Beaches", true) {
		t.Fatal("renaming a collection to its own title must be allowed in strict mode")
	}
}

func TestRenameToFreshTitleNeverCollides(t *testing.T) {
	cols := titled("Trips", "Beaches")
	if renameCollides(cols, 0, "Mountains", false) || renameCollides(cols, 0, "Mountains", true) {
		t.Fatal("renaming to an unused title must be allowed")
	}
}
