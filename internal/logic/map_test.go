package logic

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pinatlas/internal/models"
)

func TestMaterializeCollectionsPreservesSequenceOrder(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	third := primitive.NewObjectID()

	cols := []models.Collection{
		{Title: "Trips", Pins: []primitive.ObjectID{second, first}},
		{Title: "Beaches", Pins: []primitive.ObjectID{third}},
	}
	// Store order intentionally differs from sequence order.
	pins := []models.Pin{
		{ID: first, Title: "A"},
		{ID: third, Title: "C"},
		{ID: second, Title: "B"},
	}

	populated := materializeCollections(cols, pins)
	if len(populated) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(populated))
	}
	if populated[0].Pins[0].Title != "B" || populated[0].Pins[1].Title != "A" {
		t.Fatalf("expected sequence order B,A got %s,%s", populated[0].Pins[0].Title, populated[0].Pins[1].Title)
	}
	if populated[1].Pins[0].Title != "C" {
		t.Fatalf("expected C in second collection, got %s", populated[1].Pins[0].Title)
	}
}

func TestMaterializeCollectionsSkipsDanglingReferences(t *testing.T) {
	kept := primitive.NewObjectID()
	dangling := primitive.NewObjectID()

	cols := []models.Collection{
		{Title: "Trips", Pins: []primitive.ObjectID{dangling, kept}},
	}
	pins := []models.Pin{{ID: kept, Title: "Kept"}}

	populated := materializeCollections(cols, pins)
	if len(populated[0].Pins) != 1 {
		t.Fatalf("expected dangling reference to be skipped, got %d pins", len(populated[0].Pins))
	}
	if populated[0].Pins[0].Title != "Kept" {
		t.Fatalf("unexpected pin: %s", populated[0].Pins[0].Title)
	}
}

func TestMaterializeCollectionsKeepsEmptyCollections(t *testing.T) {
	populated := materializeCollections([]models.Collection{{Title: "Empty"}}, nil)
	if len(populated) != 1 || populated[0].Title != "Empty" {
		t.Fatalf("expected empty collection to survive, got %+v", populated)
	}
	if len(populated[0].Pins) != 0 {
		t.Fatalf("expected no pins, got %d", len(populated[0].Pins))
	}
}

func TestMapUpdateDocumentSkipsEmptyFields(t *testing.T) {
	set := mapUpdateDocument(MapUpdate{Title: "New title", CoverImage: "   "})
	if set["title"] != "New title" {
		t.Fatalf("expected title to be set, got %v", set["title"])
	}
	// A blank field is a no-op, not a clear.
	if _, present := set["coverImage"]; present {
		t.Fatal("blank coverImage must not be written")
	}
	if _, present := set["description"]; present {
		t.Fatal("absent description must not be written")
	}
}

func TestUserUpdateDocumentWritesOnlyProvidedFields(t *testing.T) {
	language := "de"
	set := userUpdateDocument(UserUpdate{Language: &language})
	if len(set) != 1 || set["language"] != "de" {
		t.Fatalf("expected only language to be written, got %v", set)
	}
}
