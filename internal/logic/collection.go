package logic

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pinatlas/internal/apperr"
	"pinatlas/internal/models"
	"pinatlas/internal/validate"
)

// CreateCollection appends a new empty collection to an owned map's sequence
// and returns the new 1-based count. The legacy behavior performs no
// duplicate-title check; the strict policy rejects an existing title.
func (s *Service) CreateCollection(ctx context.Context, userID, mapID primitive.ObjectID, title string) (int, error) {
	if err := s.check.Args(
		validate.Arg{Name: "title", Value: title, NotEmpty: true},
	); err != nil {
		return 0, err
	}
	title = strings.TrimSpace(title)

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	m, err := s.ownedMap(ctx, userID, mapID)
	if err != nil {
		return 0, err
	}

	if s.policy.StrictCollectionTitles && collectionIndex(m.Collections, title) != -1 {
		return 0, apperr.Conflict("collection with title " + title + " already exists")
	}

	if _, err := s.maps().UpdateByID(ctx, mapID, bson.M{
		"$push": bson.M{"collections": models.Collection{Title: title, Pins: []primitive.ObjectID{}}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}); err != nil {
		log.Println("[COLLECTION] [ERROR] create failed:", err)
		return 0, apperr.Storage("could not create collection")
	}

	log.Println("[COLLECTION] [INFO] collection created:", title)
	return len(m.Collections) + 1, nil
}

// RenameCollection renames a collection in place, keeping its position and
// pin sequence. With the legacy policy a title collision is only detected
// at index > 0; the strict policy rejects a collision anywhere.
func (s *Service) RenameCollection(ctx context.Context, userID, mapID primitive.ObjectID, oldTitle, newTitle string) error {
	if err := s.check.Args(
		validate.Arg{Name: "oldTitle", Value: oldTitle, NotEmpty: true},
		validate.Arg{Name: "newTitle", Value: newTitle, NotEmpty: true},
	); err != nil {
		return err
	}
	oldTitle = strings.TrimSpace(oldTitle)
	newTitle = strings.TrimSpace(newTitle)

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	m, err := s.ownedMap(ctx, userID, mapID)
	if err != nil {
		return err
	}

	index := collectionIndex(m.Collections, oldTitle)
	if index == -1 {
		return apperr.NotFound("no collection found with title " + oldTitle)
	}
	if renameCollides(m.Collections, index, newTitle, s.policy.StrictCollectionTitles) {
		return apperr.Conflict("collection with title " + newTitle + " already exists")
	}

	if _, err := s.maps().UpdateByID(ctx, mapID, bson.M{
		"$set": bson.M{
			fmt.Sprintf("collections.%d.title", index): newTitle,
			"updatedAt": time.Now(),
		},
	}); err != nil {
		log.Println("[COLLECTION] [ERROR] rename failed:", err)
		return apperr.Storage("could not rename collection")
	}

	log.Println("[COLLECTION] [INFO] collection renamed:", oldTitle, "->", newTitle)
	return nil
}

// RemoveCollection removes a collection from an owned map's sequence and
// deletes every pin it referenced. Pins are deleted first; a failure between
// the steps leaves the pins gone and the collection in place.
func (s *Service) RemoveCollection(ctx context.Context, userID, mapID primitive.ObjectID, title string) error {
	if err := s.check.Args(
		validate.Arg{Name: "title", Value: title, NotEmpty: true},
	); err != nil {
		return err
	}
	title = strings.TrimSpace(title)

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	m, err := s.ownedMap(ctx, userID, mapID)
	if err != nil {
		return err
	}

	index := collectionIndex(m.Collections, title)
	if index == -1 {
		return apperr.NotFound("no collection found with title " + title)
	}

	if refs := m.Collections[index].Pins; len(refs) > 0 {
		if _, err := s.pins().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": refs}}); err != nil {
			log.Println("[COLLECTION] [ERROR] remove pins cascade failed:", err)
			return apperr.PartialFailure("pins", "could not remove collection's pins")
		}
	}

	remaining := append(m.Collections[:index:index], m.Collections[index+1:]...)
	if _, err := s.maps().UpdateByID(ctx, mapID, bson.M{
		"$set": bson.M{"collections": remaining, "updatedAt": time.Now()},
	}); err != nil {
		log.Println("[COLLECTION] [ERROR] remove failed:", err)
		return apperr.PartialFailure("collection", "could not remove collection")
	}

	log.Println("[COLLECTION] [INFO] collection removed:", title)
	return nil
}

// collectionIndex returns the position of the first collection with the
// given title, or -1.
func collectionIndex(cols []models.Collection, title string) int {
	for i, col := range cols {
		if col.Title == title {
			return i
		}
	}
	return -1
}

// renameCollides reports whether renaming the collection at index to
// newTitle hits an existing title. The legacy check only sees a collision
// at a position greater than zero, so a duplicate sitting at index 0 slips
// through; strict mode catches it anywhere.
func renameCollides(cols []models.Collection, index int, newTitle string, strict bool) bool {
	existing := collectionIndex(cols, newTitle)
	if existing == -1 || existing == index {
		return false
	}
	if strict {
		return true
	}
	return existing > 0
}
