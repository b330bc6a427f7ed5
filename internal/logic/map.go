package logic

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pinatlas/internal/apperr"
	"pinatlas/internal/models"
	"pinatlas/internal/validate"
)

// MapUpdate carries the mutable map fields. An empty field is a no-op, not a
// clear; a blank string cannot be used to erase a title, description or
// cover image (legacy behavior).
type MapUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

// PopulatedCollection is a collection with its pin references materialized.
type PopulatedCollection struct {
	Title string       `json:"title"`
	Pins  []models.Pin `json:"pins"`
}

// PopulatedMap is a map with every collection's pins fully materialized.
type PopulatedMap struct {
	ID          primitive.ObjectID    `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	CoverImage  string                `json:"coverImage,omitempty"`
	IsPublic    bool                  `json:"isPublic"`
	Author      primitive.ObjectID    `json:"author"`
	Collections []PopulatedCollection `json:"collections"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ListUserMaps returns every map authored by the user, public or not.
func (s *Service) ListUserMaps(ctx context.Context, userID primitive.ObjectID) ([]models.Map, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	cursor, err := s.maps().Find(ctx, bson.M{"author": userID})
	if err != nil {
		log.Println("[MAP] [ERROR] list failed:", err)
		return nil, apperr.Storage("could not list maps")
	}
	defer cursor.Close(ctx)

	maps := make([]models.Map, 0)
	if err := cursor.All(ctx, &maps); err != nil {
		log.Println("[MAP] [ERROR] list decode failed:", err)
		return nil, apperr.Storage("could not list maps")
	}
	return maps, nil
}

// ListPublicMaps returns every map flagged public, for any requester.
func (s *Service) ListPublicMaps(ctx context.Context) ([]models.Map, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	cursor, err := s.maps().Find(ctx, bson.M{"isPublic": true})
	if err != nil {
		log.Println("[MAP] [ERROR] public list failed:", err)
		return nil, apperr.Storage("could not list public maps")
	}
	defer cursor.Close(ctx)

	maps := make([]models.Map, 0)
	if err := cursor.All(ctx, &maps); err != nil {
		log.Println("[MAP] [ERROR] public list decode failed:", err)
		return nil, apperr.Storage("could not list public maps")
	}
	return maps, nil
}

// RetrieveMap resolves a map with its collections and each collection's pins
// fully materialized. A private map is visible to its author only; the
// requester may be primitive.NilObjectID for anonymous access to public maps.
func (s *Service) RetrieveMap(ctx context.Context, requester, mapID primitive.ObjectID) (*PopulatedMap, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var m models.Map
	if err := s.maps().FindOne(ctx, bson.M{"_id": mapID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("map not found")
		}
		log.Println("[MAP] [ERROR] retrieve failed:", err)
		return nil, apperr.Storage("could not retrieve map")
	}
	if !m.IsPublic && m.Author != requester {
		return nil, apperr.Forbidden("map is private")
	}

	pinIDs := make([]primitive.ObjectID, 0)
	for _, col := range m.Collections {
		pinIDs = append(pinIDs, col.Pins...)
	}

	pins := make([]models.Pin, 0, len(pinIDs))
	if len(pinIDs) > 0 {
		cursor, err := s.pins().Find(ctx, bson.M{"_id": bson.M{"$in": pinIDs}})
		if err != nil {
			log.Println("[MAP] [ERROR] retrieve pins failed:", err)
			return nil, apperr.Storage("could not retrieve map pins")
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &pins); err != nil {
			log.Println("[MAP] [ERROR] retrieve pins decode failed:", err)
			return nil, apperr.Storage("could not retrieve map pins")
		}
	}

	return &PopulatedMap{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CoverImage:  m.CoverImage,
		IsPublic:    m.IsPublic,
		Author:      m.Author,
		Collections: materializeCollections(m.Collections, pins),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// CreateMap creates a map owned by the user and returns its id.
func (s *Service) CreateMap(ctx context.Context, userID primitive.ObjectID, title, description, coverImage string, isPublic bool) (primitive.ObjectID, error) {
	if err := s.check.Args(
		validate.Arg{Name: "title", Value: title, NotEmpty: true},
	); err != nil {
		return primitive.NilObjectID, err
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	now := time.Now()
	res, err := s.maps().InsertOne(ctx, models.Map{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CoverImage:  strings.TrimSpace(coverImage),
		IsPublic:    isPublic,
		Author:      userID,
		Collections: []models.Collection{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Println("[MAP] [ERROR] create failed:", err)
		return primitive.NilObjectID, apperr.Storage("could not create map")
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	log.Println("[MAP] [INFO] map created:", id.Hex())
	return id, nil
}

// UpdateMap applies the non-empty fields of the update to an owned map.
func (s *Service) UpdateMap(ctx context.Context, userID, mapID primitive.ObjectID, update MapUpdate) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	if _, err := s.ownedMap(ctx, userID, mapID); err != nil {
		return err
	}

	set := mapUpdateDocument(update)
	set["updatedAt"] = time.Now()

	if _, err := s.maps().UpdateByID(ctx, mapID, bson.M{"$set": set}); err != nil {
		log.Println("[MAP] [ERROR] update failed:", err)
		return apperr.Storage("could not update map")
	}
	return nil
}

// SetMapVisibility flips the public flag on an owned map.
func (s *Service) SetMapVisibility(ctx context.Context, userID, mapID primitive.ObjectID, isPublic bool) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	if _, err := s.ownedMap(ctx, userID, mapID); err != nil {
		return err
	}

	if _, err := s.maps().UpdateByID(ctx, mapID, bson.M{
		"$set": bson.M{"isPublic": isPublic, "updatedAt": time.Now()},
	}); err != nil {
		log.Println("[MAP] [ERROR] visibility update failed:", err)
		return apperr.Storage("could not update map visibility")
	}
	return nil
}

// RemoveMap deletes an owned map. Every pin belonging to the map is deleted
// first; a failure between the two steps leaves the pins gone and the map in
// place.
func (s *Service) RemoveMap(ctx context.Context, userID, mapID primitive.ObjectID) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	if _, err := s.ownedMap(ctx, userID, mapID); err != nil {
		return err
	}

	if _, err := s.pins().DeleteMany(ctx, bson.M{"mapId": mapID}); err != nil {
		log.Println("[MAP] [ERROR] remove pins cascade failed:", err)
		return apperr.PartialFailure("pins", "could not remove map's pins")
	}
	if _, err := s.maps().DeleteOne(ctx, bson.M{"_id": mapID}); err != nil {
		log.Println("[MAP] [ERROR] remove failed:", err)
		return apperr.PartialFailure("map", "could not remove map")
	}

	log.Println("[MAP] [INFO] map removed:", mapID.Hex())
	return nil
}

// ownedMap resolves a map and verifies the requester authored it.
func (s *Service) ownedMap(ctx context.Context, userID, mapID primitive.ObjectID) (*models.Map, error) {
	var m models.Map
	if err := s.maps().FindOne(ctx, bson.M{"_id": mapID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("map not found")
		}
		log.Println("[MAP] [ERROR] ownership lookup failed:", err)
		return nil, apperr.Storage("could not retrieve map")
	}
	if m.Author != userID {
		return nil, apperr.Forbidden("map does not belong to user")
	}
	return &m, nil
}

// mapUpdateDocument builds the $set document from the non-empty update
// fields.
func mapUpdateDocument(update MapUpdate) bson.M {
	set := bson.M{}
	if strings.TrimSpace(update.Title) != "" {
		set["title"] = strings.TrimSpace(update.Title)
	}
	if strings.TrimSpace(update.Description) != "" {
		set["description"] = strings.TrimSpace(update.Description)
	}
	if strings.TrimSpace(update.CoverImage) != "" {
		set["coverImage"] = strings.TrimSpace(update.CoverImage)
	}
	return set
}

// materializeCollections replaces each collection's pin references with the
// matching pin documents, preserving sequence order. References that no
// longer resolve are skipped.
func materializeCollections(cols []models.Collection, pins []models.Pin) []PopulatedCollection {
	pinByID := make(map[primitive.ObjectID]models.Pin, len(pins))
	for _, pin := range pins {
		pinByID[pin.ID] = pin
	}

	populated := make([]PopulatedCollection, 0, len(cols))
	for _, col := range cols {
		entry := PopulatedCollection{Title: col.Title, Pins: make([]models.Pin, 0, len(col.Pins))}
		for _, pinID := range col.Pins {
			if pin, exists := pinByID[pinID]; exists {
				entry.Pins = append(entry.Pins, pin)
			}
		}
		populated = append(populated, entry)
	}
	return populated
}
