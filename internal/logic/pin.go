package logic

import (
	"context"
	"fmt"
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

// PinFields carries the mutable pin attributes for creation.
type PinFields struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"imageUrl"`
	BestTimeOfYear    string  `json:"bestTimeOfYear"`
	BestTimeOfDay     string  `json:"bestTimeOfDay"`
	PhotographyTips   string  `json:"photographyTips"`
	TravelInformation string  `json:"travelInformation"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
}

// PinUpdate carries the mutable pin attributes for an update. Under the
// legacy policy every field is overwritten, an absent field included;
// the partial policy applies only the fields present.
type PinUpdate struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	ImageURL          *string  `json:"imageUrl"`
	BestTimeOfYear    *string  `json:"bestTimeOfYear"`
	BestTimeOfDay     *string  `json:"bestTimeOfDay"`
	PhotographyTips   *string  `json:"photographyTips"`
	TravelInformation *string  `json:"travelInformation"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}

// CreatePin inserts a pin document owned by the user and appends its id to
// the named collection's sequence on an owned map. The insert and the append
// are two separate writes; a failure between them leaves the pin stored but
// unlinked.
func (s *Service) CreatePin(ctx context.Context, userID, mapID primitive.ObjectID, collectionTitle string, fields PinFields) (primitive.ObjectID, error) {
	if err := s.check.Args(
		validate.Arg{Name: "collectionTitle", Value: collectionTitle, NotEmpty: true},
		validate.Arg{Name: "title", Value: fields.Title, NotEmpty: true},
	); err != nil {
		return primitive.NilObjectID, err
	}
	if err := s.check.Coordinates(fields.Latitude, fields.Longitude); err != nil {
		return primitive.NilObjectID, err
	}
	collectionTitle = strings.TrimSpace(collectionTitle)

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	m, err := s.ownedMap(ctx, userID, mapID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	index := collectionIndex(m.Collections, collectionTitle)
	if index == -1 {
		return primitive.NilObjectID, apperr.NotFound("no collection found with title " + collectionTitle)
	}

	now := time.Now()
	res, err := s.pins().InsertOne(ctx, models.Pin{
		Title:             strings.TrimSpace(fields.Title),
		Description:       fields.Description,
		ImageURL:          fields.ImageURL,
		BestTimeOfYear:    fields.BestTimeOfYear,
		BestTimeOfDay:     fields.BestTimeOfDay,
		PhotographyTips:   fields.PhotographyTips,
		TravelInformation: fields.TravelInformation,
		Location:          models.Location{Latitude: fields.Latitude, Longitude: fields.Longitude},
		Author:            userID,
		MapID:             mapID,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		log.Println("[PIN] [ERROR] create failed:", err)
		return primitive.NilObjectID, apperr.Storage("could not create pin")
	}

	pinID, _ := res.InsertedID.(primitive.ObjectID)
	if _, err := s.maps().UpdateByID(ctx, mapID, bson.M{
		"$push": bson.M{fmt.Sprintf("collections.%d.pins", index): pinID},
		"$set":  bson.M{"updatedAt": now},
	}); err != nil {
		log.Println("[PIN] [ERROR] link to collection failed:", err)
		return primitive.NilObjectID, apperr.PartialFailure("link", "pin created but not linked to collection")
	}

	log.Println("[PIN] [INFO] pin created:", pinID.Hex())
	return pinID, nil
}

// UpdatePin mutates a pin authored by the user.
func (s *Service) UpdatePin(ctx context.Context, userID, pinID primitive.ObjectID, update PinUpdate) error {
	if s.policy.PartialPinUpdate {
		if update.Latitude != nil {
			if err := s.check.Latitude(*update.Latitude); err != nil {
				return err
			}
		}
		if update.Longitude != nil {
			if err := s.check.Longitude(*update.Longitude); err != nil {
				return err
			}
		}
	} else {
		lat, lng := 0.0, 0.0
		if update.Latitude != nil {
			lat = *update.Latitude
		}
		if update.Longitude != nil {
			lng = *update.Longitude
		}
		if err := s.check.Coordinates(lat, lng); err != nil {
			return err
		}
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var pin models.Pin
	if err := s.pins().FindOne(ctx, bson.M{"_id": pinID}).Decode(&pin); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("no pin found")
		}
		log.Println("[PIN] [ERROR] update lookup failed:", err)
		return apperr.Storage("could not update pin")
	}
	if pin.Author != userID {
		return apperr.Forbidden("pin does not belong to user")
	}

	set := pinUpdateDocument(update, s.policy.PartialPinUpdate)
	set["updatedAt"] = time.Now()

	if _, err := s.pins().UpdateByID(ctx, pinID, bson.M{"$set": set}); err != nil {
		log.Println("[PIN] [ERROR] update failed:", err)
		return apperr.Storage("could not update pin")
	}
	return nil
}

// RemovePin deletes the pin document matched by id and author in a single
// step. The legacy behavior leaves the dangling reference in its parent
// collection's sequence; the prune policy pulls it out of the owner's maps.
func (s *Service) RemovePin(ctx context.Context, userID, pinID primitive.ObjectID) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	res, err := s.pins().DeleteOne(ctx, bson.M{"_id": pinID, "author": userID})
	if err != nil {
		log.Println("[PIN] [ERROR] remove failed:", err)
		return apperr.Storage("could not remove pin")
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("no pin found")
	}

	if s.policy.PrunePinRefs {
		if _, err := s.maps().UpdateMany(ctx, bson.M{"author": userID}, bson.M{
			"$pull": bson.M{"collections.$[].pins": pinID},
		}); err != nil {
			log.Println("[PIN] [ERROR] prune references failed:", err)
			return apperr.PartialFailure("prune", "pin removed but references not pruned")
		}
	}

	log.Println("[PIN] [INFO] pin removed:", pinID.Hex())
	return nil
}

// pinUpdateDocument builds the $set document for a pin update. In full
// overwrite mode every mutable field is written, absent fields as their zero
// value; in partial mode only the fields present are written, coordinates
// individually.
func pinUpdateDocument(update PinUpdate, partial bool) bson.M {
	set := bson.M{}

	setString := func(key string, value *string) {
		if value != nil {
			set[key] = strings.TrimSpace(*value)
		} else if !partial {
			set[key] = ""
		}
	}
	setString("title", update.Title)
	setString("description", update.Description)
	setString("imageUrl", update.ImageURL)
	setString("bestTimeOfYear", update.BestTimeOfYear)
	setString("bestTimeOfDay", update.BestTimeOfDay)
	setString("photographyTips", update.PhotographyTips)
	setString("travelInformation", update.TravelInformation)

	if partial {
		// Dotted paths so that the coordinate not provided keeps its
		// stored value.
		if update.Latitude != nil {
			set["location.latitude"] = *update.Latitude
		}
		if update.Longitude != nil {
			set["location.longitude"] = *update.Longitude
		}
		return set
	}

	location := models.Location{}
	if update.Latitude != nil {
		location.Latitude = *update.Latitude
	}
	if update.Longitude != nil {
		location.Longitude = *update.Longitude
	}
	set["location"] = location
	return set
}
