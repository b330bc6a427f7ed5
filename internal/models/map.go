package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is a named, ordered group of pin references embedded in a map.
// The title is the lookup key within its parent map.
type Collection struct {
	Title string               `bson:"title" json:"title"`
	Pins  []primitive.ObjectID `bson:"pins" json:"pins"`
}

// Map is a user-owned set of pin collections, optionally public.
type Map struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CoverImage  string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	IsPublic    bool               `bson:"isPublic" json:"isPublic"`
	Author      primitive.ObjectID `bson:"author" json:"author"`
	Collections []Collection       `bson:"collections" json:"collections"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
