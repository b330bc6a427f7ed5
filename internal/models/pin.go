package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location holds the geographic coordinates of a pin.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Pin is a single geo-tagged point of interest with photo metadata.
type Pin struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL          string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	BestTimeOfYear    string             `bson:"bestTimeOfYear,omitempty" json:"bestTimeOfYear,omitempty"`
	BestTimeOfDay     string             `bson:"bestTimeOfDay,omitempty" json:"bestTimeOfDay,omitempty"`
	PhotographyTips   string             `bson:"photographyTips,omitempty" json:"photographyTips,omitempty"`
	TravelInformation string             `bson:"travelInformation,omitempty" json:"travelInformation,omitempty"`
	Location          Location           `bson:"location" json:"location"`
	Author            primitive.ObjectID `bson:"author" json:"author"`
	MapID             primitive.ObjectID `bson:"mapId" json:"mapId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
