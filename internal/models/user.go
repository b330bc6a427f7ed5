package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents the application user account.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Surname      string              `bson:"surname" json:"surname"`
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"passwordHash,omitempty" json:"-"`
	Avatar       string              `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Language     string              `bson:"language,omitempty" json:"language,omitempty"`
	FavoriteMap  *primitive.ObjectID `bson:"favoriteMap,omitempty" json:"favoriteMap,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
