package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefreshToken records a long-lived session grant. Only the sha256 digest of
// the issued token string is persisted; the plain token never reaches the
// database. Rotation revokes a grant and points it at its successor. The
// struct is storage-only and is never serialized to clients.
type RefreshToken struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `bson:"userId"`
	TokenHash string              `bson:"tokenHash"`
	IssuedAt  time.Time           `bson:"issuedAt"`
	ExpiresAt time.Time           `bson:"expiresAt"`
	Revoked   bool                `bson:"revoked"`
	Successor *primitive.ObjectID `bson:"successor,omitempty"`
}
