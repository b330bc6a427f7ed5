package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client and verifies the deployment is reachable.
func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureUserIndexes creates the unique email index backing duplicate
// registration checks.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

// EnsureMapIndexes creates the author index used by map listing and cascades.
func EnsureMapIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	authorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author_index"),
	}

	log.Println("EnsureMapIndexes: creating author_index index")
	if _, err := db.Collection("maps").Indexes().CreateOne(ctx, authorIndex); err != nil {
		log.Println("EnsureMapIndexes: author index error:", err)
		return err
	}
	return nil
}

// EnsurePinIndexes creates the mapId and author indexes used by cascades
// and ownership-filtered deletes.
func EnsurePinIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mapId", Value: 1}},
			Options: options.Index().SetName("mapId_index"),
		},
		{
			Keys:    bson.D{{Key: "author", Value: 1}},
			Options: options.Index().SetName("author_index"),
		},
	}

	log.Println("EnsurePinIndexes: creating mapId_index and author_index indexes")
	if _, err := db.Collection("pins").Indexes().CreateMany(ctx, indexes); err != nil {
		log.Println("EnsurePinIndexes: index error:", err)
		return err
	}
	return nil
}
