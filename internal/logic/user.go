package logic

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pinatlas/internal/apperr"
	"pinatlas/internal/models"
	"pinatlas/internal/validate"
)

// UserUpdate carries a partial profile overwrite; nil fields are left
// untouched.
type UserUpdate struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Avatar   *string `json:"avatar"`
	Language *string `json:"language"`
}

// RegisterUser persists a new user with a hashed password and returns its id.
// Fails when the email is already registered.
func (s *Service) RegisterUser(ctx context.Context, name, surname, email, password string) (primitive.ObjectID, error) {
	if err := s.check.Args(
		validate.Arg{Name: "name", Value: name, NotEmpty: true},
		validate.Arg{Name: "surname", Value: surname, NotEmpty: true},
		validate.Arg{Name: "password", Value: password, NotEmpty: true},
	); err != nil {
		return primitive.NilObjectID, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.check.Email(email); err != nil {
		return primitive.NilObjectID, err
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	count, err := s.users().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Println("[USER] [ERROR] register lookup failed:", err)
		return primitive.NilObjectID, apperr.Storage("could not check user existence")
	}
	if count > 0 {
		return primitive.NilObjectID, apperr.Conflict("user with email " + email + " already exists")
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		log.Println("[USER] [ERROR] register hash failed:", err)
		return primitive.NilObjectID, apperr.Storage("could not hash password")
	}

	now := time.Now()
	res, err := s.users().InsertOne(ctx, models.User{
		Name:         strings.TrimSpace(name),
		Surname:      strings.TrimSpace(surname),
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Println("[USER] [ERROR] register insert failed:", err)
		return primitive.NilObjectID, apperr.Storage("could not register user")
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	log.Println("[USER] [INFO] user registered:", email)
	return id, nil
}

// AuthenticateUser resolves the user by email and verifies the password,
// returning the user id.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (primitive.ObjectID, error) {
	if err := s.check.Args(
		validate.Arg{Name: "password", Value: password, NotEmpty: true},
	); err != nil {
		return primitive.NilObjectID, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.check.Email(email); err != nil {
		return primitive.NilObjectID, err
	}

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var user models.User
	if err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, apperr.Credentials("wrong credentials")
		}
		log.Println("[USER] [ERROR] authenticate lookup failed:", err)
		return primitive.NilObjectID, apperr.Storage("could not authenticate user")
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		return primitive.NilObjectID, apperr.Credentials("wrong credentials")
	}
	return user.ID, nil
}

// RetrieveUser returns the user's profile without the password hash.
func (s *Service) RetrieveUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	projection := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	var user models.User
	if err := s.users().FindOne(ctx, bson.M{"_id": userID}, projection).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		log.Println("[USER] [ERROR] retrieve failed:", err)
		return nil, apperr.Storage("could not retrieve user")
	}
	return &user, nil
}

// UpdateUser applies a partial profile overwrite.
func (s *Service) UpdateUser(ctx context.Context, userID primitive.ObjectID, update UserUpdate) error {
	set := userUpdateDocument(update)
	set["updatedAt"] = time.Now()

	ctx, cancel := storageCtx(ctx)
	defer cancel()

	res, err := s.users().UpdateByID(ctx, userID, bson.M{"$set": set})
	if err != nil {
		log.Println("[USER] [ERROR] update failed:", err)
		return apperr.Storage("could not update user")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// RemoveUser deletes the user and everything it authored. Cascade order is
// pins, then maps, then the user's session tokens, then the user itself; a
// failure mid-cascade leaves the earlier steps applied.
func (s *Service) RemoveUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	if err := s.users().FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("user not found")
		}
		log.Println("[USER] [ERROR] remove lookup failed:", err)
		return apperr.Storage("could not remove user")
	}

	if _, err := s.pins().DeleteMany(ctx, bson.M{"author": userID}); err != nil {
		log.Println("[USER] [ERROR] remove pins cascade failed:", err)
		return apperr.PartialFailure("pins", "could not remove user's pins")
	}
	if _, err := s.maps().DeleteMany(ctx, bson.M{"author": userID}); err != nil {
		log.Println("[USER] [ERROR] remove maps cascade failed:", err)
		return apperr.PartialFailure("maps", "could not remove user's maps")
	}
	if _, err := s.tokens().DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("[USER] [ERROR] remove tokens cascade failed:", err)
		return apperr.PartialFailure("tokens", "could not remove user's sessions")
	}
	if _, err := s.users().DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		log.Println("[USER] [ERROR] remove failed:", err)
		return apperr.PartialFailure("user", "could not remove user")
	}

	log.Println("[USER] [INFO] user removed:", userID.Hex())
	return nil
}

// SetFavoriteMap records a public map as the user's favorite.
func (s *Service) SetFavoriteMap(ctx context.Context, userID, mapID primitive.ObjectID) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var m models.Map
	if err := s.maps().FindOne(ctx, bson.M{"_id": mapID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("map not found")
		}
		log.Println("[USER] [ERROR] favorite map lookup failed:", err)
		return apperr.Storage("could not set favorite map")
	}
	if !m.IsPublic {
		return apperr.Forbidden("map is not public")
	}

	res, err := s.users().UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"favoriteMap": mapID, "updatedAt": time.Now()},
	})
	if err != nil {
		log.Println("[USER] [ERROR] set favorite map failed:", err)
		return apperr.Storage("could not set favorite map")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// ClearFavoriteMap drops the user's favorite map reference.
func (s *Service) ClearFavoriteMap(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	res, err := s.users().UpdateByID(ctx, userID, bson.M{
		"$unset": bson.M{"favoriteMap": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		log.Println("[USER] [ERROR] clear favorite map failed:", err)
		return apperr.Storage("could not clear favorite map")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// userUpdateDocument builds the $set document from the fields present in
// the update.
func userUpdateDocument(update UserUpdate) bson.M {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Surname != nil {
		set["surname"] = strings.TrimSpace(*update.Surname)
	}
	if update.Avatar != nil {
		set["avatar"] = strings.TrimSpace(*update.Avatar)
	}
	if update.Language != nil {
		set["language"] = strings.TrimSpace(*update.Language)
	}
	return set
}
