package logic

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"pinatlas/internal/credentials"
	"pinatlas/internal/validate"
)

const storageTimeout = 5 * time.Second

// Policy selects between the legacy behavior and the stricter fixes for
// the known data-integrity gaps. The zero value keeps the legacy behavior.
type Policy struct {
	// StrictCollectionTitles rejects duplicate collection titles on create
	// and on rename at any position, not just at index > 0.
	StrictCollectionTitles bool
	// PartialPinUpdate applies only the provided pin fields instead of
	// overwriting every mutable field.
	PartialPinUpdate bool
	// PrunePinRefs removes a deleted pin's id from its parent map's
	// collection sequences instead of leaving a dangling reference.
	PrunePinRefs bool
}

// Service implements every state-changing and state-reading operation on
// users, maps, collections and pins, enforcing ownership and referential
// invariants. It holds injected references to the persistence store, the
// credential service and the validation utility.
type Service struct {
	db     *mongo.Database
	hasher credentials.Hasher
	check  *validate.Checker
	policy Policy
}

func NewService(db *mongo.Database, hasher credentials.Hasher, check *validate.Checker, policy Policy) *Service {
	return &Service{db: db, hasher: hasher, check: check, policy: policy}
}

func (s *Service) users() *mongo.Collection {
	return s.db.Collection("users")
}

func (s *Service) maps() *mongo.Collection {
	return s.db.Collection("maps")
}

func (s *Service) pins() *mongo.Collection {
	return s.db.Collection("pins")
}

func (s *Service) tokens() *mongo.Collection {
	return s.db.Collection("refresh_tokens")
}

func storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storageTimeout)
}
