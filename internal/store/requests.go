// server/internal/store/requests.go
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"warranty-cert-api-server/internal/idgen"
	"warranty-cert-api-server/internal/models"
)

const requestsCollection = "requests"

// ErrNotFound distinguishes a missing request from a connectivity failure.
var ErrNotFound = errors.New("request not found")

// RequestStore is the data-access layer for verification requests.
type RequestStore struct {
	DB        *mongo.Database
	Allocator *idgen.Allocator
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{
		DB:        db,
		Allocator: &idgen.Allocator{DB: db},
	}
}

// GetByID performs an exact, case-sensitive key lookup.
func (s *RequestStore) GetByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	err := s.DB.Collection(requestsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve request: %w", err)
	}
	return &req, nil
}

// Create mints a fresh certificate number for req and inserts it atomically
// with the counter update. Returns the assigned identifier.
func (s *RequestStore) Create(ctx context.Context, req *models.Request) (string, error) {
	return s.Allocator.AllocateAndInsert(ctx, req)
}

// Update overwrites an existing request in place. The identifier is reused as
// is; edits never go through the allocator.
func (s *RequestStore) Update(ctx context.Context, req *models.Request) error {
	result, err := s.DB.Collection(requestsCollection).ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
