// server/internal/idgen/allocator.go
package idgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"warranty-cert-api-server/internal/models"
)

const (
	// Prefix of every warranty certificate number, e.g. "WR167".
	Prefix = "WR"
	// StartValue is the first number issued when no counter document exists yet.
	StartValue = 167
	// maxProbes bounds the collision scan. A run of 10 consecutive occupied
	// slots aborts the whole allocation rather than scanning forever.
	maxProbes = 10

	countersCollection = "counters"
	requestsCollection = "requests"
	counterDocID       = "warranty_cert"
)

// ErrExhausted is returned when maxProbes consecutive candidate IDs were all
// occupied. Callers should treat it as transient and ask the user to retry.
var ErrExhausted = errors.New("unable to find a free certificate number after multiple attempts")

// FormatID renders a numeric sequence value as a certificate number.
func FormatID(n int) string {
	return fmt.Sprintf("%s%03d", Prefix, n)
}

// Allocate probes candidate IDs next, next+1, ... and returns the first one
// whose slot is free, together with the numeric value that was actually
// chosen (probing may have skipped past occupied slots, so the counter must
// be advanced to chosen, not merely next).
//
// exists is expected to read through whatever transactional context the
// caller is running under; Allocate itself is pure and side-effect free.
func Allocate(next int, exists func(id string) (bool, error)) (id string, chosen int, err error) {
	for i := 0; i < maxProbes; i++ {
		candidate := FormatID(next)
		occupied, err := exists(candidate)
		if err != nil {
			return "", 0, err
		}
		if !occupied {
			return candidate, next, nil
		}
		next++
	}
	return "", 0, ErrExhausted
}

// Allocator mints certificate numbers against MongoDB. The counter document
// and the new request document are written in one transaction, so a reader
// never sees the counter advance without the matching request existing.
type Allocator struct {
	DB *mongo.Database
}

// AllocateAndInsert assigns req a fresh certificate number and inserts it,
// atomically with the counter update. All images must already be uploaded and
// all fields validated before this is called; the transaction callback may be
// re-run by the driver on write conflict, so it must stay free of outside
// side effects.
func (a *Allocator) AllocateAndInsert(ctx context.Context, req *models.Request) (string, error) {
	session, err := a.DB.Client().StartSession()
	if err != nil {
		return "", fmt.Errorf("failed to start database session: %w", err)
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		counters := a.DB.Collection(countersCollection)
		requests := a.DB.Collection(requestsCollection)

		// Determine the starting candidate from the counter document.
		next := StartValue
		var counter models.Counter
		err := counters.FindOne(sessCtx, bson.M{"_id": counterDocID}).Decode(&counter)
		if err == nil {
			next = counter.CurrentValue + 1
		} else if err != mongo.ErrNoDocuments {
			return nil, err
		}

		exists := func(id string) (bool, error) {
			err := requests.FindOne(sessCtx, bson.M{"_id": id}).Err()
			if err == mongo.ErrNoDocuments {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return true, nil
		}

		id, chosen, err := Allocate(next, exists)
		if err != nil {
			return nil, err
		}

		req.ID = id
		req.WarrantyCertificateNo = id
		if req.CreatedAt.IsZero() {
			req.CreatedAt = time.Now()
		}
		req.UpdatedAt = time.Now()

		// Counter is created lazily on the first allocation.
		_, err = counters.UpdateOne(sessCtx,
			bson.M{"_id": counterDocID},
			bson.M{"$set": bson.M{"currentValue": chosen}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}

		if _, err := requests.InsertOne(sessCtx, req); err != nil {
			return nil, err
		}

		return id, nil
	}

	result, err := session.WithTransaction(ctx, callback)
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			return "", ErrExhausted
		}
		return "", fmt.Errorf("allocation transaction failed: %w", err)
	}

	return result.(string), nil
}
