package repository

import (
	"context"

	"motohub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IdempotencyRepository stores Idempotency-Key reservations and their captured responses.
type IdempotencyRepository struct {
	Collection *mongo.Collection
}

func NewIdempotencyRepository(db *mongo.Database) *IdempotencyRepository {
	return &IdempotencyRepository{Collection: db.Collection(IdempotencyCollection)}
}

// Reserve claims the key. ErrDuplicate means another request already holds it.
func (r *IdempotencyRepository) Reserve(ctx context.Context, rec models.IdempotencyRecord) error {
	_, err := r.Collection.InsertOne(ctx, rec)
	return wrapErr("reserve idempotency key", err)
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	var rec models.IdempotencyRecord
	if err := r.Collection.FindOne(ctx, bson.M{"key": key}).Decode(&rec); err != nil {
		return nil, wrapErr("find idempotency key", err)
	}
	return &rec, nil
}

// Release forgets the key so the request can be retried.
func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"key": key})
	return wrapErr("release idempotency key", err)
}

func (r *IdempotencyRepository) SaveResponse(ctx context.Context, key string, resp models.StoredResponse) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"key": key}, bson.M{"$set": bson.M{"response": resp}})
	return wrapErr("save idempotent response", err)
}
