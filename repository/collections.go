package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the marketplace database.
const (
	ProductsCollection    = "products"
	UsersCollection       = "users"
	OrdersCollection      = "orders"
	WishlistCollection    = "wishlist"
	PaymentsCollection    = "payments"
	IdempotencyCollection = "idempotency_keys"
)

// EnsureIndexes creates the unique indexes the write paths rely on to reject duplicates,
// plus the TTL index that expires idempotency records.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	pairKey := bson.D{{Key: "product_id", Value: 1}, {Key: "customer_email", Value: 1}}

	if _, err := db.Collection(OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    pairKey,
		Options: options.Index().SetUnique(true).SetName("unique_order_per_customer"),
	}); err != nil {
		return wrapErr("create orders index", err)
	}

	if _, err := db.Collection(WishlistCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    pairKey,
		Options: options.Index().SetUnique(true).SetName("unique_wishlist_per_customer"),
	}); err != nil {
		return wrapErr("create wishlist index", err)
	}

	// verify upserts can create documents without an email; only string emails are unique.
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("unique_email").
			SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
	}); err != nil {
		return wrapErr("create users index", err)
	}

	if _, err := db.Collection(IdempotencyCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_key"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	}); err != nil {
		return wrapErr("create idempotency indexes", err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
