package repository

import (
	"context"

	"motohub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WishlistRepository struct {
	Collection *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{Collection: db.Collection(WishlistCollection)}
}

// Create inserts the entry or returns ErrDuplicate when the product is already saved.
func (r *WishlistRepository) Create(ctx context.Context, item models.WishlistItem) (models.InsertResult, error) {
	item.ID = primitive.NilObjectID
	res, err := r.Collection.InsertOne(ctx, item)
	if err != nil {
		return models.InsertResult{}, wrapErr("insert wishlist item", err)
	}
	return models.NewInsertResult(res), nil
}

func (r *WishlistRepository) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.DeleteResult{}, wrapErr("delete wishlist item", err)
	}
	return models.NewDeleteResult(res), nil
}

// Find returns the entries of a customer or the entries for a product, limited to owner's
// entries when owner is set.
func (r *WishlistRepository) Find(ctx context.Context, owner, email, productID string) ([]models.WishlistItem, error) {
	var or bson.A
	if email != "" {
		or = append(or, bson.M{"customer_email": email})
	}
	if productID != "" {
		or = append(or, bson.M{"product_id": productID})
	}
	if len(or) == 0 {
		return []models.WishlistItem{}, nil
	}

	filter := bson.M{"$or": or}
	if owner != "" {
		filter["customer_email"] = owner
	}
	items, err := findAll[models.WishlistItem](ctx, r.Collection, filter)
	return items, wrapErr("find wishlist", err)
}
