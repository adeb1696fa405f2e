package repository

import (
	"context"

	"motohub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository reads and writes product listings.
type ProductRepository struct {
	Collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{Collection: db.Collection(ProductsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, product models.Product) (models.InsertResult, error) {
	product.ID = primitive.NilObjectID
	res, err := r.Collection.InsertOne(ctx, product)
	if err != nil {
		return models.InsertResult{}, wrapErr("insert product", err)
	}
	return models.NewInsertResult(res), nil
}

func (r *ProductRepository) ListBySeller(ctx context.Context, email string) ([]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.Collection, bson.M{"seller_email": email})
	return products, wrapErr("find products by seller", err)
}

// ListAdvertised returns products whose advertise flag is the string "true".
func (r *ProductRepository) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.Collection, bson.M{"advertise": "true"})
	return products, wrapErr("find advertised products", err)
}

// ListByCategory returns the available products of a category.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{"category": category, "status": "Available"}
	products, err := findAll[models.Product](ctx, r.Collection, filter)
	return products, wrapErr("find products by category", err)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.DeleteResult{}, wrapErr("delete product", err)
	}
	return models.NewDeleteResult(res), nil
}

// UpdateListing sets the advertise and/or status fields of a product, creating the
// document when the id is unknown. Other fields are left untouched.
func (r *ProductRepository) UpdateListing(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}

	set := bson.M{}
	if update.Advertise != nil {
		set["advertise"] = *update.Advertise
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}

	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return models.UpdateResult{}, wrapErr("update product", err)
	}
	return models.NewUpdateResult(res), nil
}
