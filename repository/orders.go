package repository

import (
	"context"

	"motohub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository handles checkout orders. Duplicate (product_id, customer_email) pairs are
// rejected by the unique index created in EnsureIndexes.
type OrderRepository struct {
	Collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{Collection: db.Collection(OrdersCollection)}
}

// Create inserts the order or returns ErrDuplicate when the customer already ordered the product.
func (r *OrderRepository) Create(ctx context.Context, order models.Order) (models.InsertResult, error) {
	order.ID = primitive.NilObjectID
	res, err := r.Collection.InsertOne(ctx, order)
	if err != nil {
		return models.InsertResult{}, wrapErr("insert order", err)
	}
	return models.NewInsertResult(res), nil
}

// Find returns the orders of a customer or the order with the given id. Empty arguments are
// ignored; with both empty nothing matches. A non-empty owner restricts the result to that
// customer's orders.
func (r *OrderRepository) Find(ctx context.Context, owner, email, id string) ([]models.Order, error) {
	var or bson.A
	if email != "" {
		or = append(or, bson.M{"customer_email": email})
	}
	if id != "" {
		oid, err := objectID(id)
		if err != nil {
			return nil, err
		}
		or = append(or, bson.M{"_id": oid})
	}
	if len(or) == 0 {
		return []models.Order{}, nil
	}

	filter := bson.M{"$or": or}
	if owner != "" {
		filter["customer_email"] = owner
	}
	orders, err := findAll[models.Order](ctx, r.Collection, filter)
	return orders, wrapErr("find orders", err)
}

// MarkPaid sets paid=true on an existing order.
func (r *OrderRepository) MarkPaid(ctx context.Context, id string) (models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"paid": true}})
	if err != nil {
		return models.UpdateResult{}, wrapErr("mark order paid", err)
	}
	return models.NewUpdateResult(res), nil
}

// ApplyPayment marks the order paid with the transaction id and returns the updated order.
func (r *OrderRepository) ApplyPayment(ctx context.Context, id, transactionID string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&order); err != nil {
		return nil, wrapErr("apply payment to order", err)
	}
	return &order, nil
}
