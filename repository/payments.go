package repository

import (
	"context"

	"motohub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository struct {
	Collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{Collection: db.Collection(PaymentsCollection)}
}

func (r *PaymentRepository) Create(ctx context.Context, payment models.Payment) (models.InsertResult, error) {
	payment.ID = primitive.NilObjectID
	res, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return models.InsertResult{}, wrapErr("insert payment", err)
	}
	return models.NewInsertResult(res), nil
}
