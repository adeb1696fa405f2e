package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order represents a customer's checkout of a single product.
// There is at most one order per (product_id, customer_email).
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string             `bson:"product_id" json:"product_id" validate:"required"`
	CustomerEmail string             `bson:"customer_email" json:"customer_email" validate:"required,email"`
	Price         Price              `bson:"price" json:"price" validate:"required,gt=0"`
	Paid          bool               `bson:"paid,omitempty" json:"paid,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Fields        Fields             `bson:",inline" json:"-"`
}

type orderJSON Order

func (o Order) MarshalJSON() ([]byte, error) {
	return marshalWithFields(orderJSON(o), o.Fields)
}

func (o *Order) UnmarshalJSON(b []byte) error {
	var v orderJSON
	fields, err := unmarshalWithFields(b, &v)
	if err != nil {
		return err
	}
	*o = Order(v)
	o.Fields = fields
	return nil
}
