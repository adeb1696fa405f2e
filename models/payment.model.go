package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a successful charge for an order.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID       string             `bson:"order_id" json:"order_id" validate:"required,mongodb"`
	TransactionID string             `bson:"transactionId" json:"transactionId" validate:"required"`
	Price         Price              `bson:"price,omitempty" json:"price,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Fields        Fields             `bson:",inline" json:"-"`
}

type paymentJSON Payment

func (p Payment) MarshalJSON() ([]byte, error) {
	return marshalWithFields(paymentJSON(p), p.Fields)
}

func (p *Payment) UnmarshalJSON(b []byte) error {
	var v paymentJSON
	fields, err := unmarshalWithFields(b, &v)
	if err != nil {
		return err
	}
	*p = Payment(v)
	p.Fields = fields
	return nil
}

// PaymentIntentRequest is the body of POST /create-payment-intent.
type PaymentIntentRequest struct {
	Price Price `json:"price" validate:"gt=0"`
}

// PaymentIntentResponse carries the secret the client uses to confirm the charge.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
