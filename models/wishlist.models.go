package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem links a customer to a product they saved.
type WishlistItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string             `bson:"product_id" json:"product_id" validate:"required"`
	CustomerEmail string             `bson:"customer_email" json:"customer_email" validate:"required,email"`
	Fields        Fields             `bson:",inline" json:"-"`
}

type wishlistItemJSON WishlistItem

func (wi WishlistItem) MarshalJSON() ([]byte, error) {
	return marshalWithFields(wishlistItemJSON(wi), wi.Fields)
}

func (wi *WishlistItem) UnmarshalJSON(b []byte) error {
	var v wishlistItemJSON
	fields, err := unmarshalWithFields(b, &v)
	if err != nil {
		return err
	}
	*wi = WishlistItem(v)
	wi.Fields = fields
	return nil
}
