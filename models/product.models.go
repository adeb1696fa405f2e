package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a listing submitted by a seller. Listing attributes beyond the ones the API
// filters on (name, price, images, ...) live in Fields.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SellerEmail string             `bson:"seller_email,omitempty" json:"seller_email,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"` // e.g., "Available", "Sold"
	Advertise   string             `bson:"advertise,omitempty" json:"advertise,omitempty"` // "true" or "false"
	Fields      Fields             `bson:",inline" json:"-"`
}

type productJSON Product

func (p Product) MarshalJSON() ([]byte, error) {
	return marshalWithFields(productJSON(p), p.Fields)
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var v productJSON
	fields, err := unmarshalWithFields(b, &v)
	if err != nil {
		return err
	}
	*p = Product(v)
	p.Fields = fields
	return nil
}

// ProductUpdate is the body of PUT /product/edit/{id}. Only the fields present are set.
type ProductUpdate struct {
	Advertise *string `json:"advertise" validate:"required_without=Status"`
	Status    *string `json:"status" validate:"required_without=Advertise"`
}
