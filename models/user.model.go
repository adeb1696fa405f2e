package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Roles a user can hold.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// VerifyFlag is the seller verification marker. It is stored as a string and only the exact
// value "true" means verified. Documents carrying a non-string value decode as unset.
type VerifyFlag string

func (v *VerifyFlag) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t != bsontype.String {
		*v = ""
		return nil
	}
	s, _, ok := bsoncore.ReadString(data)
	if !ok {
		return fmt.Errorf("verify: malformed string value")
	}
	*v = VerifyFlag(s)
	return nil
}

// Verified reports whether the flag is exactly "true".
func (v VerifyFlag) Verified() bool {
	return v == "true"
}

// User represents a marketplace account, created on first login.
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Email  string             `bson:"email" json:"email" validate:"required,email"`
	Role   string             `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=buyer seller admin"`
	Verify VerifyFlag         `bson:"verify,omitempty" json:"verify,omitempty"`
	Fields Fields             `bson:",inline" json:"-"`
}

type userJSON User

func (u User) MarshalJSON() ([]byte, error) {
	return marshalWithFields(userJSON(u), u.Fields)
}

func (u *User) UnmarshalJSON(b []byte) error {
	var v userJSON
	fields, err := unmarshalWithFields(b, &v)
	if err != nil {
		return err
	}
	*u = User(v)
	u.Fields = fields
	return nil
}

// VerifyStatus is the body of GET /users/verify/{email}.
type VerifyStatus struct {
	IsVerify bool `json:"isVerify"`
}

// AccessToken is the body of GET /jwt. Token is empty for unknown emails.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
}
