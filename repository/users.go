package repository

import (
	"context"
	"errors"

	"motohub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles marketplace accounts keyed by email.
type UserRepository struct {
	Collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Collection: db.Collection(UsersCollection)}
}

// Create inserts the user unless the email is already registered, in which case created is
// false and no error is returned.
func (r *UserRepository) Create(ctx context.Context, user models.User) (res models.InsertResult, created bool, err error) {
	user.ID = primitive.NilObjectID
	inserted, err := r.Collection.InsertOne(ctx, user)
	if err != nil {
		err = wrapErr("insert user", err)
		if errors.Is(err, ErrDuplicate) {
			return models.InsertResult{}, false, nil
		}
		return models.InsertResult{}, false, err
	}
	return models.NewInsertResult(inserted), true, nil
}

// FindByEmail returns ErrNotFound when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, wrapErr("find user by email", err)
	}
	return &user, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	users, err := findAll[models.User](ctx, r.Collection, bson.M{"role": role})
	return users, wrapErr("find users by role", err)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.DeleteResult{}, wrapErr("delete user", err)
	}
	return models.NewDeleteResult(res), nil
}

// SetVerify upserts the verify flag of a user.
func (r *UserRepository) SetVerify(ctx context.Context, id, verify string) (models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"verify": verify}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return models.UpdateResult{}, wrapErr("update user verify", err)
	}
	return models.NewUpdateResult(res), nil
}
