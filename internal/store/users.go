package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/vibrant-blog/internal/models"
)

// UserStore handles user documents.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(UsersCollection)}
}

// FindByUsernameOrEmail returns the first user whose username equals
// username or whose email equals email.
func (s *UserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	var u models.User
	if err := s.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, wrapErr("find user", err)
	}
	return &u, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, wrapErr("find user", err)
	}
	return &u, nil
}

// Create inserts u and sets its ID. A taken username or email yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return wrapErr("insert user", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdatePortfolio overwrites the portfolio of the named user and returns
// the updated document.
func (s *UserStore) UpdatePortfolio(ctx context.Context, username, portfolio string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"portfolio": portfolio}},
		opts,
	).Decode(&u)
	if err != nil {
		return nil, wrapErr("update portfolio", err)
	}
	return &u, nil
}
