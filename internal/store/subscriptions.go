package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayush/vibrant-blog/internal/models"
)

// SubscriptionStore handles newsletter subscriptions.
type SubscriptionStore struct {
	col *mongo.Collection
}

func NewSubscriptionStore(db *mongo.Database) *SubscriptionStore {
	return &SubscriptionStore{col: db.Collection(SubscriptionsCollection)}
}

func (s *SubscriptionStore) FindByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		return nil, wrapErr("find subscription", err)
	}
	return &sub, nil
}

// Create inserts sub with EmailSent=false. SubscribedAt defaults to now.
func (s *SubscriptionStore) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now().UTC()
	}
	sub.EmailSent = false
	res, err := s.col.InsertOne(ctx, sub)
	if err != nil {
		return wrapErr("insert subscription", err)
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// MarkEmailSent flags the welcome mail for id as delivered.
func (s *SubscriptionStore) MarkEmailSent(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"emailSent": true}})
	if err != nil {
		return wrapErr("mark email sent", err)
	}
	if res.MatchedCount == 0 {
		return wrapErr("mark email sent", mongo.ErrNoDocuments)
	}
	return nil
}
