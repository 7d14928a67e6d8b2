package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription is a newsletter sign-up.
type Subscription struct {
	ID           primitive.ObjectID `json:"_id"          bson:"_id,omitempty"`
	Email        string             `json:"email"        bson:"email"`
	SubscribedAt time.Time          `json:"subscribedAt" bson:"subscribedAt"`
	EmailSent    bool               `json:"emailSent"    bson:"emailSent"`
}

// SubscribeRequest is the JSON body for POST /subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}
