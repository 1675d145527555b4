package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthAccount holds the sign-in credentials for a dashboard operator.
type AuthAccount struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
