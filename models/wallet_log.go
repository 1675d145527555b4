package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	WalletActionCredit = "credit"
	WalletActionDebit  = "debit"
)

// WalletLog records one wallet point movement for the activity feed.
type WalletLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName" json:"userName"`
	Action    string             `bson:"action" json:"action"`
	Points    int                `bson:"points" json:"points"`
	Reason    string             `bson:"reason" json:"reason"`
	Actor     string             `bson:"actor" json:"actor"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
