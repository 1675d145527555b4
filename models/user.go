package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	Email        string             `bson:"email" json:"email"`
	WalletPoints int                `bson:"walletPoints" json:"walletPoints"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// AdjustWallet applies a signed point delta and returns the new balance,
// clamped at zero no matter how negative the delta is.
func (u *User) AdjustWallet(delta int) int {
	balance := u.WalletPoints + delta
	if balance < 0 {
		balance = 0
	}
	u.WalletPoints = balance
	return balance
}
