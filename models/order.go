package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"meatadmin/lifecycle"
)

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayID   string             `bson:"displayId,omitempty" json:"displayId,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Discount    float64            `bson:"discount" json:"discount"`
	WalletUsed  float64            `bson:"walletUsed" json:"walletUsed"`
	FinalAmount float64            `bson:"finalAmount" json:"finalAmount"`
	Status      lifecycle.Status   `bson:"status,omitempty" json:"status"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}

type OrderItem struct {
	Name        string  `bson:"name" json:"name"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	Price       float64 `bson:"price" json:"price"`
	Unit        string  `bson:"unit,omitempty" json:"unit,omitempty"`
	CuttingType string  `bson:"cuttingType,omitempty" json:"cuttingType,omitempty"`
}

// CreatedTime interprets the stored epoch seconds in the given location.
func (o Order) CreatedTime(loc *time.Location) time.Time {
	return time.Unix(o.CreatedAt, 0).In(loc)
}

// Ref is the identifier shown to the operator: the human readable display id
// when the ordering client assigned one, otherwise the document id.
func (o Order) Ref() string {
	if o.DisplayID != "" {
		return o.DisplayID
	}
	return o.ID.Hex()
}
