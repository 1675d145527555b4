package lifecycle

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DeliveryCredit awards wallet points when an order reaches DELIVERED:
// one point per whole KG across the KG line items. The new balance is a
// plain overwrite of the computed total, the same last-writer-wins write
// the manual adjustment uses.
type DeliveryCredit struct {
	orders     *mongo.Collection
	users      *mongo.Collection
	walletLogs *mongo.Collection
	logger     *zap.Logger
}

func NewDeliveryCredit(orders, users, walletLogs *mongo.Collection, logger *zap.Logger) *DeliveryCredit {
	return &DeliveryCredit{orders: orders, users: users, walletLogs: walletLogs, logger: logger}
}

type creditItem struct {
	Quantity float64 `bson:"quantity"`
	Unit     string  `bson:"unit"`
}

// deliveryPoints sums the KG line items and truncates to whole points.
// Non-KG units earn nothing.
func deliveryPoints(items []creditItem) (points int, kg float64) {
	for _, item := range items {
		if item.Unit == "KG" {
			kg += item.Quantity
		}
	}
	return int(kg), kg
}

func (d *DeliveryCredit) Credit(ctx context.Context, orderID primitive.ObjectID) error {
	var order struct {
		DisplayID string             `bson:"displayId"`
		UserID    primitive.ObjectID `bson:"userId"`
		Items     []creditItem       `bson:"items"`
	}
	if err := d.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	points, kg := deliveryPoints(order.Items)
	if points <= 0 {
		return nil
	}

	var user struct {
		Name         string `bson:"name"`
		WalletPoints int    `bson:"walletPoints"`
	}
	if err := d.users.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	balance := user.WalletPoints + points
	if _, err := d.users.UpdateByID(ctx, order.UserID, bson.M{"$set": bson.M{"walletPoints": balance}}); err != nil {
		return fmt.Errorf("write balance: %w", err)
	}

	ref := order.DisplayID
	if ref == "" {
		ref = orderID.Hex()
	}
	log := bson.M{
		"userId":    order.UserID,
		"userName":  user.Name,
		"action":    "credit",
		"points":    points,
		"reason":    fmt.Sprintf("Order %s delivered (%.1fkg)", ref, kg),
		"actor":     "System",
		"createdAt": time.Now(),
	}
	if _, err := d.walletLogs.InsertOne(ctx, log); err != nil {
		// The balance is already written; a missing log line is not
		// worth failing the credit over.
		d.logger.Warn("wallet log write failed",
			zap.String("order_id", orderID.Hex()),
			zap.Error(err))
	}
	return nil
}
