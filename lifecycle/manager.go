package lifecycle

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreditFunc credits wallet points for a delivered order. Wired in only when
// automatic crediting is enabled.
type CreditFunc func(ctx context.Context, orderID primitive.ObjectID) error

// Manager advances orders along the flow. It never updates local state
// optimistically: the dashboard sees the new status only once the change
// stream pushes it back.
type Manager struct {
	orders  *mongo.Collection
	logger  *zap.Logger
	onDeliv CreditFunc
}

func NewManager(orders *mongo.Collection, logger *zap.Logger, onDelivered CreditFunc) *Manager {
	return &Manager{orders: orders, logger: logger, onDeliv: onDelivered}
}

// Advance moves the order one step forward and writes only the status field
// back. It returns the status that was written and whether a write was
// issued; the error is non-nil only when the order could not be loaded at
// all. Terminal and unknown statuses no-op; a failed write is logged and
// dropped, leaving the visible status untouched for a manual retry.
func (m *Manager) Advance(ctx context.Context, orderID primitive.ObjectID) (Status, bool, error) {
	var doc struct {
		Status Status `bson:"status"`
	}
	if err := m.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc); err != nil {
		m.logger.Error("order lookup failed",
			zap.String("order_id", orderID.Hex()),
			zap.Error(err))
		return "", false, err
	}

	current := Normalize(doc.Status)
	next, ok := Next(current)
	if !ok {
		return current, false, nil
	}

	update := bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}}
	if _, err := m.orders.UpdateByID(ctx, orderID, update); err != nil {
		m.logger.Error("status write failed",
			zap.String("order_id", orderID.Hex()),
			zap.String("from", string(current)),
			zap.String("to", string(next)),
			zap.Error(err))
		return current, false, nil
	}

	if next == StatusDelivered && m.onDeliv != nil {
		if err := m.onDeliv(ctx, orderID); err != nil {
			// The status write already landed; the missed credit is
			// logged for manual reconciliation.
			m.logger.Error("delivery wallet credit failed",
				zap.String("order_id", orderID.Hex()),
				zap.Error(err))
		}
	}

	return next, true, nil
}
