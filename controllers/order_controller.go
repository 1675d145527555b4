package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"meatadmin/database"
	"meatadmin/lifecycle"
	"meatadmin/models"
)

type OrderController struct {
	store   *database.Store
	manager *lifecycle.Manager
	logger  *zap.Logger
}

func NewOrderController(store *database.Store, manager *lifecycle.Manager, logger *zap.Logger) *OrderController {
	return &OrderController{store: store, manager: manager, logger: logger}
}

type orderRow struct {
	models.Order
	Customer      string `json:"customer"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	StatusLabel   string `json:"statusLabel"`
}

// List returns orders newest first, optionally filtered by status
// (?status=) and a case-insensitive search over display id (?q=). Customer
// names are joined per row; a failed lookup defaults that row to "Unknown"
// and never aborts the batch.
func (oc *OrderController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" && status != "all" {
		if lifecycle.Status(status) == lifecycle.StatusReceived {
			// Older documents carry the lowercase legacy alias.
			filter["status"] = bson.M{"$in": bson.A{status, "pending", nil}}
		} else {
			filter["status"] = status
		}
	}
	if q := c.Query("q"); q != "" {
		filter["displayId"] = bson.M{"$regex": q, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := oc.store.Orders.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, oc.joinCustomer(ctx, o))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "count": len(rows), "orders": rows})
}

func (oc *OrderController) Get(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.store.Orders.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	row := oc.joinCustomer(ctx, order)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Fetch success",
		"order":    row,
		"timeline": timeline(order.Status),
	})
}

// Advance moves the order one step along the flow. The response carries the
// requested status, but the table only reflects it once the change stream
// pushes the write back; a failed write leaves the visible status untouched.
func (oc *OrderController) Advance(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, advanced, err := oc.manager.Advance(ctx, objID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !advanced {
		c.JSON(http.StatusOK, gin.H{
			"advanced": false,
			"status":   status,
			"message":  "Order is not advanceable",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"advanced": true,
		"status":   status,
	})
}

func (oc *OrderController) joinCustomer(ctx context.Context, o models.Order) orderRow {
	row := orderRow{
		Order:       o,
		Customer:    "Unknown",
		StatusLabel: lifecycle.Label(o.Status),
	}

	var user models.User
	if err := oc.store.Users.FindOne(ctx, bson.M{"_id": o.UserID}).Decode(&user); err != nil {
		oc.logger.Debug("customer lookup failed",
			zap.String("order_id", o.ID.Hex()),
			zap.Error(err))
		return row
	}
	if user.Name != "" {
		row.Customer = user.Name
	}
	row.CustomerPhone = user.Phone
	return row
}

type timelineStep struct {
	Status    lifecycle.Status `json:"status"`
	Label     string           `json:"label"`
	Completed bool             `json:"completed"`
	Current   bool             `json:"current"`
}

// timeline renders the forward flow against the order's current position.
// Cancelled orders sit outside the flow and get a single banner step.
func timeline(status lifecycle.Status) []timelineStep {
	status = lifecycle.Normalize(status)
	if status == lifecycle.StatusCancelled {
		return []timelineStep{{
			Status:    lifecycle.StatusCancelled,
			Label:     lifecycle.Label(status),
			Completed: true,
			Current:   true,
		}}
	}

	current := -1
	for i, s := range lifecycle.Flow {
		if s == status {
			current = i
		}
	}

	steps := make([]timelineStep, 0, len(lifecycle.Flow))
	for i, s := range lifecycle.Flow {
		steps = append(steps, timelineStep{
			Status:    s,
			Label:     lifecycle.Label(s),
			Completed: current >= 0 && i <= current,
			Current:   i == current,
		})
	}
	return steps
}
