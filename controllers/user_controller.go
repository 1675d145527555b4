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
	"meatadmin/models"
)

type UserController struct {
	store  *database.Store
	logger *zap.Logger
}

func NewUserController(store *database.Store, logger *zap.Logger) *UserController {
	return &UserController{store: store, logger: logger}
}

// List returns customers newest first, optionally matching ?q= against
// name, phone or email.
func (uc *UserController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if q := c.Query("q"); q != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": q, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": q}},
			bson.M{"email": bson.M{"$regex": q, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := uc.store.Users.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var users []models.User = []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPoints := 0
	for _, u := range users {
		totalPoints += u.WalletPoints
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Fetch success",
		"count":       len(users),
		"totalPoints": totalPoints,
		"users":       users,
	})
}

// AdjustWallet applies a signed point delta to a customer balance, clamped
// at zero, and appends a wallet log entry. The write is a plain overwrite of
// the computed total; two concurrent adjustments race last-writer-wins.
func (uc *UserController) AdjustWallet(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var body struct {
		Points int    `json:"points" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.store.Users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	balance := user.AdjustWallet(body.Points)
	if _, err := uc.store.Users.UpdateByID(ctx, objID, bson.M{"$set": bson.M{"walletPoints": balance}}); err != nil {
		uc.logger.Error("wallet write failed",
			zap.String("user_id", objID.Hex()),
			zap.Int("points", body.Points),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust wallet"})
		return
	}

	action := models.WalletActionCredit
	points := body.Points
	if points < 0 {
		action = models.WalletActionDebit
		points = -points
	}
	reason := body.Reason
	if reason == "" {
		reason = "Manual adjustment"
	}
	log := models.WalletLog{
		ID:        primitive.NewObjectID(),
		UserID:    objID,
		UserName:  user.Name,
		Action:    action,
		Points:    points,
		Reason:    reason,
		Actor:     "Admin",
		CreatedAt: time.Now(),
	}
	if _, err := uc.store.WalletLogs.InsertOne(ctx, log); err != nil {
		uc.logger.Warn("wallet log write failed",
			zap.String("user_id", objID.Hex()),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Wallet adjusted",
		"walletPoints": balance,
	})
}
