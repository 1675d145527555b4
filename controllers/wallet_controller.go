package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"meatadmin/database"
	"meatadmin/models"
	"meatadmin/stats"
)

type WalletController struct {
	store      *database.Store
	aggregator *stats.Aggregator
	logger     *zap.Logger
}

func NewWalletController(store *database.Store, aggregator *stats.Aggregator, logger *zap.Logger) *WalletController {
	return &WalletController{store: store, aggregator: aggregator, logger: logger}
}

// Overview serves the wallet page: issued/redeemed totals from the latest
// snapshots plus the most recent activity log entries.
func (wc *WalletController) Overview(c *gin.Context) {
	orders, _, users := wc.aggregator.Snapshot()
	totals := stats.Wallet(users, orders)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(20)
	cursor, err := wc.store.WalletLogs.Find(ctx, bson.M{}, opts)
	var logs []models.WalletLog = []models.WalletLog{}
	if err != nil {
		wc.logger.Warn("wallet log fetch failed", zap.Error(err))
	} else if err := cursor.All(ctx, &logs); err != nil {
		wc.logger.Warn("wallet log decode failed", zap.Error(err))
		logs = []models.WalletLog{}
	}

	summary := stats.SummarizeWallet(totals)

	c.JSON(http.StatusOK, gin.H{
		"issued":         summary.Issued,
		"redeemed":       summary.Redeemed,
		"pending":        summary.Pending,
		"redemptionRate": summary.RedemptionRate,
		"logs":           logs,
		"rules": gin.H{
			"earningRate":  "1 KG = 1 Point",
			"pointValue":   "1 Point = ₹1",
			"creditTiming": "After Delivery",
		},
	})
}
