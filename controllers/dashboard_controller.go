package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meatadmin/stats"
)

type DashboardController struct {
	aggregator *stats.Aggregator
}

func NewDashboardController(aggregator *stats.Aggregator) *DashboardController {
	return &DashboardController{aggregator: aggregator}
}

// Get returns the current derived dashboard. It reads the aggregator's
// latest snapshots, so it is exactly as fresh as the last push from each
// collection.
func (dc *DashboardController) Get(c *gin.Context) {
	days := stats.PeriodDays(c.DefaultQuery("period", "weekly"))
	c.JSON(http.StatusOK, dc.aggregator.Dashboard(time.Now(), days))
}
