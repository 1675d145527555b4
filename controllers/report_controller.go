package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meatadmin/export"
	"meatadmin/stats"
)

type ReportController struct {
	aggregator *stats.Aggregator
	logger     *zap.Logger
}

func NewReportController(aggregator *stats.Aggregator, logger *zap.Logger) *ReportController {
	return &ReportController{aggregator: aggregator, logger: logger}
}

// Get serves the Reports screen: per-day breakdown (newest first), summary
// totals, and the charts' series for the selected period.
func (rc *ReportController) Get(c *gin.Context) {
	days := stats.PeriodDays(c.DefaultQuery("period", "weekly"))
	now := time.Now()

	orders, _, users := rc.aggregator.Snapshot()
	rows := stats.ReportRows(orders, users, days, now)

	c.JSON(http.StatusOK, gin.H{
		"rows":        rows,
		"summary":     stats.ReportSummary(rows),
		"sales":       stats.RevenueSeries(orders, days, now),
		"topProducts": stats.TopProducts(orders, 5),
		"wallet":      stats.Wallet(users, orders),
	})
}

// Export downloads the breakdown as CSV or an Excel workbook.
func (rc *ReportController) Export(c *gin.Context) {
	days := stats.PeriodDays(c.DefaultQuery("period", "weekly"))
	now := time.Now()

	orders, _, users := rc.aggregator.Snapshot()
	rows := stats.ReportRows(orders, users, days, now)

	filename := fmt.Sprintf("report-%s", now.Format("2006-01-02"))
	switch c.DefaultQuery("format", "csv") {
	case "excel":
		f, err := export.ReportExcel(rows)
		if err != nil {
			rc.logger.Error("excel export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Excel file"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			rc.logger.Error("excel write failed", zap.Error(err))
		}
	case "csv":
		data, err := export.ReportCSV(rows)
		if err != nil {
			rc.logger.Error("csv export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
	}
}
