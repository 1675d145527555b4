package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"meatadmin/models"
)

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 1, PeriodDays("daily"))
	assert.Equal(t, 7, PeriodDays("weekly"))
	assert.Equal(t, 30, PeriodDays("monthly"))
	assert.Equal(t, 7, PeriodDays("bogus"))
	assert.Equal(t, 7, PeriodDays(""))
}

func TestReportRows(t *testing.T) {
	orders := []models.Order{
		orderAt(now.Add(-time.Hour), 100),
		orderAt(now.Add(-2*time.Hour), 200),
		orderAt(now.AddDate(0, 0, -1), 60),
	}
	users := []models.User{
		{Name: "A", CreatedAt: now.Add(-time.Hour)},
		{Name: "B", CreatedAt: now.AddDate(0, 0, -3)},
		{Name: "C", CreatedAt: now.AddDate(0, 0, -30)},
	}

	rows := ReportRows(orders, users, 7, now)
	assert.Len(t, rows, 7)

	// Newest day first.
	assert.Equal(t, "2024-01-10", rows[0].Date)
	assert.Equal(t, 2, rows[0].Orders)
	assert.Equal(t, 300.0, rows[0].Revenue)
	assert.Equal(t, 150.0, rows[0].AvgOrderValue)
	assert.Equal(t, 1, rows[0].NewUsers)

	assert.Equal(t, "2024-01-09", rows[1].Date)
	assert.Equal(t, 1, rows[1].Orders)
	assert.Equal(t, 60.0, rows[1].Revenue)

	assert.Equal(t, 1, rows[3].NewUsers)

	// Zero-order days report an average of 0, never NaN.
	assert.Equal(t, 0, rows[6].Orders)
	assert.Equal(t, 0.0, rows[6].AvgOrderValue)
}

func TestReportSummary(t *testing.T) {
	rows := []ReportRow{
		{Orders: 2, Revenue: 300, NewUsers: 1},
		{Orders: 1, Revenue: 60, NewUsers: 0},
		{Orders: 0, Revenue: 0, NewUsers: 2},
	}
	total := ReportSummary(rows)
	assert.Equal(t, 3, total.Orders)
	assert.Equal(t, 360.0, total.Revenue)
	assert.Equal(t, 120.0, total.AvgOrderValue)
	assert.Equal(t, 3, total.NewUsers)
}

func TestReportSummaryEmpty(t *testing.T) {
	total := ReportSummary(nil)
	assert.Equal(t, 0, total.Orders)
	assert.Equal(t, 0.0, total.AvgOrderValue)
}
