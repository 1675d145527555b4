package stats

import (
	"math"
	"time"

	"meatadmin/models"
)

// Reporting periods offered by the Reports screen, expressed as trailing
// day windows.
const (
	PeriodDaily   = 1
	PeriodWeekly  = 7
	PeriodMonthly = 30
)

// PeriodDays maps the period selector value onto its window size, falling
// back to weekly for anything unrecognized.
func PeriodDays(period string) int {
	switch period {
	case "daily":
		return PeriodDaily
	case "monthly":
		return PeriodMonthly
	default:
		return PeriodWeekly
	}
}

// ReportRow is one day of the detailed breakdown table.
type ReportRow struct {
	Date          string  `json:"date"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	NewUsers      int     `json:"newUsers"`
}

// ReportRows builds the per-day breakdown over the trailing window, newest
// day first. Average order value is 0 for zero-order days, never NaN.
func ReportRows(orders []models.Order, users []models.User, days int, now time.Time) []ReportRow {
	if days <= 0 {
		return []ReportRow{}
	}

	rows := make([]ReportRow, 0, days)
	index := make(map[string]int, days)
	for offset := 0; offset < days; offset++ {
		day := startOfDay(now).AddDate(0, 0, -offset)
		key := day.Format("2006-01-02")
		index[key] = len(rows)
		rows = append(rows, ReportRow{Date: key})
	}

	for _, o := range orders {
		key := o.CreatedTime(now.Location()).Format("2006-01-02")
		if i, ok := index[key]; ok {
			rows[i].Orders++
			rows[i].Revenue += o.FinalAmount
		}
	}
	for _, u := range users {
		key := u.CreatedAt.In(now.Location()).Format("2006-01-02")
		if i, ok := index[key]; ok {
			rows[i].NewUsers++
		}
	}

	for i := range rows {
		rows[i].AvgOrderValue = avgOrderValue(rows[i].Revenue, rows[i].Orders)
	}
	return rows
}

// ReportSummary totals the breakdown into the header cards.
func ReportSummary(rows []ReportRow) ReportRow {
	var total ReportRow
	total.Date = "Total"
	for _, r := range rows {
		total.Orders += r.Orders
		total.Revenue += r.Revenue
		total.NewUsers += r.NewUsers
	}
	total.AvgOrderValue = avgOrderValue(total.Revenue, total.Orders)
	return total
}

func avgOrderValue(revenue float64, orders int) float64 {
	if orders == 0 {
		return 0
	}
	return math.Round(revenue / float64(orders))
}
