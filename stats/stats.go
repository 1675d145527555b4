package stats

import (
	"math"
	"sort"
	"time"

	"meatadmin/lifecycle"
	"meatadmin/models"
)

// TodayMetrics is the headline card row on the dashboard.
type TodayMetrics struct {
	OrdersToday   int     `json:"ordersToday"`
	RevenueToday  float64 `json:"revenueToday"`
	PendingOrders int     `json:"pendingOrders"`
	TotalUsers    int     `json:"totalUsers"`
}

// Today counts and sums orders created within the current local calendar
// day. Pending orders are counted across all time.
func Today(orders []models.Order, users []models.User, now time.Time) TodayMetrics {
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	m := TodayMetrics{TotalUsers: len(users)}
	for _, o := range orders {
		created := o.CreatedTime(now.Location())
		if !created.Before(dayStart) && created.Before(dayEnd) {
			m.OrdersToday++
			m.RevenueToday += o.FinalAmount
		}
		if lifecycle.IsPending(o.Status) {
			m.PendingOrders++
		}
	}
	return m
}

// RevenuePoint is one bucket of the sales series.
type RevenuePoint struct {
	Name  string  `json:"name"`
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// RevenueSeries buckets order revenue by local calendar day over the
// trailing window. Every day in the window gets a bucket before any order is
// folded in, so the result always has exactly days entries, oldest to
// newest, with zero-order days at 0.
func RevenueSeries(orders []models.Order, days int, now time.Time) []RevenuePoint {
	if days <= 0 {
		return []RevenuePoint{}
	}

	series := make([]RevenuePoint, 0, days)
	index := make(map[string]int, days)
	for offset := days - 1; offset >= 0; offset-- {
		day := startOfDay(now).AddDate(0, 0, -offset)
		key := day.Format("2006-01-02")
		index[key] = len(series)
		series = append(series, RevenuePoint{Name: dayLabel(day, days), Date: key})
	}

	for _, o := range orders {
		key := o.CreatedTime(now.Location()).Format("2006-01-02")
		if i, ok := index[key]; ok {
			series[i].Sales += o.FinalAmount
		}
	}
	return series
}

// ProductSales is one bar of the product revenue ranking.
type ProductSales struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

// TopProducts accumulates price*quantity per item name across all given
// orders and returns at most limit entries, sorted by revenue descending.
// Ties may land in either order.
func TopProducts(orders []models.Order, limit int) []ProductSales {
	byName := make(map[string]float64)
	for _, o := range orders {
		for _, item := range o.Items {
			byName[item.Name] += item.Price * item.Quantity
		}
	}

	ranked := make([]ProductSales, 0, len(byName))
	for name, sales := range byName {
		ranked = append(ranked, ProductSales{Name: name, Sales: sales})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Sales > ranked[j].Sales })

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// WalletTotals is the issued-versus-redeemed points overview. Both sums run
// over the entire collections, not the reporting window.
type WalletTotals struct {
	Issued   int `json:"issued"`
	Redeemed int `json:"redeemed"`
}

func Wallet(users []models.User, orders []models.Order) WalletTotals {
	var t WalletTotals
	for _, u := range users {
		t.Issued += u.WalletPoints
	}
	var redeemed float64
	for _, o := range orders {
		redeemed += o.WalletUsed
	}
	t.Redeemed = int(math.Round(redeemed))
	return t
}

// WalletSummary is the Wallet page card math. Totals hold outstanding
// balances and redeemed points; lifetime issued is their sum, pending is
// whatever has been issued but not yet spent (the outstanding balances).
type WalletSummary struct {
	Issued         int     `json:"issued"`
	Redeemed       int     `json:"redeemed"`
	Pending        int     `json:"pending"`
	RedemptionRate float64 `json:"redemptionRate"`
}

// SummarizeWallet derives the card figures from the raw totals. The
// redemption rate is redeemed over lifetime issued, rounded to one decimal.
func SummarizeWallet(t WalletTotals) WalletSummary {
	s := WalletSummary{
		Issued:   t.Issued + t.Redeemed,
		Redeemed: t.Redeemed,
		Pending:  t.Issued,
	}
	if s.Issued > 0 {
		s.RedemptionRate = math.Round(float64(s.Redeemed)/float64(s.Issued)*1000) / 10
	}
	return s
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayLabel(day time.Time, days int) string {
	if days <= 7 {
		return day.Weekday().String()[:3]
	}
	return day.Format("Jan 2")
}
