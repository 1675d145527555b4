package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"meatadmin/lifecycle"
	"meatadmin/models"
)

func newObjectID(t *testing.T, hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}

var now = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

func orderAt(t time.Time, finalAmount float64) models.Order {
	return models.Order{FinalAmount: finalAmount, CreatedAt: t.Unix(), Status: lifecycle.StatusDelivered}
}

func TestToday(t *testing.T) {
	orders := []models.Order{
		orderAt(now.Add(-1*time.Hour), 100),
		orderAt(now.Add(-2*time.Hour), 200),
		orderAt(now.AddDate(0, 0, -1), 50),
	}
	users := []models.User{{Name: "A"}, {Name: "B"}}

	m := Today(orders, users, now)
	assert.Equal(t, 2, m.OrdersToday)
	assert.Equal(t, 300.0, m.RevenueToday)
	assert.Equal(t, 0, m.PendingOrders)
	assert.Equal(t, 2, m.TotalUsers)
}

func TestTodayCountsPendingAcrossAllTime(t *testing.T) {
	old := orderAt(now.AddDate(0, 0, -20), 75)
	old.Status = lifecycle.StatusReceived
	legacy := orderAt(now.AddDate(0, 0, -3), 40)
	legacy.Status = "pending"
	missing := orderAt(now.AddDate(0, 0, -5), 10)
	missing.Status = ""

	m := Today([]models.Order{old, legacy, missing}, nil, now)
	assert.Equal(t, 0, m.OrdersToday)
	assert.Equal(t, 3, m.PendingOrders)
}

func TestTodayBoundaries(t *testing.T) {
	dayStart := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	justBefore := dayStart.Add(-time.Second)

	m := Today([]models.Order{orderAt(dayStart, 10), orderAt(justBefore, 20)}, nil, now)
	assert.Equal(t, 1, m.OrdersToday)
	assert.Equal(t, 10.0, m.RevenueToday)
}

func TestRevenueSeriesGapFree(t *testing.T) {
	orders := []models.Order{
		orderAt(now.Add(-time.Hour), 100),
		orderAt(now.Add(-3*time.Hour), 200),
		orderAt(now.AddDate(0, 0, -1), 50),
	}

	series := RevenueSeries(orders, 7, now)
	assert.Len(t, series, 7)

	// Oldest to newest, with zero buckets for empty days.
	assert.Equal(t, "2024-01-04", series[0].Date)
	assert.Equal(t, "2024-01-10", series[6].Date)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.0, series[i].Sales, "day %s", series[i].Date)
	}
	assert.Equal(t, 50.0, series[5].Sales)
	assert.Equal(t, 300.0, series[6].Sales)
}

func TestRevenueSeriesWeekdayLabels(t *testing.T) {
	series := RevenueSeries(nil, 7, now)
	assert.Equal(t, "Thu", series[0].Name) // 2024-01-04
	assert.Equal(t, "Wed", series[6].Name) // 2024-01-10
}

func TestRevenueSeriesMonthlyLabels(t *testing.T) {
	series := RevenueSeries(nil, 30, now)
	assert.Len(t, series, 30)
	assert.Equal(t, "Dec 12", series[0].Name)
	assert.Equal(t, "Jan 10", series[29].Name)
}

func TestRevenueSeriesIgnoresOrdersOutsideWindow(t *testing.T) {
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -10), 999),
		orderAt(now, 10),
	}
	series := RevenueSeries(orders, 7, now)

	var total float64
	for _, p := range series {
		total += p.Sales
	}
	assert.Equal(t, 10.0, total)
}

func TestRevenueSeriesSingleDay(t *testing.T) {
	series := RevenueSeries([]models.Order{orderAt(now, 42)}, 1, now)
	assert.Len(t, series, 1)
	assert.Equal(t, 42.0, series[0].Sales)
}

func TestTopProducts(t *testing.T) {
	orders := []models.Order{
		{Items: []models.OrderItem{
			{Name: "Whole Chicken", Quantity: 2, Price: 180},
			{Name: "Chicken Breast", Quantity: 1, Price: 320},
		}},
		{Items: []models.OrderItem{
			{Name: "Whole Chicken", Quantity: 1, Price: 180},
			{Name: "Chicken Wings", Quantity: 2, Price: 280},
			{Name: "Drumstick", Quantity: 1, Price: 220},
			{Name: "Country Chicken", Quantity: 1, Price: 450},
			{Name: "Liver", Quantity: 1, Price: 120},
			{Name: "Keema", Quantity: 1, Price: 90},
		}},
	}

	top := TopProducts(orders, 5)
	assert.Len(t, top, 5)

	// Sorted descending by accumulated revenue.
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Sales, top[i].Sales)
	}
	assert.Equal(t, "Chicken Wings", top[0].Name)
	assert.Equal(t, 560.0, top[0].Sales)
	assert.Equal(t, "Whole Chicken", top[1].Name)
	assert.Equal(t, 540.0, top[1].Sales)
}

func TestTopProductsFewerThanLimit(t *testing.T) {
	orders := []models.Order{
		{Items: []models.OrderItem{{Name: "Liver", Quantity: 1, Price: 120}}},
	}
	assert.Len(t, TopProducts(orders, 5), 1)
	assert.Empty(t, TopProducts(nil, 5))
}

func TestWalletTotals(t *testing.T) {
	users := []models.User{
		{WalletPoints: 125},
		{WalletPoints: 80},
		{WalletPoints: 0},
	}
	orders := []models.Order{
		{WalletUsed: 50},
		{WalletUsed: 25},
		{WalletUsed: 0},
	}

	totals := Wallet(users, orders)
	assert.Equal(t, 205, totals.Issued)
	assert.Equal(t, 75, totals.Redeemed)
}

func TestSummarizeWallet(t *testing.T) {
	s := SummarizeWallet(WalletTotals{Issued: 4130, Redeemed: 8320})
	assert.Equal(t, 12450, s.Issued)
	assert.Equal(t, 8320, s.Redeemed)
	assert.Equal(t, 4130, s.Pending)
	assert.Equal(t, 66.8, s.RedemptionRate)
}

func TestSummarizeWalletEmpty(t *testing.T) {
	s := SummarizeWallet(WalletTotals{})
	assert.Equal(t, 0, s.Issued)
	assert.Equal(t, 0, s.Pending)
	assert.Equal(t, 0.0, s.RedemptionRate)
}

func TestRecentOrdersJoin(t *testing.T) {
	u := models.User{ID: newObjectID(t, "65a000000000000000000001"), Name: "Rahul Kumar"}
	known := models.Order{
		UserID:      u.ID,
		FinalAmount: 886,
		Status:      lifecycle.StatusDelivered,
		CreatedAt:   now.Unix(),
	}
	unknown := models.Order{
		UserID:      newObjectID(t, "65a000000000000000000002"),
		FinalAmount: 780,
		Status:      "pending",
		CreatedAt:   now.Add(-time.Hour).Unix(),
	}

	recent := recentOrders([]models.Order{unknown, known}, []models.User{u}, 5, time.UTC)
	assert.Len(t, recent, 2)
	assert.Equal(t, "Rahul Kumar", recent[0].Customer)
	assert.Equal(t, "Delivered", recent[0].Status)
	assert.Equal(t, "Unknown", recent[1].Customer)
	assert.Equal(t, "Received", recent[1].Status)
}

func TestRecentOrdersLimit(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 8; i++ {
		orders = append(orders, orderAt(now.Add(-time.Duration(i)*time.Hour), float64(i)))
	}
	recent := recentOrders(orders, nil, 5, time.UTC)
	assert.Len(t, recent, 5)
	// Newest first.
	assert.Equal(t, 0.0, recent[0].Amount)
	assert.Equal(t, 4.0, recent[4].Amount)
}
