package stats

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"meatadmin/database"
	"meatadmin/lifecycle"
	"meatadmin/models"
)

// Dashboard is the full derived view pushed to dashboard clients.
type Dashboard struct {
	Metrics      TodayMetrics   `json:"metrics"`
	Sales        []RevenuePoint `json:"sales"`
	TopProducts  []ProductSales `json:"topProducts"`
	Wallet       WalletTotals   `json:"wallet"`
	RecentOrders []RecentOrder  `json:"recentOrders"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// RecentOrder is one row of the latest-orders list, with the customer name
// already resolved.
type RecentOrder struct {
	ID       string  `json:"id"`
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Time     string  `json:"time"`
}

// Aggregator keeps the latest snapshot of every collection it watches and
// re-derives the dashboard in full on each push. It owns its subscriptions
// and cancels all of them on Stop.
type Aggregator struct {
	store  *database.Store
	logger *zap.Logger

	mu       sync.RWMutex
	orders   []models.Order
	products []models.Product
	users    []models.User

	subs     []*database.Subscription
	wg       sync.WaitGroup
	onUpdate func(Dashboard)

	recentLimit int
}

func NewAggregator(store *database.Store, logger *zap.Logger, recentLimit int) *Aggregator {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Aggregator{store: store, logger: logger, recentLimit: recentLimit}
}

// OnUpdate registers the callback invoked after every recompute. Set it
// before Start.
func (a *Aggregator) OnUpdate(fn func(Dashboard)) {
	a.onUpdate = fn
}

// Start subscribes to the orders, products and users collections. Each
// subscription feeds its own consume loop until Stop cancels it.
func (a *Aggregator) Start(ctx context.Context) error {
	type watch struct {
		coll  string
		apply func(database.Snapshot)
	}
	watches := []watch{
		{"orders", a.applyOrders},
		{"products", a.applyProducts},
		{"users", a.applyUsers},
	}

	for _, w := range watches {
		sub, err := a.store.Watch(ctx, a.store.DB.Collection(w.coll), a.logger)
		if err != nil {
			a.Stop()
			return err
		}
		a.subs = append(a.subs, sub)

		a.wg.Add(1)
		go func(sub *database.Subscription, apply func(database.Snapshot)) {
			defer a.wg.Done()
			for snap := range sub.C {
				apply(snap)
				a.notify()
			}
		}(sub, w.apply)
	}
	return nil
}

// Stop cancels every subscription and waits for the consume loops to drain.
func (a *Aggregator) Stop() {
	for _, sub := range a.subs {
		sub.Cancel()
	}
	a.subs = nil
	a.wg.Wait()
}

func (a *Aggregator) notify() {
	if a.onUpdate != nil {
		a.onUpdate(a.Dashboard(time.Now(), PeriodWeekly))
	}
}

func (a *Aggregator) applyOrders(snap database.Snapshot) {
	orders := make([]models.Order, 0, len(snap.Docs))
	for _, raw := range snap.Docs {
		var o models.Order
		if err := bson.Unmarshal(raw, &o); err != nil {
			a.logger.Warn("skipping malformed order document", zap.Error(err))
			continue
		}
		orders = append(orders, o)
	}
	a.mu.Lock()
	a.orders = orders
	a.mu.Unlock()
}

func (a *Aggregator) applyProducts(snap database.Snapshot) {
	products := make([]models.Product, 0, len(snap.Docs))
	for _, raw := range snap.Docs {
		var p models.Product
		if err := bson.Unmarshal(raw, &p); err != nil {
			a.logger.Warn("skipping malformed product document", zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	a.mu.Lock()
	a.products = products
	a.mu.Unlock()
}

func (a *Aggregator) applyUsers(snap database.Snapshot) {
	users := make([]models.User, 0, len(snap.Docs))
	for _, raw := range snap.Docs {
		var u models.User
		if err := bson.Unmarshal(raw, &u); err != nil {
			a.logger.Warn("skipping malformed user document", zap.Error(err))
			continue
		}
		users = append(users, u)
	}
	a.mu.Lock()
	a.users = users
	a.mu.Unlock()
}

// Dashboard derives the full view from the latest snapshots. The user join
// for recent orders runs against the users snapshot, which may trail a very
// fresh order; a missing user falls back to "Unknown" without dropping the
// row.
func (a *Aggregator) Dashboard(now time.Time, days int) Dashboard {
	a.mu.RLock()
	orders := a.orders
	users := a.users
	a.mu.RUnlock()

	return Dashboard{
		Metrics:      Today(orders, users, now),
		Sales:        RevenueSeries(orders, days, now),
		TopProducts:  TopProducts(orders, 5),
		Wallet:       Wallet(users, orders),
		RecentOrders: recentOrders(orders, users, a.recentLimit, now.Location()),
		UpdatedAt:    now,
	}
}

// Snapshot returns the latest decoded collections for callers that derive
// their own views (reports, exports).
func (a *Aggregator) Snapshot() (orders []models.Order, products []models.Product, users []models.User) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.orders, a.products, a.users
}

func recentOrders(orders []models.Order, users []models.User, limit int, loc *time.Location) []RecentOrder {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt > sorted[j].CreatedAt })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID.Hex()] = u.Name
	}

	recent := make([]RecentOrder, 0, len(sorted))
	for _, o := range sorted {
		customer, ok := names[o.UserID.Hex()]
		if !ok || customer == "" {
			customer = "Unknown"
		}
		recent = append(recent, RecentOrder{
			ID:       o.Ref(),
			Customer: customer,
			Amount:   o.FinalAmount,
			Status:   lifecycle.Label(o.Status),
			Time:     o.CreatedTime(loc).Format("2006-01-02 03:04 PM"),
		})
	}
	return recent
}
