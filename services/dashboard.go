package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/entity"
)

// recentOrderLimit caps the dashboard's recent-orders table.
const recentOrderLimit = 10

type DashboardService struct {
	API *client.Client
}

func NewDashboardService(api *client.Client) *DashboardService {
	return &DashboardService{API: api}
}

// Stats assembles the cashier dashboard summary. Today's orders and the
// menu list are independent fetches, so they run in parallel.
func (s *DashboardService) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	var (
		orders []entity.Order
		menus  []entity.Menu
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.API.TodayOrders(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		menus, err = s.API.Menus(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &entity.DashboardStats{TodayOrders: int64(len(orders))}
	for _, o := range orders {
		if o.PaymentStatus == entity.PaymentPaid {
			stats.TodayRevenue += o.FinalAmount()
		}
		if o.Status == entity.StatusPending {
			stats.PendingOrders++
		}
	}
	for _, m := range menus {
		if m.Available {
			stats.AvailableMenus++
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > recentOrderLimit {
		orders = orders[:recentOrderLimit]
	}
	stats.RecentOrders = orders

	return stats, nil
}
