package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xdranel/Menu-Ordering/entity"
)

func TestDashboardStats(t *testing.T) {
	t.Parallel()

	orders := []entity.Order{
		{OrderNumber: "ORD-1", Status: entity.StatusPending, PaymentStatus: entity.PaymentPending, Total: 10000, CreatedAt: day(5, 9)},
		{OrderNumber: "ORD-2", Status: entity.StatusCompleted, PaymentStatus: entity.PaymentPaid, Total: 45000, CreatedAt: day(5, 11)},
		{OrderNumber: "ORD-3", Status: entity.StatusReady, PaymentStatus: entity.PaymentPaid, Total: 20000, CreatedAt: day(5, 12)},
	}
	menus := []entity.Menu{
		{ID: 1, Name: "Nasi Goreng", Available: true},
		{ID: 2, Name: "Sate Ayam", Available: true},
		{ID: 3, Name: "Es Teh", Available: false},
	}

	api := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/today":
			writeEnvelope(w, orders)
		case "/menus":
			writeEnvelope(w, menus)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	stats, err := NewDashboardService(api).Stats(context.Background())
	assert.NoError(t, err)

	assert.EqualValues(t, 3, stats.TodayOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 2, stats.AvailableMenus)
	// Revenue counts paid orders only, tax included: (45000+20000)*1.10.
	assert.InDelta(t, 71500.0, stats.TodayRevenue, 0.001)

	// Recent orders come newest first.
	assert.Equal(t, "ORD-3", stats.RecentOrders[0].OrderNumber)
	assert.Len(t, stats.RecentOrders, 3)
}
