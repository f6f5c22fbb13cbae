package services

import (
	"context"
	"time"

	"github.com/xdranel/Menu-Ordering/client"
	"github.com/xdranel/Menu-Ordering/entity"
)

// DefaultPollInterval is the fixed payment-status poll period.
const DefaultPollInterval = 10 * time.Second

// PaymentWatcher re-checks an order's payment status on a fixed interval
// until the status reaches a terminal state or the context is cancelled.
// The notify func is the same refresh path pushed order updates feed, so
// poll and push converge on one reactive cell.
type PaymentWatcher struct {
	API      *client.Client
	Interval time.Duration
	Notify   func(*entity.Order)
}

func NewPaymentWatcher(api *client.Client, notify func(*entity.Order)) *PaymentWatcher {
	return &PaymentWatcher{API: api, Interval: DefaultPollInterval, Notify: notify}
}

// Watch blocks until payment for orderNumber settles (PAID or FAILED) or
// ctx is cancelled. The ticker is always released; an abandoned watcher
// would otherwise poll for the rest of the process lifetime.
func (w *PaymentWatcher) Watch(ctx context.Context, orderNumber string) (*entity.Order, error) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			o, err := w.API.Order(ctx, orderNumber)
			if err != nil {
				// Transient REST failures are not retried by policy, but
				// the next tick re-checks anyway; surface nothing yet.
				continue
			}
			if w.Notify != nil {
				w.Notify(o)
			}
			if o.PaymentStatus.Terminal() {
				return o, nil
			}
		}
	}
}
