package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xdranel/Menu-Ordering/entity"
)

func TestWatchStopsOnceSettled(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32
	api := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/ORD-9", r.URL.Path)
		status := entity.PaymentPending
		if polls.Add(1) >= 3 {
			status = entity.PaymentPaid
		}
		writeEnvelope(w, entity.Order{OrderNumber: "ORD-9", Status: entity.StatusReady, PaymentStatus: status})
	})

	var notified atomic.Int32
	w := NewPaymentWatcher(api, func(o *entity.Order) { notified.Add(1) })
	w.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	order, err := w.Watch(ctx, "ORD-9")
	assert.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, order.PaymentStatus)
	assert.EqualValues(t, 3, polls.Load(), "polling must stop at the terminal state")
	assert.EqualValues(t, 3, notified.Load())

	// No stray ticks after return.
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 3, polls.Load())
}

func TestWatchCancelledWithView(t *testing.T) {
	t.Parallel()

	api := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, entity.Order{OrderNumber: "ORD-9", PaymentStatus: entity.PaymentPending})
	})

	w := NewPaymentWatcher(api, nil)
	w.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	_, err := w.Watch(ctx, "ORD-9")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRefreshCellDebounces(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	cell := NewRefreshCell(20*time.Millisecond, func() { runs.Add(1) })

	// A pushed event and a poll result land together; one refresh runs.
	cell.Trigger()
	cell.Trigger()
	cell.Trigger()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.EqualValues(t, 1, runs.Load())

	// A later trigger runs again.
	cell.Trigger()
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)

	// Stop cancels anything pending.
	cell.Trigger()
	cell.Stop()
	time.Sleep(40 * time.Millisecond)
	assert.EqualValues(t, 2, runs.Load())
}
