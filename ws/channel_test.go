package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/xdranel/Menu-Ordering/entity"
)

// newWSServer runs handler for every upgraded connection and returns the
// ws:// URL to dial.
func newWSServer(t *testing.T, handler func(*websocket.Conn)) string {
	t.Helper()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// readFrames consumes n frames and sends them on the returned channel.
func readFrames(conn *websocket.Conn, out chan<- frame) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			close(out)
			return
		}
		out <- f
	}
}

type notificationLog struct {
	mu   sync.Mutex
	seen []entity.Notification
}

func (l *notificationLog) add(n entity.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = append(l.seen, n)
}

func (l *notificationLog) snapshot() []entity.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entity.Notification(nil), l.seen...)
}

func TestReconnectStopsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	// Nothing listens here; every dial fails.
	ch := NewChannel("ws://127.0.0.1:1/ws")
	ch.Delay = 2 * time.Millisecond

	toasts := &notificationLog{}
	ch.OnNotification(toasts.add)

	assert.Error(t, ch.Connect())

	assert.Eventually(t, ch.Exhausted, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, MaxReconnectAttempts, ch.Attempts())
	assert.False(t, ch.Connected())

	// Exhaustion is permanent for the page lifetime.
	assert.NoError(t, ch.Connect())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, MaxReconnectAttempts, ch.Attempts())

	// Exactly one persistent connection-lost notification.
	assert.Eventually(t, func() bool { return len(toasts.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	n := toasts.snapshot()[0]
	assert.True(t, n.Persistent)
	assert.Equal(t, entity.SeverityDanger, n.Type)
	assert.Contains(t, n.Message, "Connection lost")
}

func TestConnectSubscribesAndResetsAttempts(t *testing.T) {
	t.Parallel()

	frames := make(chan frame, 8)
	url := newWSServer(t, func(conn *websocket.Conn) {
		readFrames(conn, frames)
	})

	ch := NewChannel(url)
	ch.attempts = 3 // as if mid-retry
	assert.NoError(t, ch.Connect())
	defer ch.Disconnect()

	assert.True(t, ch.Connected())
	assert.Equal(t, 0, ch.Attempts(), "success resets the retry counter")

	// One subscribe frame per topic, in order.
	var topics []string
	for i := 0; i < 3; i++ {
		f := <-frames
		assert.Equal(t, "subscribe", f.Topic)
		var topic string
		assert.NoError(t, json.Unmarshal(f.Payload, &topic))
		topics = append(topics, topic)
	}
	assert.Equal(t, []string{TopicOrders, TopicDashboard, TopicNotifications}, topics)

	// Idempotent while connected.
	assert.NoError(t, ch.Connect())
}

func TestDispatchOrderUpdate(t *testing.T) {
	t.Parallel()

	url := newWSServer(t, func(conn *websocket.Conn) {
		// Drain subscribes, then push one order update.
		for i := 0; i < 3; i++ {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
		payload, _ := json.Marshal(entity.Order{
			OrderNumber: "ORD-042", Status: entity.StatusReady,
			PaymentStatus: entity.PaymentPending,
		})
		_ = conn.WriteJSON(frame{Topic: TopicOrders, Payload: payload})
	})

	ch := NewChannel(url)

	got := make(chan *entity.Order, 1)
	ch.OnOrderUpdate(func(o *entity.Order) { got <- o })
	toasts := &notificationLog{}
	ch.OnNotification(toasts.add)

	assert.NoError(t, ch.Connect())
	defer ch.Disconnect()

	select {
	case o := <-got:
		assert.Equal(t, "ORD-042", o.OrderNumber)
		assert.Equal(t, entity.StatusReady, o.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("order update never dispatched")
	}

	// A toast summarizing the update rides along.
	assert.Eventually(t, func() bool {
		for _, n := range toasts.snapshot() {
			if strings.Contains(n.Message, "ORD-042") && strings.Contains(n.Message, "READY") {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

// Two updates for the same order must reach the handler in the order the
// backend sent them; a later status overwriting an earlier one is fine, the
// reverse corrupts the view.
func TestOrderUpdatesArriveInOrder(t *testing.T) {
	t.Parallel()

	const total = 25
	url := newWSServer(t, func(conn *websocket.Conn) {
		for i := 0; i < 3; i++ {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
		for i := 1; i <= total; i++ {
			payload, _ := json.Marshal(entity.Order{
				OrderNumber: fmt.Sprintf("ORD-%03d", i),
				Status:      entity.StatusConfirmed,
			})
			if err := conn.WriteJSON(frame{Topic: TopicOrders, Payload: payload}); err != nil {
				return
			}
		}
	})

	ch := NewChannel(url)

	var mu sync.Mutex
	var seen []string
	ch.OnOrderUpdate(func(o *entity.Order) {
		// Uneven consumer: later updates must queue behind, not overtake.
		time.Sleep(time.Millisecond)
		mu.Lock()
		seen = append(seen, o.OrderNumber)
		mu.Unlock()
	})

	assert.NoError(t, ch.Connect())
	defer ch.Disconnect()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == total
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i, got := range seen {
		assert.Equal(t, fmt.Sprintf("ORD-%03d", i+1), got)
	}
}

func TestDispatchNotification(t *testing.T) {
	t.Parallel()

	url := newWSServer(t, func(conn *websocket.Conn) {
		for i := 0; i < 3; i++ {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
		payload, _ := json.Marshal(entity.Notification{Message: "Kitchen is busy", Type: entity.SeverityWarning})
		_ = conn.WriteJSON(frame{Topic: TopicNotifications, Payload: payload})
	})

	ch := NewChannel(url)
	got := make(chan entity.Notification, 1)
	ch.OnNotification(func(n entity.Notification) { got <- n })

	assert.NoError(t, ch.Connect())
	defer ch.Disconnect()

	select {
	case n := <-got:
		assert.Equal(t, "Kitchen is busy", n.Message)
		assert.Equal(t, entity.SeverityWarning, n.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("notification never dispatched")
	}
}

func TestSendIsNoOpWhileDisconnected(t *testing.T) {
	t.Parallel()

	ch := NewChannel("ws://127.0.0.1:1/ws")
	assert.NoError(t, ch.SendOrderUpdate(&entity.Order{OrderNumber: "ORD-1"}))
	assert.NoError(t, ch.SendNotification("hello", entity.SeverityInfo))
}

func TestSendOrderUpdatePublishes(t *testing.T) {
	t.Parallel()

	frames := make(chan frame, 8)
	url := newWSServer(t, func(conn *websocket.Conn) {
		readFrames(conn, frames)
	})

	ch := NewChannel(url)
	assert.NoError(t, ch.Connect())
	defer ch.Disconnect()

	for i := 0; i < 3; i++ {
		<-frames // subscribes
	}

	assert.NoError(t, ch.SendOrderUpdate(&entity.Order{OrderNumber: "ORD-7", Status: entity.StatusCompleted}))

	select {
	case f := <-frames:
		assert.Equal(t, DestOrderUpdate, f.Topic)
		var o entity.Order
		assert.NoError(t, json.Unmarshal(f.Payload, &o))
		assert.Equal(t, "ORD-7", o.OrderNumber)
	case <-time.After(2 * time.Second):
		t.Fatal("publish never reached the server")
	}
}

func TestConnectSingleFlight(t *testing.T) {
	t.Parallel()

	var upgrades atomic.Int32
	url := newWSServer(t, func(conn *websocket.Conn) {
		upgrades.Add(1)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ch := NewChannel(url)

	// While a dial is in flight, further Connects back off.
	ch.mu.Lock()
	ch.dialing = true
	ch.mu.Unlock()
	assert.NoError(t, ch.Connect())
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 0, upgrades.Load(), "second dial must not start")

	ch.mu.Lock()
	ch.dialing = false
	ch.mu.Unlock()
	assert.NoError(t, ch.Connect())
	defer ch.Disconnect()
	assert.True(t, ch.Connected())
	assert.Eventually(t, func() bool { return upgrades.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDisconnectSuppressesReconnect(t *testing.T) {
	t.Parallel()

	var upgrades atomic.Int32
	url := newWSServer(t, func(conn *websocket.Conn) {
		upgrades.Add(1)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ch := NewChannel(url)
	ch.Delay = 2 * time.Millisecond
	assert.NoError(t, ch.Connect())
	ch.Disconnect()

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, upgrades.Load(), "deliberate disconnect must not retry")
	assert.False(t, ch.Connected())
	assert.False(t, ch.Exhausted())
}
