package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xdranel/Menu-Ordering/entity"
)

// Topics the channel subscribes to and the destinations it publishes on.
const (
	TopicOrders        = "orders"
	TopicDashboard     = "dashboard"
	TopicNotifications = "notifications"

	DestOrderUpdate  = "order-update"
	DestNotification = "notification"
)

// Bounded-retry policy: a fixed delay, a hard attempt cap, no backoff
// growth and no jitter. After the cap the channel stays down for the rest
// of the page lifetime and the user has to reload.
const (
	DefaultReconnectDelay = 3 * time.Second
	MaxReconnectAttempts  = 5
)

// dispatchQueueSize bounds each per-topic delivery queue. A full queue
// backpressures the read loop instead of dropping or reordering messages.
const dispatchQueueSize = 64

// frame is the wire envelope for both directions.
type frame struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Channel is the persistent live-update connection to the backend. It
// subscribes to the order/dashboard/notification topics, dispatches
// incoming messages to the registered handlers, and reconnects with the
// bounded policy above. Each topic has one dispatcher goroutine draining a
// buffered queue, so messages on a topic reach their handler in arrival
// order and a slow handler only delays its own topic.
type Channel struct {
	URL    string
	Delay  time.Duration
	Dialer *websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	dialing   bool
	attempts  int
	exhausted bool
	closed    bool

	onOrder        func(*entity.Order)
	onDashboard    func()
	onNotification func(entity.Notification)

	// One delivery queue per topic, live for the channel lifetime.
	queues map[string]chan func()
}

func NewChannel(url string) *Channel {
	c := &Channel{
		URL:    url,
		Delay:  DefaultReconnectDelay,
		Dialer: websocket.DefaultDialer,
		queues: make(map[string]chan func()),
	}
	for _, t := range []string{TopicOrders, TopicDashboard, TopicNotifications} {
		q := make(chan func(), dispatchQueueSize)
		c.queues[t] = q
		go func(q chan func()) {
			for fn := range q {
				fn()
			}
		}(q)
	}
	return c
}

// enqueue hands fn to topic's dispatcher. Per-topic delivery order matches
// enqueue order; the call blocks while the queue is full.
func (c *Channel) enqueue(topic string, fn func()) {
	if q, ok := c.queues[topic]; ok {
		q <- fn
	}
}

// OnOrderUpdate registers the single order-update handler. The handler
// owns any UI refresh; the channel only parses and forwards.
func (c *Channel) OnOrderUpdate(fn func(*entity.Order)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOrder = fn
}

func (c *Channel) OnDashboardRefresh(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDashboard = fn
}

// OnNotification registers the toast sink. Order updates also surface a
// synthesized toast through the same sink.
func (c *Channel) OnNotification(fn func(entity.Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotification = fn
}

// Connect dials the backend and subscribes to all three topics. It is
// idempotent while connected or while a dial is already in flight, and a
// no-op once the channel has been closed or its retry budget exhausted. A
// failed dial schedules the next attempt.
func (c *Channel) Connect() error {
	c.mu.Lock()
	if c.connected || c.dialing || c.closed || c.exhausted {
		c.mu.Unlock()
		return nil
	}
	c.dialing = true
	dialer := c.Dialer
	c.mu.Unlock()

	conn, res, err := dialer.Dial(c.URL, nil)
	if res != nil && res.Body != nil {
		defer res.Body.Close()
	}
	if err != nil {
		c.mu.Lock()
		c.dialing = false
		c.mu.Unlock()
		log.Printf("ws dial error: %v", err)
		c.scheduleReconnect()
		return err
	}

	c.mu.Lock()
	c.dialing = false
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	c.connected = true
	c.attempts = 0
	for _, t := range []string{TopicOrders, TopicDashboard, TopicNotifications} {
		p, _ := json.Marshal(t)
		if err := conn.WriteJSON(frame{Topic: "subscribe", Payload: p}); err != nil {
			log.Printf("ws subscribe error: %v", err)
		}
	}
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

// Connected reports whether a live connection is up.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Attempts is the current consecutive reconnect count. It only resets on
// a successful connect, never decrements otherwise.
func (c *Channel) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Exhausted reports whether the retry budget is spent and reconnection has
// stopped permanently for this page lifetime.
func (c *Channel) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// Disconnect tears the connection down and disables reconnection. Invoked
// on page unload / process shutdown.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.connected = false
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// SendOrderUpdate publishes an order-changed event so other connected
// clients refresh too. No-op while disconnected.
func (c *Channel) SendOrderUpdate(o *entity.Order) error {
	p, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.send(frame{Topic: DestOrderUpdate, Payload: p})
}

// SendNotification publishes a free-form notification. No-op while
// disconnected.
func (c *Channel) SendNotification(message, severity string) error {
	n := entity.NewNotification(message, severity)
	p, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return c.send(frame{Topic: DestNotification, Payload: p})
}

func (c *Channel) send(f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected || c.conn == nil {
		return nil
	}
	return c.conn.WriteJSON(f)
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("ws invalid frame: %v", err)
			continue
		}
		c.dispatch(f)
	}

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.connected = false
	}
	closed := c.closed
	c.mu.Unlock()

	if !closed {
		c.scheduleReconnect()
	}
}

func (c *Channel) dispatch(f frame) {
	c.mu.Lock()
	onOrder, onDashboard, onNotification := c.onOrder, c.onDashboard, c.onNotification
	c.mu.Unlock()

	switch f.Topic {
	case TopicOrders:
		var o entity.Order
		if err := json.Unmarshal(f.Payload, &o); err != nil {
			log.Printf("ws bad order payload: %v", err)
			return
		}
		if onOrder != nil {
			c.enqueue(TopicOrders, func() { onOrder(&o) })
		}
		if onNotification != nil {
			msg := fmt.Sprintf("Order %s updated: %s", o.OrderNumber, o.Status)
			n := entity.NewNotification(msg, entity.SeverityInfo)
			c.enqueue(TopicNotifications, func() { onNotification(n) })
		}
	case TopicDashboard:
		if onDashboard != nil {
			c.enqueue(TopicDashboard, onDashboard)
		}
	case TopicNotifications:
		var n entity.Notification
		if err := json.Unmarshal(f.Payload, &n); err != nil {
			log.Printf("ws bad notification payload: %v", err)
			return
		}
		if onNotification != nil {
			c.enqueue(TopicNotifications, func() { onNotification(n) })
		}
	}
}

func (c *Channel) scheduleReconnect() {
	c.mu.Lock()
	if c.closed || c.exhausted || c.connected {
		c.mu.Unlock()
		return
	}
	if c.attempts >= MaxReconnectAttempts {
		c.exhausted = true
		fn := c.onNotification
		c.mu.Unlock()
		log.Printf("ws reconnect attempts exhausted")
		if fn != nil {
			n := entity.NewNotification("Connection lost. Please refresh the page.", entity.SeverityDanger)
			n.Persistent = true
			c.enqueue(TopicNotifications, func() { fn(n) })
		}
		return
	}
	c.attempts++
	attempt := c.attempts
	c.mu.Unlock()
	log.Printf("ws reconnecting (%d/%d)", attempt, MaxReconnectAttempts)
	time.AfterFunc(c.Delay, func() { _ = c.Connect() })
}
