package ws

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans live-update events out to the browser clients attached to this
// gateway. Pages subscribe to one topic per connection (orders, dashboard
// or notifications); the upstream Channel and local mutations both publish
// through Broadcast.
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool // topic -> set of clients
	broadcast  chan Event
	register   chan subscription
	unregister chan subscription
	done       chan struct{} // closed when Run returns
	mu         sync.Mutex
}

type Event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// subscription = one browser connection on one topic.
type subscription struct {
	conn     *websocket.Conn
	topic    string
	clientID string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		done:       make(chan struct{}),
	}
}

// Run pumps register/unregister/broadcast until ctx is cancelled. On exit
// the done channel unblocks any connection still trying to (un)register.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.topic] == nil {
				h.clients[sub.topic] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.topic][sub.conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.topic][sub.conn]; ok {
				delete(h.clients[sub.topic], sub.conn)
				sub.conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.Topic] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.Topic], conn)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for _, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.clients = make(map[string]map[*websocket.Conn]bool)
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast queues an event for every client on topic. Drops the event
// when the queue is full rather than blocking the caller.
func (h *Hub) Broadcast(topic string, payload any) {
	select {
	case h.broadcast <- Event{Topic: topic, Payload: payload}:
	default:
		log.Printf("ws broadcast queue full, dropping %s event", topic)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func validTopic(t string) bool {
	return t == TopicOrders || t == TopicDashboard || t == TopicNotifications
}

// WS route: /ws/:topic
func (h *Hub) HandleWebSocket(c *gin.Context) {
	topic := c.Param("topic")
	if !validTopic(topic) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "unknown topic"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{conn: conn, topic: topic, clientID: uuid.NewString()}
	select {
	case h.register <- sub:
	case <-h.done:
		// Hub already stopped; refuse the connection instead of wedging.
		conn.Close()
		return
	}

	go h.drain(sub)
}

// drain keeps the read side alive so close frames are seen; browser pages
// only listen on these sockets.
func (h *Hub) drain(sub subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			break
		}
	}
}
