package websocket

import (
	"context"
	"securix/models"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ChatHandler is the slice of the chat container the hub forwards socket
// traffic into. Defined here to keep the package free of a service import
// cycle.
type ChatHandler interface {
	Connect(ctx context.Context)
	Disconnect(ctx context.Context)
	SendMessage(ctx context.Context, req models.SendMessageRequest) (*models.SendMessageResponse, error)
	MarkRead(ctx context.Context)
}

// Hub fans container events out to every connected chat client.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan models.WSMessage

	chat ChatHandler

	mutex sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	stats HubStats
}

type HubStats struct {
	TotalConnections  int64
	ActiveConnections int
	MessagesSent      int64
	StartTime         time.Time

	mutex sync.RWMutex
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.WSMessage, 64),
		ctx:        ctx,
		cancel:     cancel,
		stats:      HubStats{StartTime: time.Now()},
	}
}

// AttachChat wires the chat container in after construction; the hub and the
// chat service reference each other.
func (h *Hub) AttachChat(chat ChatHandler) {
	h.chat = chat
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) Shutdown() {
	h.cancel()

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		client.close()
		delete(h.clients, client)
	}
}

// Broadcast implements the Broadcaster contract used by the containers.
func (h *Hub) Broadcast(event string, data interface{}) {
	message := models.WSMessage{
		Type:      event,
		Data:      data,
		Timestamp: time.Now(),
	}
	select {
	case h.broadcast <- message:
	default:
		logrus.Warn("Websocket broadcast queue full, dropping event ", event)
	}
}

func (h *Hub) addClient(client *Client) {
	h.mutex.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mutex.Unlock()

	h.stats.mutex.Lock()
	h.stats.TotalConnections++
	h.stats.ActiveConnections = count
	h.stats.mutex.Unlock()

	if h.chat != nil {
		h.chat.Connect(context.Background())
	}
	logrus.Infof("Websocket client connected (%d active)", count)
}

func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.close()
	}
	count := len(h.clients)
	h.mutex.Unlock()

	h.stats.mutex.Lock()
	h.stats.ActiveConnections = count
	h.stats.mutex.Unlock()

	if count == 0 && h.chat != nil {
		h.chat.Disconnect(context.Background())
	}
	logrus.Infof("Websocket client disconnected (%d active)", count)
}

func (h *Hub) deliver(message models.WSMessage) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
			h.stats.mutex.Lock()
			h.stats.MessagesSent++
			h.stats.mutex.Unlock()
		default:
			// Slow consumer, drop the connection rather than block the hub.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) Stats() (active int, total int64) {
	h.stats.mutex.RLock()
	defer h.stats.mutex.RUnlock()
	return h.stats.ActiveConnections, h.stats.TotalConnections
}
