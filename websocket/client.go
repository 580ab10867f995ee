package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"securix/models"
	"securix/utils"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Buffer size for client send channel
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens in the CORS middleware.
		return true
	},
}

// Client wraps one websocket connection. All outbound frames, hub broadcasts
// and request replies alike, go through the send channel: writePump is the
// connection's only writer.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan interface{}
	userID string
}

// ServeWS upgrades the request and registers the client with the hub.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan interface{}, sendBufferSize),
		userID: userID,
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

func (c *Client) close() {
	c.conn.Close()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.Warnf("Websocket read error: %v", err)
			}
			return
		}

		var incoming models.WSIncoming
		if err := json.Unmarshal(data, &incoming); err != nil {
			c.reply(utils.WSErrorResponse("", "malformed message"))
			continue
		}
		c.handleIncoming(incoming)
	}
}

func (c *Client) handleIncoming(incoming models.WSIncoming) {
	if c.hub.chat == nil {
		c.reply(utils.WSErrorResponse(incoming.RequestID, "chat unavailable"))
		return
	}

	ctx := context.Background()
	switch incoming.Type {
	case "chat.send":
		response, err := c.hub.chat.SendMessage(ctx, models.SendMessageRequest{
			Text:        incoming.Text,
			Attachments: incoming.Attachments,
		})
		if err != nil {
			c.reply(utils.WSErrorResponse(incoming.RequestID, err.Error()))
			return
		}
		c.reply(utils.WSSuccessResponse(incoming.RequestID, response))

	case "chat.read":
		c.hub.chat.MarkRead(ctx)
		c.reply(utils.WSSuccessResponse(incoming.RequestID, nil))

	default:
		c.reply(utils.WSErrorResponse(incoming.RequestID, "unknown message type"))
	}
}

func (c *Client) reply(response models.WSResponse) {
	select {
	case c.send <- response:
	default:
		logrus.Warn("Websocket send queue full, dropping reply")
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
