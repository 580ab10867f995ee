package models

import "time"

// Websocket event types pushed to connected chat clients.
const (
	WSEventChatMessage = "chat.message"
	WSEventChatTyping  = "chat.typing"
	WSEventSOSStatus   = "sos.status"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type WSResponse struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// WSIncoming is what a chat client may send over the socket.
type WSIncoming struct {
	Type        string           `json:"type"` // chat.send, chat.read
	RequestID   string           `json:"requestId,omitempty"`
	Text        string           `json:"text,omitempty"`
	Attachments []ChatAttachment `json:"attachments,omitempty"`
}
