package models

import "time"

// Chat message senders
const (
	ChatSenderUser     = "user"
	ChatSenderOperator = "operator"
)

// MaxAttachmentSize is the per-file limit for chat attachments.
const MaxAttachmentSize = 5 * 1024 * 1024 // 5MB

type ChatMessage struct {
	ID          string           `json:"id"`
	Sender      string           `json:"sender"` // user, operator
	Text        string           `json:"text"`
	Timestamp   time.Time        `json:"timestamp"`
	Attachments []ChatAttachment `json:"attachments,omitempty"`
	Read        bool             `json:"read"`
}

type ChatAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
	Size int64  `json:"size" validate:"min=0"`
}

type SendMessageRequest struct {
	Text        string           `json:"text"`
	Attachments []ChatAttachment `json:"attachments,omitempty" validate:"omitempty,dive"`
}

// SendMessageResponse reports what was accepted: the appended user message
// plus the names of any attachments dropped for exceeding the size limit.
type SendMessageResponse struct {
	Message ChatMessage `json:"message"`
	Dropped []string    `json:"droppedAttachments,omitempty"`
}

type ChatStatusResponse struct {
	Connected      bool `json:"connected"`
	OperatorOnline bool `json:"operatorOnline"`
	Typing         bool `json:"typing"`
	Unread         int  `json:"unread"`
}
