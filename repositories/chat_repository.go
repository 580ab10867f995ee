package repositories

import (
	"context"
	"securix/models"
	"sync"
)

// ChatRepository is the append-only message log for the operator chat.
// Messages survive disconnects but are not mirrored: the log is a per-session
// transcript, not durable state.
type ChatRepository struct {
	mu       sync.RWMutex
	messages []*models.ChatMessage
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

func (cr *ChatRepository) Append(_ context.Context, msg *models.ChatMessage) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	clone := *msg
	cr.messages = append(cr.messages, &clone)
}

// List returns the transcript in append order.
func (cr *ChatRepository) List(_ context.Context) []*models.ChatMessage {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	result := make([]*models.ChatMessage, 0, len(cr.messages))
	for _, m := range cr.messages {
		clone := *m
		result = append(result, &clone)
	}
	return result
}

func (cr *ChatRepository) Count(_ context.Context) int {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return len(cr.messages)
}

// CountUnread counts operator messages not yet marked read.
func (cr *ChatRepository) CountUnread(_ context.Context) int {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	unread := 0
	for _, m := range cr.messages {
		if m.Sender == models.ChatSenderOperator && !m.Read {
			unread++
		}
	}
	return unread
}

// MarkRead flips the read flag on every operator message. The read flag is
// the only mutation the log permits.
func (cr *ChatRepository) MarkRead(_ context.Context) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	for _, m := range cr.messages {
		if m.Sender == models.ChatSenderOperator {
			m.Read = true
		}
	}
}
