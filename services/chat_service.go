package services

import (
	"context"
	"math/rand"
	"securix/models"
	"securix/repositories"
	"securix/utils"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	chatGreetingDelay  = 500 * time.Millisecond
	chatReplyMinDelay  = 1000 * time.Millisecond
	chatReplyMaxJitter = 1500 * time.Millisecond
)

const chatGreeting = "Здравствуйте! Я оператор Securix. Чем могу помочь?"

// Scripted operator replies, picked at random.
var operatorReplies = []string{
	"Спасибо за сообщение! Обрабатываю ваш запрос...",
	"Спасибо за ваше сообщение. Оператор ответит в ближайшее время.",
	"Принял, уточняю детали по вашему запросу.",
}

// ChatService drives the operator chat widget: an append-only transcript
// with a scripted auto-reply standing in for a live operator.
type ChatService struct {
	chatRepo    *repositories.ChatRepository
	broadcaster Broadcaster
	clock       utils.Clock

	mu             sync.Mutex
	connected      bool
	typing         bool
	operatorOnline bool
	rng            *rand.Rand
}

func NewChatService(chatRepo *repositories.ChatRepository, broadcaster Broadcaster, clock utils.Clock) *ChatService {
	return &ChatService{
		chatRepo:       chatRepo,
		broadcaster:    broadcaster,
		clock:          clock,
		operatorOnline: true,
		rng:            rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

// Connect marks the widget connected and seeds the greeting after a short
// delay if the transcript is still empty.
func (cs *ChatService) Connect(ctx context.Context) {
	cs.mu.Lock()
	if cs.connected {
		cs.mu.Unlock()
		return
	}
	cs.connected = true
	cs.mu.Unlock()

	cs.clock.AfterFunc(chatGreetingDelay, func() {
		if cs.chatRepo.Count(context.Background()) > 0 {
			return
		}
		cs.appendOperatorMessage(chatGreeting)
	})
}

// Disconnect marks the widget disconnected; the transcript is retained.
func (cs *ChatService) Disconnect(_ context.Context) {
	cs.mu.Lock()
	cs.connected = false
	cs.mu.Unlock()
}

// SendMessage appends the user message immediately and schedules a scripted
// operator reply after a randomized delay. Oversized attachments are dropped
// from the batch, reported back rather than failing the send.
func (cs *ChatService) SendMessage(ctx context.Context, req models.SendMessageRequest) (*models.SendMessageResponse, error) {
	text := strings.TrimSpace(req.Text)

	accepted := make([]models.ChatAttachment, 0, len(req.Attachments))
	var dropped []string
	for _, att := range req.Attachments {
		if att.Size > models.MaxAttachmentSize {
			dropped = append(dropped, att.Name)
			continue
		}
		if att.ID == "" {
			att.ID = utils.GenerateUUID()
		}
		accepted = append(accepted, att)
	}

	if text == "" && len(accepted) == 0 {
		if len(dropped) > 0 {
			// The whole batch was oversized, nothing survived to send.
			return nil, utils.NewAttachmentTooLargeError()
		}
		return nil, utils.NewEmptyMessageError()
	}

	message := models.ChatMessage{
		ID:          utils.GenerateUUID(),
		Sender:      models.ChatSenderUser,
		Text:        text,
		Timestamp:   cs.clock.Now(),
		Attachments: accepted,
		Read:        true,
	}
	cs.chatRepo.Append(ctx, &message)
	cs.broadcast(models.WSEventChatMessage, message)

	cs.setTyping(true)

	cs.mu.Lock()
	delay := chatReplyMinDelay + time.Duration(cs.rng.Int63n(int64(chatReplyMaxJitter)))
	reply := operatorReplies[cs.rng.Intn(len(operatorReplies))]
	cs.mu.Unlock()

	cs.clock.AfterFunc(delay, func() {
		cs.setTyping(false)
		cs.appendOperatorMessage(reply)
	})

	if len(dropped) > 0 {
		logrus.Warnf("Dropped %d oversized chat attachment(s)", len(dropped))
	}

	return &models.SendMessageResponse{Message: message, Dropped: dropped}, nil
}

// Messages returns the transcript in append order.
func (cs *ChatService) Messages(ctx context.Context) []*models.ChatMessage {
	return cs.chatRepo.List(ctx)
}

// MarkRead flips the read flag on operator messages.
func (cs *ChatService) MarkRead(ctx context.Context) {
	cs.chatRepo.MarkRead(ctx)
}

// Status reports connection, typing and unread state.
func (cs *ChatService) Status(ctx context.Context) *models.ChatStatusResponse {
	cs.mu.Lock()
	connected, typing, online := cs.connected, cs.typing, cs.operatorOnline
	cs.mu.Unlock()

	return &models.ChatStatusResponse{
		Connected:      connected,
		OperatorOnline: online,
		Typing:         typing,
		Unread:         cs.chatRepo.CountUnread(ctx),
	}
}

func (cs *ChatService) appendOperatorMessage(text string) {
	message := models.ChatMessage{
		ID:        utils.GenerateUUID(),
		Sender:    models.ChatSenderOperator,
		Text:      text,
		Timestamp: cs.clock.Now(),
	}
	cs.chatRepo.Append(context.Background(), &message)
	cs.broadcast(models.WSEventChatMessage, message)
}

func (cs *ChatService) setTyping(typing bool) {
	cs.mu.Lock()
	cs.typing = typing
	cs.mu.Unlock()
	cs.broadcast(models.WSEventChatTyping, map[string]bool{"typing": typing})
}

func (cs *ChatService) broadcast(event string, data interface{}) {
	if cs.broadcaster == nil {
		return
	}
	cs.broadcaster.Broadcast(event, data)
}
