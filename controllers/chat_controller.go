package controllers

import (
	"securix/models"
	"securix/services"
	"securix/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// ListMessages returns the transcript in append order.
func (cc *ChatController) ListMessages(c *gin.Context) {
	utils.SuccessResponse(c, "Messages retrieved", cc.chatService.Messages(c.Request.Context()))
}

// SendMessage appends a user message; the scripted operator reply follows
// asynchronously.
func (cc *ChatController) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := cc.chatService.SendMessage(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Message sent", response)
}

// MarkRead flips the read flag on operator messages.
func (cc *ChatController) MarkRead(c *gin.Context) {
	cc.chatService.MarkRead(c.Request.Context())
	utils.SuccessResponse(c, "Messages marked read", nil)
}

// Status reports connection, typing and unread counts.
func (cc *ChatController) Status(c *gin.Context) {
	utils.SuccessResponse(c, "Chat status", cc.chatService.Status(c.Request.Context()))
}
