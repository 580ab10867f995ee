package controllers

import (
	"securix/utils"
	"securix/websocket"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WebSocketController struct {
	hub        *websocket.Hub
	jwtService *utils.JWTService
}

func NewWebSocketController(hub *websocket.Hub, jwtService *utils.JWTService) *WebSocketController {
	return &WebSocketController{
		hub:        hub,
		jwtService: jwtService,
	}
}

// HandleConnection upgrades /ws requests. A token query parameter is
// accepted but optional: the chat widget is available pre-login.
func (wc *WebSocketController) HandleConnection(c *gin.Context) {
	userID := ""
	if token := c.Query("token"); token != "" {
		claims, err := wc.jwtService.ValidateToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid authentication token")
			return
		}
		userID = claims.UserID
	}

	if err := websocket.ServeWS(wc.hub, c.Writer, c.Request, userID); err != nil {
		logrus.Errorf("Websocket upgrade failed: %v", err)
	}
}

// Stats reports hub connection counters.
func (wc *WebSocketController) Stats(c *gin.Context) {
	active, total := wc.hub.Stats()
	utils.SuccessResponse(c, "Websocket stats", gin.H{
		"activeConnections": active,
		"totalConnections":  total,
	})
}
