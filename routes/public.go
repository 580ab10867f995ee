package routes

import (
	"securix/utils"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

func setupPublicRoutes(router *gin.Engine, ctrls *Controllers) {
	router.GET("/health", healthCheck)

	// Chat widget and websocket are reachable pre-login; the marketing page
	// embeds them.
	router.GET("/ws", ctrls.WebSocket.HandleConnection)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrls.Auth.Register)
		auth.POST("/login", ctrls.Auth.Login)
		auth.POST("/refresh", ctrls.Auth.Refresh)
		auth.POST("/verify/send", ctrls.Auth.SendCode)
		auth.POST("/verify/check", ctrls.Auth.VerifyCode)
	}

	chat := v1.Group("/chat")
	{
		chat.GET("/messages", ctrls.Chat.ListMessages)
		chat.POST("/messages", ctrls.Chat.SendMessage)
		chat.POST("/read", ctrls.Chat.MarkRead)
		chat.GET("/status", ctrls.Chat.Status)
	}

	// Pricing is shown on the landing page.
	v1.GET("/subscription/plans", ctrls.Subscription.ListPlans)
}

func healthCheck(c *gin.Context) {
	response := utils.HealthCheckResponse(
		map[string]string{"api": "healthy"},
		"1.0.0",
		time.Since(startTime).Round(time.Second).String(),
	)
	utils.SuccessResponse(c, "Service healthy", response)
}
