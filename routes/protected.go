package routes

import (
	"securix/middleware"
	"securix/models"
	"securix/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func setupAuthenticatedRoutes(router *gin.Engine, ctrls *Controllers, jwtService *utils.JWTService, redisClient *redis.Client) {
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())

	auth := v1.Group("/auth")
	{
		auth.POST("/logout", ctrls.Auth.Logout)
		auth.GET("/me", ctrls.Auth.Me)
		auth.PUT("/profile", ctrls.Auth.UpdateProfile)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", ctrls.Order.CreateOrder)
		orders.GET("", ctrls.Order.ListOrders)
		orders.GET("/:orderId", ctrls.Order.GetOrder)
		orders.PUT("/:orderId/status", ctrls.Order.UpdateOrderStatus)
	}

	subscription := v1.Group("/subscription")
	{
		subscription.GET("", ctrls.Subscription.GetSubscription)
		subscription.POST("/activate", ctrls.Subscription.ActivatePlan)
		subscription.POST("/cancel", ctrls.Subscription.CancelSubscription)
		subscription.POST("/consume", ctrls.Subscription.ConsumeHours)
	}

	sos := v1.Group("/sos")
	sos.Use(middleware.SOSRateLimit(redisClient))
	{
		sos.POST("/trigger", ctrls.SOS.Trigger)
		sos.POST("/resolve", ctrls.SOS.Resolve)
		sos.POST("/cancel", ctrls.SOS.Cancel)
		sos.GET("/status", ctrls.SOS.Status)
	}

	// Operator console surface.
	operator := v1.Group("/operator")
	operator.Use(authMiddleware.RequireRole(models.RoleOperator, models.RoleAdmin))
	{
		operator.GET("/chat/transcript", ctrls.Chat.ListMessages)
		operator.GET("/orders", ctrls.Order.ListOrders)
		operator.GET("/ws/stats", ctrls.WebSocket.Stats)
	}
}
