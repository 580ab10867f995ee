package controllers

import (
	"securix/models"
	"securix/services"
	"securix/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionController(subscriptionService *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// ListPlans returns the paywall catalog.
func (sc *SubscriptionController) ListPlans(c *gin.Context) {
	utils.SuccessResponse(c, "Plans retrieved", sc.subscriptionService.ListPlans())
}

// GetSubscription returns the current subscription record.
func (sc *SubscriptionController) GetSubscription(c *gin.Context) {
	subscription, err := sc.subscriptionService.GetSubscription(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Subscription retrieved", subscription)
}

// ActivatePlan activates a plan, replacing any prior subscription.
func (sc *SubscriptionController) ActivatePlan(c *gin.Context) {
	var req models.ActivatePlanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	subscription, err := sc.subscriptionService.ActivatePlan(c.Request.Context(), req.Plan)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Subscription activated", subscription)
}

// CancelSubscription soft-deactivates the current subscription.
func (sc *SubscriptionController) CancelSubscription(c *gin.Context) {
	subscription, err := sc.subscriptionService.CancelSubscription(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Subscription cancelled", subscription)
}

// ConsumeHours decrements remaining hours, clamping at zero.
func (sc *SubscriptionController) ConsumeHours(c *gin.Context) {
	var req models.ConsumeHoursRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	subscription, err := sc.subscriptionService.ConsumeHours(c.Request.Context(), req.Hours)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Hours consumed", subscription)
}
