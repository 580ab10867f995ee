package controllers

import (
	"securix/models"
	"securix/services"
	"securix/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *services.OrderService
	authService  *services.AuthService
}

func NewOrderController(orderService *services.OrderService, authService *services.AuthService) *OrderController {
	return &OrderController{
		orderService: orderService,
		authService:  authService,
	}
}

// CreateOrder places a new service order for the current user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user := oc.authService.CurrentUser()
	if user == nil {
		utils.UnauthorizedResponse(c, "Not authenticated")
		return
	}

	order, err := oc.orderService.CreateOrder(c.Request.Context(), user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Order created", order)
}

// ListOrders returns the order history, optionally filtered by type or
// status via query parameters.
func (oc *OrderController) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	if serviceType := c.Query("type"); serviceType != "" {
		orders, err := oc.orderService.GetOrdersByType(ctx, serviceType)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, "Orders retrieved", orders)
		return
	}

	if status := c.Query("status"); status != "" {
		orders, err := oc.orderService.GetOrdersByStatus(ctx, status)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, "Orders retrieved", orders)
		return
	}

	utils.SuccessResponse(c, "Orders retrieved", oc.orderService.ListOrders(ctx))
}

// GetOrder returns a single order by id.
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.orderService.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Order retrieved", order)
}

// UpdateOrderStatus applies a status transition to an order.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	order, err := oc.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order status updated", order)
}
