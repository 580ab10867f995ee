package services

import (
	"context"
	"securix/models"
	"securix/repositories"
	"securix/utils"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	createOrderDelay  = 800 * time.Millisecond
	updateStatusDelay = 500 * time.Millisecond
)

// legalTransitions encodes the monotonic order lifecycle:
// pending -> confirmed -> in_progress -> completed, with cancelled reachable
// from any non-terminal state.
var legalTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusInProgress, models.OrderStatusCancelled},
	models.OrderStatusInProgress: {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

type OrderService struct {
	orderRepo *repositories.OrderRepository
	validator *utils.ValidationService
	clock     utils.Clock
}

func NewOrderService(orderRepo *repositories.OrderRepository, clock utils.Clock) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		validator: utils.NewValidationService(),
		clock:     clock,
	}
}

// CreateOrder validates the request, assigns identifier and timestamp and
// stores the order as pending.
func (os *OrderService) CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error) {
	if validationErrors := os.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}
	if req.Location != nil {
		if validationErrors := os.validator.ValidateStruct(req.Location); len(validationErrors) > 0 {
			return nil, utils.NewValidationError(validationErrors[0].Message)
		}
	}

	os.clock.Sleep(ctx, createOrderDelay)

	now := os.clock.Now()
	order := &models.Order{
		ID:          utils.GenerateUUID(),
		UserID:      userID,
		ServiceType: req.ServiceType,
		Status:      models.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		Location:    req.Location,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := os.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"orderId":     order.ID,
		"serviceType": order.ServiceType,
		"price":       order.Price,
	}).Info("Order created")

	return order, nil
}

// UpdateOrderStatus applies a status transition. Illegal transitions are
// rejected; reaching completed stamps the completion timestamp.
func (os *OrderService) UpdateOrderStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error) {
	req := models.UpdateOrderStatusRequest{Status: newStatus}
	if validationErrors := os.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	order, err := os.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if models.IsTerminalOrderStatus(order.Status) || !isLegalTransition(order.Status, newStatus) {
		return nil, utils.NewInvalidTransitionError(order.Status, newStatus)
	}

	os.clock.Sleep(ctx, updateStatusDelay)

	order.Status = newStatus
	order.UpdatedAt = os.clock.Now()
	if newStatus == models.OrderStatusCompleted && order.CompletedAt == nil {
		completed := os.clock.Now()
		order.CompletedAt = &completed
	}

	if err := os.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"orderId": order.ID,
		"status":  order.Status,
	}).Info("Order status updated")

	return order, nil
}

func isLegalTransition(from, to string) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (os *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return os.orderRepo.GetByID(ctx, orderID)
}

func (os *OrderService) ListOrders(ctx context.Context) []*models.Order {
	return os.orderRepo.List(ctx)
}

func (os *OrderService) GetOrdersByType(ctx context.Context, serviceType string) ([]*models.Order, error) {
	if !isKnownServiceType(serviceType) {
		return nil, utils.NewValidationError("Invalid service type")
	}
	return os.orderRepo.ListByType(ctx, serviceType), nil
}

func (os *OrderService) GetOrdersByStatus(ctx context.Context, status string) ([]*models.Order, error) {
	req := models.UpdateOrderStatusRequest{Status: status}
	if validationErrors := os.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError("Invalid order status")
	}
	return os.orderRepo.ListByStatus(ctx, status), nil
}

func isKnownServiceType(serviceType string) bool {
	switch serviceType {
	case models.ServiceBodyguard, models.ServiceDriver, models.ServiceConcierge, models.ServiceSOS:
		return true
	}
	return false
}
