package services

import (
	"context"
	"securix/models"
	"securix/repositories"
	"securix/storage"
	"securix/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (*OrderService, *utils.FakeClock) {
	t.Helper()
	clock := utils.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	repo := repositories.NewOrderRepository(storage.NewMemoryMirror())
	return NewOrderService(repo, clock), clock
}

func validOrderRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		ServiceType: models.ServiceBodyguard,
		Duration:    3,
		Price:       45000,
		Location:    &models.OrderLocation{Address: "Алматы, проспект Абая, 150"},
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Nil(t, order.CompletedAt)

	// Identifiers are unique across orders.
	second, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)
	assert.NotEqual(t, order.ID, second.ID)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CreateOrderRequest)
	}{
		{"unknown service type", func(r *models.CreateOrderRequest) { r.ServiceType = "butler" }},
		{"empty service type", func(r *models.CreateOrderRequest) { r.ServiceType = "" }},
		{"negative price", func(r *models.CreateOrderRequest) { r.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest()
			tt.mutate(&req)

			_, err := svc.CreateOrder(ctx, "user-1", req)
			require.Error(t, err)

			serviceErr, ok := utils.GetServiceError(err)
			require.True(t, ok)
			assert.Equal(t, utils.ErrCodeValidation, serviceErr.Code)
		})
	}
}

func TestUpdateOrderStatusCompletion(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)

	// Non-completed transitions leave the completion timestamp nil.
	updated, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	updated, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	updated, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.UpdateOrderStatus(context.Background(), "missing", models.OrderStatusConfirmed)
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", serviceErr.Code)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		path  []string
		legal bool
	}{
		{"full lifecycle", []string{"confirmed", "in_progress", "completed"}, true},
		{"cancel from pending", []string{"cancelled"}, true},
		{"cancel from confirmed", []string{"confirmed", "cancelled"}, true},
		{"cancel from in_progress", []string{"confirmed", "in_progress", "cancelled"}, true},
		{"skip to completed", []string{"completed"}, false},
		{"skip to in_progress", []string{"in_progress"}, false},
		{"backwards", []string{"confirmed", "pending"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
			require.NoError(t, err)

			var lastErr error
			for _, status := range tt.path {
				_, lastErr = svc.UpdateOrderStatus(ctx, order.ID, status)
				if lastErr != nil {
					break
				}
			}

			if tt.legal {
				assert.NoError(t, lastErr)
			} else {
				require.Error(t, lastErr)
				serviceErr, ok := utils.GetServiceError(lastErr)
				require.True(t, ok)
				assert.Equal(t, "INVALID_TRANSITION", serviceErr.Code)
			}
		})
	}
}

func TestTerminalOrdersRejectFurtherTransitions(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusConfirmed)
	assert.Error(t, err)
}

func TestGetOrdersFilters(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	driverReq := validOrderRequest()
	driverReq.ServiceType = models.ServiceDriver

	_, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, "user-1", driverReq)
	require.NoError(t, err)

	drivers, err := svc.GetOrdersByType(ctx, models.ServiceDriver)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, models.ServiceDriver, drivers[0].ServiceType)

	// Filtering is pure: repeated calls return equal collections.
	again, err := svc.GetOrdersByType(ctx, models.ServiceDriver)
	require.NoError(t, err)
	assert.Equal(t, drivers, again)

	pending, err := svc.GetOrdersByStatus(ctx, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.GetOrdersByType(ctx, "butler")
	assert.Error(t, err)
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, "user-1", validOrderRequest())
	require.NoError(t, err)

	orders := svc.ListOrders(ctx)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}
