package repositories

import (
	"context"
	"securix/models"
	"securix/storage"
	"securix/utils"
	"sync"

	"github.com/sirupsen/logrus"
)

// OrderRepository keeps the order history in memory, newest first, and
// mirrors the full collection after every mutation. Orders are historical
// records and are never removed.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*models.Order
	byID   map[string]*models.Order
	mirror storage.Mirror
}

func NewOrderRepository(mirror storage.Mirror) *OrderRepository {
	or := &OrderRepository{
		byID:   make(map[string]*models.Order),
		mirror: mirror,
	}
	or.restore()
	return or
}

func (or *OrderRepository) restore() {
	var stored []*models.Order
	found, err := or.mirror.Get(context.Background(), storage.KeyOrders, &stored)
	if err != nil {
		logrus.Warnf("Failed to restore orders from mirror: %v", err)
		return
	}
	if !found {
		return
	}
	or.orders = stored
	for _, o := range stored {
		or.byID[o.ID] = o
	}
}

func (or *OrderRepository) persist(ctx context.Context) {
	if err := or.mirror.Put(ctx, storage.KeyOrders, or.orders); err != nil {
		logrus.Warnf("Failed to mirror orders: %v", err)
	}
}

// Create prepends the order so the newest entry is listed first.
func (or *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	or.mu.Lock()
	defer or.mu.Unlock()

	if _, exists := or.byID[order.ID]; exists {
		return utils.NewConflictError("Order already exists")
	}

	clone := *order
	or.orders = append([]*models.Order{&clone}, or.orders...)
	or.byID[clone.ID] = &clone
	or.persist(ctx)
	return nil
}

func (or *OrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	or.mu.RLock()
	defer or.mu.RUnlock()

	order, ok := or.byID[id]
	if !ok {
		return nil, utils.NewOrderNotFoundError()
	}
	clone := *order
	return &clone, nil
}

func (or *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	or.mu.Lock()
	defer or.mu.Unlock()

	current, ok := or.byID[order.ID]
	if !ok {
		return utils.NewOrderNotFoundError()
	}

	*current = *order
	or.persist(ctx)
	return nil
}

// List returns the collection in insertion order, newest first.
func (or *OrderRepository) List(_ context.Context) []*models.Order {
	or.mu.RLock()
	defer or.mu.RUnlock()
	return or.snapshot(func(*models.Order) bool { return true })
}

func (or *OrderRepository) ListByUser(_ context.Context, userID string) []*models.Order {
	or.mu.RLock()
	defer or.mu.RUnlock()
	return or.snapshot(func(o *models.Order) bool { return o.UserID == userID })
}

func (or *OrderRepository) ListByType(_ context.Context, serviceType string) []*models.Order {
	or.mu.RLock()
	defer or.mu.RUnlock()
	return or.snapshot(func(o *models.Order) bool { return o.ServiceType == serviceType })
}

func (or *OrderRepository) ListByStatus(_ context.Context, status string) []*models.Order {
	or.mu.RLock()
	defer or.mu.RUnlock()
	return or.snapshot(func(o *models.Order) bool { return o.Status == status })
}

func (or *OrderRepository) snapshot(keep func(*models.Order) bool) []*models.Order {
	result := make([]*models.Order, 0, len(or.orders))
	for _, o := range or.orders {
		if keep(o) {
			clone := *o
			result = append(result, &clone)
		}
	}
	return result
}
