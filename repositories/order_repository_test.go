package repositories

import (
	"context"
	"securix/models"
	"securix/storage"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(id, serviceType, status string) *models.Order {
	return &models.Order{
		ID:          id,
		UserID:      "user-1",
		ServiceType: serviceType,
		Status:      status,
		CreatedAt:   time.Now(),
		Price:       45000,
	}
}

func TestOrderRepositoryNewestFirst(t *testing.T) {
	repo := NewOrderRepository(storage.NewMemoryMirror())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("a", models.ServiceBodyguard, models.OrderStatusPending)))
	require.NoError(t, repo.Create(ctx, newOrder("b", models.ServiceDriver, models.OrderStatusPending)))

	orders := repo.List(ctx)
	require.Len(t, orders, 2)
	assert.Equal(t, "b", orders[0].ID)
	assert.Equal(t, "a", orders[1].ID)
}

func TestOrderRepositoryDuplicateID(t *testing.T) {
	repo := NewOrderRepository(storage.NewMemoryMirror())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("a", models.ServiceBodyguard, models.OrderStatusPending)))
	assert.Error(t, repo.Create(ctx, newOrder("a", models.ServiceDriver, models.OrderStatusPending)))
}

func TestOrderRepositoryFilters(t *testing.T) {
	repo := NewOrderRepository(storage.NewMemoryMirror())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("a", models.ServiceBodyguard, models.OrderStatusPending)))
	require.NoError(t, repo.Create(ctx, newOrder("b", models.ServiceDriver, models.OrderStatusConfirmed)))
	require.NoError(t, repo.Create(ctx, newOrder("c", models.ServiceDriver, models.OrderStatusPending)))

	drivers := repo.ListByType(ctx, models.ServiceDriver)
	require.Len(t, drivers, 2)
	assert.Equal(t, "c", drivers[0].ID)

	pending := repo.ListByStatus(ctx, models.OrderStatusPending)
	assert.Len(t, pending, 2)

	byUser := repo.ListByUser(ctx, "user-1")
	assert.Len(t, byUser, 3)
	assert.Empty(t, repo.ListByUser(ctx, "someone-else"))
}

func TestOrderRepositorySnapshotIsolation(t *testing.T) {
	repo := NewOrderRepository(storage.NewMemoryMirror())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("a", models.ServiceBodyguard, models.OrderStatusPending)))

	// Mutating a returned order must not leak into the repository.
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	got.Status = models.OrderStatusCancelled

	fresh, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, fresh.Status)
}

func TestOrderRepositoryMirrorRestore(t *testing.T) {
	mirror := storage.NewMemoryMirror()
	ctx := context.Background()

	repo := NewOrderRepository(mirror)
	require.NoError(t, repo.Create(ctx, newOrder("a", models.ServiceBodyguard, models.OrderStatusPending)))
	require.NoError(t, repo.Create(ctx, newOrder("b", models.ServiceDriver, models.OrderStatusPending)))

	// A new repository over the same mirror sees the collection.
	restored := NewOrderRepository(mirror)
	orders := restored.List(ctx)
	require.Len(t, orders, 2)
	assert.Equal(t, "b", orders[0].ID)

	got, err := restored.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.ServiceBodyguard, got.ServiceType)
}
