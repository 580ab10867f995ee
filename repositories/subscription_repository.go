package repositories

import (
	"context"
	"securix/models"
	"securix/storage"
	"securix/utils"
	"sync"

	"github.com/sirupsen/logrus"
)

// SubscriptionRepository holds the single current-subscription slot. Plan
// activation replaces the record wholesale; cancellation only flips flags.
type SubscriptionRepository struct {
	mu           sync.RWMutex
	subscription *models.Subscription
	mirror       storage.Mirror
}

func NewSubscriptionRepository(mirror storage.Mirror) *SubscriptionRepository {
	sr := &SubscriptionRepository{mirror: mirror}
	sr.restore()
	return sr
}

func (sr *SubscriptionRepository) restore() {
	var stored models.Subscription
	found, err := sr.mirror.Get(context.Background(), storage.KeySubscription, &stored)
	if err != nil {
		logrus.Warnf("Failed to restore subscription from mirror: %v", err)
		return
	}
	if found {
		sr.subscription = &stored
	}
}

func (sr *SubscriptionRepository) persist(ctx context.Context) {
	if err := sr.mirror.Put(ctx, storage.KeySubscription, sr.subscription); err != nil {
		logrus.Warnf("Failed to mirror subscription: %v", err)
	}
}

func (sr *SubscriptionRepository) Get(_ context.Context) (*models.Subscription, error) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	if sr.subscription == nil {
		return nil, utils.NewNoActiveSubscriptionError()
	}
	clone := *sr.subscription
	return &clone, nil
}

// Replace installs a new subscription, discarding any previous one.
func (sr *SubscriptionRepository) Replace(ctx context.Context, sub *models.Subscription) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	clone := *sub
	sr.subscription = &clone
	sr.persist(ctx)
	return nil
}

func (sr *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.subscription == nil {
		return utils.NewNoActiveSubscriptionError()
	}
	clone := *sub
	sr.subscription = &clone
	sr.persist(ctx)
	return nil
}
