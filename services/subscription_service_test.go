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

func newSubscriptionService(t *testing.T) (*SubscriptionService, *utils.FakeClock) {
	t.Helper()
	clock := utils.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mirror := storage.NewMemoryMirror()
	userRepo := repositories.NewUserRepository()
	auth := NewAuthService(userRepo, utils.NewJWTService("test-secret"), NewMockNotifier(), mirror, clock)
	repo := repositories.NewSubscriptionRepository(mirror)
	return NewSubscriptionService(repo, auth, clock), clock
}

func TestListPlans(t *testing.T) {
	svc, _ := newSubscriptionService(t)

	plans := svc.ListPlans()
	require.Len(t, plans, 3)
	assert.Equal(t, models.PlanBasic, plans[0].ID)
	assert.Equal(t, models.PlanPremium, plans[1].ID)
	assert.Equal(t, models.PlanVIP, plans[2].ID)
	assert.True(t, plans[1].Popular)
}

func TestActivatePlan(t *testing.T) {
	svc, clock := newSubscriptionService(t)
	ctx := context.Background()

	start := clock.Now()
	sub, err := svc.ActivatePlan(ctx, models.PlanPremium)
	require.NoError(t, err)

	assert.Equal(t, models.PlanPremium, sub.Plan)
	assert.Equal(t, "Премиум", sub.PlanName)
	assert.Equal(t, 25, sub.HoursRemaining)
	assert.Equal(t, 25, sub.TotalHours)
	assert.True(t, sub.IsActive)
	assert.True(t, sub.AutoRenew)
	// Expiry is 30 days out (activation itself consumes simulated latency).
	assert.WithinDuration(t, start.Add(models.SubscriptionDuration), sub.EndDate, 2*time.Second)
}

func TestActivatePlanReplacesExisting(t *testing.T) {
	svc, _ := newSubscriptionService(t)
	ctx := context.Background()

	_, err := svc.ActivatePlan(ctx, models.PlanBasic)
	require.NoError(t, err)

	sub, err := svc.ActivatePlan(ctx, models.PlanVIP)
	require.NoError(t, err)
	assert.Equal(t, models.PlanVIP, sub.Plan)
	assert.Equal(t, 50, sub.HoursRemaining)
}

func TestActivateUnknownPlan(t *testing.T) {
	svc, _ := newSubscriptionService(t)

	_, err := svc.ActivatePlan(context.Background(), "platinum")
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.ErrCodeValidation, serviceErr.Code)
}

func TestCancelSubscription(t *testing.T) {
	svc, _ := newSubscriptionService(t)
	ctx := context.Background()

	activated, err := svc.ActivatePlan(ctx, models.PlanBasic)
	require.NoError(t, err)

	cancelled, err := svc.CancelSubscription(ctx)
	require.NoError(t, err)

	// Soft cancel: flags flip, hours and expiry stay.
	assert.False(t, cancelled.IsActive)
	assert.False(t, cancelled.AutoRenew)
	assert.Equal(t, activated.HoursRemaining, cancelled.HoursRemaining)
	assert.Equal(t, activated.EndDate, cancelled.EndDate)
}

func TestCancelWithoutSubscription(t *testing.T) {
	svc, _ := newSubscriptionService(t)

	_, err := svc.CancelSubscription(context.Background())
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", serviceErr.Code)
}

func TestConsumeHoursClampsAtZero(t *testing.T) {
	svc, _ := newSubscriptionService(t)
	ctx := context.Background()

	_, err := svc.ActivatePlan(ctx, models.PlanBasic)
	require.NoError(t, err)

	sub, err := svc.ConsumeHours(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, sub.HoursRemaining)

	// Over-consumption clamps instead of erroring.
	sub, err = svc.ConsumeHours(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.HoursRemaining)

	sub, err = svc.ConsumeHours(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.HoursRemaining)

	_, err = svc.ConsumeHours(ctx, -1)
	assert.Error(t, err)
}
