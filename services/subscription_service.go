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
	activatePlanDelay = 1000 * time.Millisecond
	cancelPlanDelay   = 500 * time.Millisecond
)

// subscriptionPlans is the fixed paywall catalog.
var subscriptionPlans = []models.PlanDetails{
	{
		ID:    models.PlanBasic,
		Name:  "Базовый",
		Price: 50000,
		Hours: 10,
		Features: []string{
			"10 часов охраны",
			"Доступ к SOS",
			"Чат с оператором",
			"Базовая поддержка",
		},
	},
	{
		ID:    models.PlanPremium,
		Name:  "Премиум",
		Price: 108000,
		Hours: 25,
		Features: []string{
			"25 часов охраны",
			"Доступ к SOS",
			"Чат с оператором",
			"Приоритетная поддержка",
			"Водитель (доп. оплата)",
		},
		Popular: true,
	},
	{
		ID:    models.PlanVIP,
		Name:  "VIP",
		Price: 180000,
		Hours: 50,
		Features: []string{
			"50 часов охраны",
			"Доступ к SOS",
			"Чат с оператором",
			"VIP поддержка 24/7",
			"Водитель включен",
			"Консьерж-сервис",
		},
	},
}

type SubscriptionService struct {
	subscriptionRepo *repositories.SubscriptionRepository
	authService      *AuthService
	clock            utils.Clock
}

func NewSubscriptionService(
	subscriptionRepo *repositories.SubscriptionRepository,
	authService *AuthService,
	clock utils.Clock,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		authService:      authService,
		clock:            clock,
	}
}

// ListPlans returns the catalog.
func (ss *SubscriptionService) ListPlans() []models.PlanDetails {
	plans := make([]models.PlanDetails, len(subscriptionPlans))
	copy(plans, subscriptionPlans)
	return plans
}

// GetPlan looks up a catalog entry by id.
func (ss *SubscriptionService) GetPlan(planID string) (*models.PlanDetails, error) {
	for _, plan := range subscriptionPlans {
		if plan.ID == planID {
			clone := plan
			return &clone, nil
		}
	}
	return nil, utils.NewUnknownPlanError(planID)
}

// ActivatePlan replaces any existing subscription with a fresh one for the
// given plan, valid for 30 days.
func (ss *SubscriptionService) ActivatePlan(ctx context.Context, planID string) (*models.Subscription, error) {
	plan, err := ss.GetPlan(planID)
	if err != nil {
		return nil, err
	}

	ss.clock.Sleep(ctx, activatePlanDelay)

	now := ss.clock.Now()
	subscription := &models.Subscription{
		ID:             utils.GenerateUUID(),
		Plan:           plan.ID,
		PlanName:       plan.Name,
		HoursRemaining: plan.Hours,
		TotalHours:     plan.Hours,
		StartDate:      now,
		EndDate:        now.Add(models.SubscriptionDuration),
		IsActive:       true,
		AutoRenew:      true,
	}

	if err := ss.subscriptionRepo.Replace(ctx, subscription); err != nil {
		return nil, err
	}
	ss.authService.SetSubscriptionRef(ctx, subscription.Ref())

	logrus.WithFields(logrus.Fields{
		"plan":  subscription.Plan,
		"hours": subscription.TotalHours,
		"price": utils.FormatKZT(plan.Price),
	}).Info("Subscription activated")

	return subscription, nil
}

// GetSubscription returns the current subscription record.
func (ss *SubscriptionService) GetSubscription(ctx context.Context) (*models.Subscription, error) {
	return ss.subscriptionRepo.Get(ctx)
}

// CancelSubscription soft-deactivates the current subscription. Hours and
// expiry are left untouched.
func (ss *SubscriptionService) CancelSubscription(ctx context.Context) (*models.Subscription, error) {
	subscription, err := ss.subscriptionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	ss.clock.Sleep(ctx, cancelPlanDelay)

	subscription.IsActive = false
	subscription.AutoRenew = false

	if err := ss.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}
	ss.authService.SetSubscriptionRef(ctx, subscription.Ref())

	logrus.WithField("plan", subscription.Plan).Info("Subscription cancelled")
	return subscription, nil
}

// ConsumeHours decrements the remaining hours, clamping at zero. Hours are a
// soft entitlement: over-consumption clamps instead of failing.
func (ss *SubscriptionService) ConsumeHours(ctx context.Context, hours int) (*models.Subscription, error) {
	if hours < 0 {
		return nil, utils.NewValidationError("Hours must be non-negative")
	}

	subscription, err := ss.subscriptionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	subscription.HoursRemaining -= hours
	if subscription.HoursRemaining < 0 {
		subscription.HoursRemaining = 0
	}

	if err := ss.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}
	ss.authService.SetSubscriptionRef(ctx, subscription.Ref())

	return subscription, nil
}
