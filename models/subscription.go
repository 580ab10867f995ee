package models

import "time"

// Subscription plan identifiers
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanVIP     = "vip"
)

// SubscriptionDuration is the nominal validity of an activated plan.
const SubscriptionDuration = 30 * 24 * time.Hour

type Subscription struct {
	ID             string    `json:"id"`
	Plan           string    `json:"plan"`
	PlanName       string    `json:"planName"`
	HoursRemaining int       `json:"hoursRemaining"`
	TotalHours     int       `json:"totalHours"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	AutoRenew      bool      `json:"autoRenew"`
}

// PlanDetails describes a catalog entry shown on the paywall.
type PlanDetails struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"` // KZT per month
	Hours    int      `json:"hours"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular,omitempty"`
}

type ActivatePlanRequest struct {
	Plan string `json:"plan" validate:"required,subscription_plan"`
}

type ConsumeHoursRequest struct {
	Hours int `json:"hours" validate:"min=0"`
}

// Ref returns the summary embedded into the owning user record.
func (s *Subscription) Ref() *SubscriptionRef {
	if s == nil {
		return nil
	}
	return &SubscriptionRef{
		PlanID:         s.Plan,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		HoursRemaining: s.HoursRemaining,
		IsActive:       s.IsActive,
	}
}
