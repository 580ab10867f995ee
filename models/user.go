package models

import "time"

// User roles
const (
	RoleClient   = "client"
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"` // bcrypt hash, never included in JSON responses

	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role"` // client, admin, operator

	// Current subscription reference, nil until a plan is activated
	Subscription *SubscriptionRef `json:"subscription,omitempty"`

	EmergencyContacts []EmergencyContact `json:"emergencyContacts,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubscriptionRef is the subscription summary embedded in the user record.
type SubscriptionRef struct {
	PlanID         string    `json:"planId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	HoursRemaining int       `json:"hoursRemaining"`
	IsActive       bool      `json:"isActive"`
}

type EmergencyContact struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,phone"`
	Label   string `json:"label,omitempty"`
	Consent bool   `json:"consent"`
}
