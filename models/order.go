package models

import "time"

// Service types
const (
	ServiceBodyguard = "bodyguard"
	ServiceDriver    = "driver"
	ServiceConcierge = "concierge"
	ServiceSOS       = "sos"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ServiceType string    `json:"serviceType"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Duration    int            `json:"duration,omitempty"` // hours
	Location    *OrderLocation `json:"location,omitempty"`
	Description string         `json:"description,omitempty"`
	Price       int            `json:"price"` // KZT, whole tenge
	AssignedTo  string         `json:"assignedTo,omitempty"`
}

type OrderLocation struct {
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Longitude float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
}

type CreateOrderRequest struct {
	ServiceType string         `json:"serviceType" validate:"required,service_type"`
	ScheduledAt *time.Time     `json:"scheduledAt,omitempty"`
	Duration    int            `json:"duration,omitempty" validate:"omitempty,min=1,max=720"`
	Location    *OrderLocation `json:"location,omitempty"`
	Description string         `json:"description,omitempty" validate:"max=2000"`
	Price       int            `json:"price" validate:"min=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// IsTerminalOrderStatus reports whether no further transition is allowed.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}
