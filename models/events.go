package models

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is published after an order is created or changes status.
type OrderEvent struct {
	EventID        string      `json:"eventId"`
	EventType      string      `json:"eventType"`
	OrderID        string      `json:"orderId"`
	Vendor         VendorType  `json:"vendor"`
	User           string      `json:"user"`
	Status         OrderStatus `json:"status"`
	PreviousStatus OrderStatus `json:"previousStatus,omitempty"`
	TotalAmount    float64     `json:"totalAmount"`
	OccurredAt     time.Time   `json:"occurredAt"`
}
