package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationEvent is published to the notification dispatcher whenever a
// reservation changes state. Delivery is fire-and-forget; a publish failure
// never rolls back the transition it describes.
type ReservationEvent struct {
	ReservationID uuid.UUID         `json:"reservation_id"`
	TenantID      uuid.UUID         `json:"tenant_id"`
	PropertyID    uuid.UUID         `json:"property_id"`
	Status        ReservationStatus `json:"status"`
	PaymentStatus PaymentState      `json:"payment_status"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// OccupancyEvent is published when the scheduler or a renewal payment moves
// an occupancy between states.
type OccupancyEvent struct {
	OccupancyID   uuid.UUID       `json:"occupancy_id"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Status        OccupancyStatus `json:"status"`
	EndDate       time.Time       `json:"end_date"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
