package models

import (
	"time"

	"github.com/google/uuid"
)

// OccupancyStatus represents the status of a confirmed tenancy
type OccupancyStatus string

const (
	OccupancyStatusActive   OccupancyStatus = "active"
	OccupancyStatusExpiring OccupancyStatus = "expiring"

	// OccupancyStatusExpired means the paid period ended without a renewal
	// payment; the lapse sweep produces it.
	OccupancyStatusExpired OccupancyStatus = "expired"

	// OccupancyStatusTerminated means the tenancy was ended explicitly
	// before its paid period ran out.
	OccupancyStatusTerminated OccupancyStatus = "terminated"
)

// Occupancy is the confirmed, time-bounded tenancy created exactly once when
// a reservation is confirmed. A uniqueness constraint on reservation_id
// enforces the exactly-once creation.
type Occupancy struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ReservationID uuid.UUID       `json:"reservation_id" db:"reservation_id"`
	PropertyID    uuid.UUID       `json:"property_id" db:"property_id"`
	TenantID      uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	StartDate     time.Time       `json:"start_date" db:"start_date"`
	EndDate       time.Time       `json:"end_date" db:"end_date"`
	MonthsPaid    int             `json:"months_paid" db:"months_paid"`
	Status        OccupancyStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
