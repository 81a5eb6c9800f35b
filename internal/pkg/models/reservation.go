package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusExpired   ReservationStatus = "expired"
)

// PaymentState represents the payment status of a reservation
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
	PaymentStateRefunded  PaymentState = "refunded"
)

// Reservation represents a tenant's claim on a property pending payment.
// Rows are never deleted; cancelled and expired are terminal but retained
// for audit.
type Reservation struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	TenantID      uuid.UUID         `json:"tenant_id" db:"tenant_id"`
	PropertyID    uuid.UUID         `json:"property_id" db:"property_id"`
	Status        ReservationStatus `json:"status" db:"status"`
	PaymentStatus PaymentState      `json:"payment_status" db:"payment_status"`
	AmountDue     decimal.Decimal   `json:"amount_due" db:"amount_due"`
	Currency      string            `json:"currency" db:"currency"`
	Months        int               `json:"months" db:"months"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
	ExpiresAt     time.Time         `json:"expires_at" db:"expires_at"`
}

// Cancellable reports whether the tenant-cancel path may close this
// reservation. A completed payment always blocks it; refunds go through a
// separate process.
func (r *Reservation) Cancellable() bool {
	if r.Status != ReservationStatusPending {
		return false
	}
	return r.PaymentStatus == PaymentStatePending || r.PaymentStatus == PaymentStateFailed
}

// CreateReservationRequest is the tenant request to hold a property
type CreateReservationRequest struct {
	PropertyID string `json:"property_id"`
	Months     int    `json:"months"`
}

// ReservationResponse is returned on create/get/cancel
type ReservationResponse struct {
	Reservation *Reservation `json:"reservation"`
	AmountDue   string       `json:"amount_due"`
	Currency    string       `json:"currency"`
}
