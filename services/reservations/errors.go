package reservations

import "errors"

// Sentinel errors surfaced by the reservation state machine. Handlers map
// these to HTTP statuses; webhook processing treats ErrStaleTransition as a
// safe no-op.
var (
	// ErrReservationNotFound is returned when no reservation matches the id
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrNotReservationOwner is returned when a tenant acts on a
	// reservation that belongs to someone else
	ErrNotReservationOwner = errors.New("reservation belongs to another tenant")

	// ErrAlreadyPaid blocks the tenant-cancel path once payment completed;
	// refunds go through a separate process
	ErrAlreadyPaid = errors.New("reservation already paid, cancellation requires a refund")

	// ErrInvalidTransition is returned for transitions the state machine
	// does not permit (e.g. cancelling an expired reservation)
	ErrInvalidTransition = errors.New("invalid reservation state transition")

	// ErrStaleTransition marks a duplicate or late payment outcome that has
	// already been applied; callers discard it without side effects
	ErrStaleTransition = errors.New("stale transition: outcome already applied")

	// ErrPropertyUnavailable is returned when the directory reports the
	// property cannot be reserved
	ErrPropertyUnavailable = errors.New("property is not available")
)
