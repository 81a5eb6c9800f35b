package constants

// NATS subjects consumed by the notification dispatcher
const (
	// Reservation lifecycle
	SubjectReservationConfirmed = "reservation.confirmed"
	SubjectReservationCancelled = "reservation.cancelled"
	SubjectReservationExpired   = "reservation.expired"

	// Occupancy lifecycle
	SubjectOccupancyExpiring   = "occupancy.expiring"
	SubjectOccupancyExtended   = "occupancy.extended"
	SubjectOccupancyExpired    = "occupancy.expired"
	SubjectOccupancyTerminated = "occupancy.terminated"

	// Payment events
	SubjectPaymentCompleted = "payment.completed"
	SubjectPaymentFailed    = "payment.failed"
)
