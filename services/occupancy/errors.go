package occupancy

import "errors"

// Sentinel errors surfaced by the occupancy operations. Handlers map these
// to HTTP statuses.
var (
	// ErrOccupancyNotLive is returned when a termination targets an
	// occupancy that does not exist or has already ended
	ErrOccupancyNotLive = errors.New("occupancy not found or already ended")
)
