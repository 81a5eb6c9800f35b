package payments

import "errors"

// Sentinel errors surfaced by payment operations
var (
	// ErrUnknownProvider is returned when the provider path segment does
	// not name a configured adapter
	ErrUnknownProvider = errors.New("unknown payment provider")

	// ErrTransactionNotFound is returned when no payment transaction
	// matches the lookup
	ErrTransactionNotFound = errors.New("payment transaction not found")

	// ErrInvalidSignature is returned when a callback fails its
	// provider-specific authenticity check
	ErrInvalidSignature = errors.New("callback signature verification failed")

	// ErrNoOpenInvoice is returned when a reservation has nothing left to
	// pay
	ErrNoOpenInvoice = errors.New("no open invoice for reservation")

	// ErrReservationNotPayable is returned when the reservation is in a
	// state that cannot accept a payment attempt
	ErrReservationNotPayable = errors.New("reservation cannot accept payments")

	// ErrMsisdnRequired is returned when a push provider is asked to
	// initiate without a subscriber number
	ErrMsisdnRequired = errors.New("msisdn is required for this provider")
)
