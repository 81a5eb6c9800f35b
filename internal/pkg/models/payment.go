package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentProvider identifies an external payment provider
type PaymentProvider string

const (
	ProviderFlutterwave PaymentProvider = "flutterwave"
	ProviderMpesa       PaymentProvider = "mpesa"
	ProviderAirtel      PaymentProvider = "airtel"
)

// Valid reports whether the provider is one the engine integrates with
func (p PaymentProvider) Valid() bool {
	switch p {
	case ProviderFlutterwave, ProviderMpesa, ProviderAirtel:
		return true
	}
	return false
}

// TransactionStatus represents the status of a payment transaction
type TransactionStatus string

const (
	TransactionStatusInitiated TransactionStatus = "initiated"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"

	// TransactionStatusRefundDue parks a settlement that arrived after its
	// invoice was already paid by another transaction. The money is held
	// for manual reconciliation; it never counts as a completed payment.
	TransactionStatusRefundDue TransactionStatus = "refund_due"
)

// Terminal reports whether the status can no longer change
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed ||
		s == TransactionStatusRefundDue
}

// PaymentTransaction represents one attempt by one provider to settle a
// reservation's amount due. ProviderReference is unique within a provider
// namespace and serves as the webhook idempotency key.
type PaymentTransaction struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	ReservationID     uuid.UUID         `json:"reservation_id" db:"reservation_id"`
	InvoiceID         uuid.UUID         `json:"invoice_id" db:"invoice_id"`
	Provider          PaymentProvider   `json:"provider" db:"provider"`
	ProviderReference string            `json:"provider_reference" db:"provider_reference"`
	Status            TransactionStatus `json:"status" db:"status"`
	Amount            decimal.Decimal   `json:"amount" db:"amount"`
	Currency          string            `json:"currency" db:"currency"`
	Msisdn            string            `json:"msisdn,omitempty" db:"msisdn"`
	FailureReason     string            `json:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
}

// OutcomeStatus is the normalized result of a payment attempt
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomePending   OutcomeStatus = "pending"
)

// PaymentOutcome is the tagged-variant result every provider adapter
// produces, so downstream code never branches on provider field names.
type PaymentOutcome struct {
	Provider          PaymentProvider `json:"provider"`
	ProviderReference string          `json:"provider_reference"`
	MerchantReference string          `json:"merchant_reference"` // our transaction ID echoed back
	Status            OutcomeStatus   `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	FailureReason     string          `json:"failure_reason,omitempty"`
	OccurredAt        time.Time       `json:"occurred_at"`
}

// InitiateResult is what a provider hands back after starting a payment.
// Redirect gateways fill RedirectURL; push providers fill PollToken.
type InitiateResult struct {
	TransactionID     uuid.UUID       `json:"transaction_id"`
	Provider          PaymentProvider `json:"provider"`
	ProviderReference string          `json:"provider_reference"`
	RedirectURL       string          `json:"redirect_url,omitempty"`
	PollToken         string          `json:"poll_token,omitempty"`
}

// InitiatePaymentRequest is the tenant request to start a payment attempt
type InitiatePaymentRequest struct {
	ReservationID string `json:"reservation_id"`
	Msisdn        string `json:"msisdn,omitempty"` // required by push providers
}
