package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is the durable log of every inbound provider notification.
// The row is committed before any state transition runs, so processing can
// be replayed after a crash without re-asking the provider.
type WebhookEvent struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	Provider          PaymentProvider `json:"provider" db:"provider"`
	ProviderReference string          `json:"provider_reference" db:"provider_reference"`
	Payload           []byte          `json:"payload" db:"payload"`
	SignatureOK       bool            `json:"signature_ok" db:"signature_ok"`
	ReceivedAt        time.Time       `json:"received_at" db:"received_at"`
	ProcessedAt       *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
}
