package constants

import "time"

// Redis key formats
const (
	// KeyWebhookLock serializes concurrent webhook deliveries for one
	// provider reference. Format: webhook:lock:{provider}:{reference}
	KeyWebhookLock = "webhook:lock:%s:%s"
)

// WebhookLockTTL bounds how long a crashed handler can hold a reference
// lock before a provider redelivery may take over.
const WebhookLockTTL = 30 * time.Second
