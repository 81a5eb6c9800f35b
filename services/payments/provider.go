package payments

import (
	"context"
	"net/http"

	"github.com/mwangi/kodisha/internal/pkg/models"
)

// Provider adapts one external payment provider to the engine's uniform
// initiate / callback / verify surface. Adapters own credential handling,
// wire formats and signature verification; everything downstream works on
// PaymentOutcome only.
//
//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/mwangi/kodisha/services/payments Provider
type Provider interface {
	// Name returns the provider identifier used in routes and storage
	Name() models.PaymentProvider

	// Initiate starts a payment attempt for the transaction. Redirect
	// gateways return a checkout URL; push providers trigger the charge on
	// the subscriber's handset and return a poll token.
	Initiate(ctx context.Context, payment *models.PaymentTransaction) (*models.InitiateResult, error)

	// ParseCallback authenticates and normalizes a provider callback.
	// ErrInvalidSignature is returned when the authenticity check fails;
	// the raw request is never trusted past this point.
	ParseCallback(r *http.Request, body []byte) (*models.PaymentOutcome, error)

	// Verify queries the provider for the authoritative status of a
	// transaction. Used by the reconcile sweep when callbacks go missing.
	Verify(ctx context.Context, payment *models.PaymentTransaction) (*models.PaymentOutcome, error)
}

// Registry resolves provider adapters by name
type Registry struct {
	providers map[models.PaymentProvider]Provider
}

// NewRegistry creates a registry from the configured adapters
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[models.PaymentProvider]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the adapter for a provider name
func (r *Registry) Get(name models.PaymentProvider) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}
