package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/httpclient"
	"github.com/mwangi/kodisha/internal/pkg/models"
	natspkg "github.com/mwangi/kodisha/internal/pkg/nats"
	"github.com/mwangi/kodisha/services/reservations"
)

// ReservationGW talks to the property directory over HTTP and publishes
// lifecycle events to NATS.
type ReservationGW struct {
	cfg        *models.Config
	directory  *httpclient.Client
	natsClient *natspkg.Client
}

// NewReservationGW creates a new reservation gateway
func NewReservationGW(cfg *models.Config, natsClient *natspkg.Client) *ReservationGW {
	return &ReservationGW{
		cfg:        cfg,
		directory:  httpclient.NewClient(cfg.Directory.BaseURL, time.Duration(cfg.Directory.Timeout)*time.Second),
		natsClient: natsClient,
	}
}

// propertyEnvelope matches the directory's response envelope
type propertyEnvelope struct {
	Success bool             `json:"success"`
	Data    *models.Property `json:"data"`
}

// GetProperty looks up a property in the directory service
func (g *ReservationGW) GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	var envelope propertyEnvelope
	status, err := g.directory.GetJSON(ctx, fmt.Sprintf("/internal/properties/%s", propertyID), map[string]string{
		"X-API-Key": g.cfg.APIKey.AdminKey,
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("property directory request failed: %w", err)
	}

	switch {
	case status == http.StatusNotFound:
		return nil, reservations.ErrPropertyUnavailable
	case status != http.StatusOK || envelope.Data == nil:
		return nil, fmt.Errorf("property directory returned status %d", status)
	}

	return envelope.Data, nil
}

// PublishReservationEvent publishes a reservation lifecycle event
func (g *ReservationGW) PublishReservationEvent(ctx context.Context, subject string, event models.ReservationEvent) error {
	return g.natsClient.PublishJSON(subject, event)
}

// PublishOccupancyEvent publishes an occupancy lifecycle event
func (g *ReservationGW) PublishOccupancyEvent(ctx context.Context, subject string, event models.OccupancyEvent) error {
	return g.natsClient.PublishJSON(subject, event)
}
