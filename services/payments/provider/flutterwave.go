package provider

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mwangi/kodisha/internal/pkg/circuitbreaker"
	"github.com/mwangi/kodisha/internal/pkg/httpclient"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/internal/pkg/retry"
	"github.com/mwangi/kodisha/services/payments"
	"github.com/shopspring/decimal"
)

// Flutterwave is the redirect-gateway adapter. Initiation returns a hosted
// checkout link; the tenant completes payment off-site and the gateway
// calls back with a verif-hash header.
type Flutterwave struct {
	cfg     models.FlutterwaveConfig
	client  *httpclient.Client
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
}

// NewFlutterwave creates a new Flutterwave adapter
func NewFlutterwave(cfg models.FlutterwaveConfig, l *logger.ZapLogger) *Flutterwave {
	return &Flutterwave{
		cfg:     cfg,
		client:  httpclient.NewClient(cfg.BaseURL, time.Duration(cfg.Timeout)*time.Second),
		retrier: retry.NewWithDefaults(l),
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("flutterwave"), l),
	}
}

// Name returns the provider identifier
func (f *Flutterwave) Name() models.PaymentProvider {
	return models.ProviderFlutterwave
}

type flwPaymentRequest struct {
	TxRef       string `json:"tx_ref"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	RedirectURL string `json:"redirect_url"`
}

type flwPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// Initiate creates a hosted checkout session. The transaction id doubles as
// tx_ref, so callbacks and verification both key off it.
func (f *Flutterwave) Initiate(ctx context.Context, payment *models.PaymentTransaction) (*models.InitiateResult, error) {
	req := flwPaymentRequest{
		TxRef:       payment.ID.String(),
		Amount:      payment.Amount.String(),
		Currency:    payment.Currency,
		RedirectURL: f.cfg.RedirectURL,
	}

	var resp flwPaymentResponse
	err := f.breaker.Execute(ctx, func(ctx context.Context) error {
		return f.retrier.Execute(ctx, func(ctx context.Context) error {
			status, err := f.client.PostJSON(ctx, "/v3/payments", req, f.authHeaders(), &resp)
			if err != nil {
				return err
			}
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("flutterwave returned status %d", status)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("flutterwave initiation failed: %w", err)
	}
	if resp.Status != "success" || resp.Data.Link == "" {
		return nil, fmt.Errorf("flutterwave rejected payment: %s", resp.Message)
	}

	return &models.InitiateResult{
		TransactionID:     payment.ID,
		Provider:          models.ProviderFlutterwave,
		ProviderReference: payment.ID.String(),
		RedirectURL:       resp.Data.Link,
	}, nil
}

type flwCallbackPayload struct {
	Event string `json:"event"`
	Data  struct {
		TxRef             string          `json:"tx_ref"`
		FlwRef            string          `json:"flw_ref"`
		Amount            decimal.Decimal `json:"amount"`
		Currency          string          `json:"currency"`
		Status            string          `json:"status"`
		ProcessorResponse string          `json:"processor_response"`
	} `json:"data"`
}

// ParseCallback authenticates the webhook with the verif-hash header and
// normalizes the payload.
func (f *Flutterwave) ParseCallback(r *http.Request, body []byte) (*models.PaymentOutcome, error) {
	hash := r.Header.Get("verif-hash")
	if f.cfg.WebhookHash == "" ||
		subtle.ConstantTimeCompare([]byte(hash), []byte(f.cfg.WebhookHash)) != 1 {
		return nil, payments.ErrInvalidSignature
	}

	var payload flwCallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse flutterwave callback: %w", err)
	}

	return &models.PaymentOutcome{
		Provider:          models.ProviderFlutterwave,
		ProviderReference: payload.Data.TxRef,
		Status:            flwStatus(payload.Data.Status),
		Amount:            payload.Data.Amount,
		Currency:          payload.Data.Currency,
		FailureReason:     failureReason(flwStatus(payload.Data.Status), payload.Data.ProcessorResponse),
		OccurredAt:        time.Now().UTC(),
	}, nil
}

type flwVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		TxRef             string          `json:"tx_ref"`
		Amount            decimal.Decimal `json:"amount"`
		Currency          string          `json:"currency"`
		Status            string          `json:"status"`
		ProcessorResponse string          `json:"processor_response"`
	} `json:"data"`
}

// Verify queries the authoritative transaction record by tx_ref
func (f *Flutterwave) Verify(ctx context.Context, payment *models.PaymentTransaction) (*models.PaymentOutcome, error) {
	var resp flwVerifyResponse
	var httpStatus int
	err := f.breaker.Execute(ctx, func(ctx context.Context) error {
		return f.retrier.Execute(ctx, func(ctx context.Context) error {
			path := fmt.Sprintf("/v3/transactions/verify_by_reference?tx_ref=%s", payment.ProviderReference)
			status, err := f.client.GetJSON(ctx, path, f.authHeaders(), &resp)
			if err != nil {
				return err
			}
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("flutterwave returned status %d", status)
			}
			httpStatus = status
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("flutterwave verification failed: %w", err)
	}

	// A reference the gateway does not recognize is a dead attempt, not an
	// in-flight one; it must not stay pending in the verify sweep forever.
	if httpStatus == http.StatusNotFound {
		reason := resp.Message
		if reason == "" {
			reason = "no transaction found for reference"
		}
		return &models.PaymentOutcome{
			Provider:          models.ProviderFlutterwave,
			ProviderReference: payment.ProviderReference,
			MerchantReference: payment.ID.String(),
			Status:            models.OutcomeFailed,
			Amount:            payment.Amount,
			Currency:          payment.Currency,
			FailureReason:     reason,
			OccurredAt:        time.Now().UTC(),
		}, nil
	}

	return &models.PaymentOutcome{
		Provider:          models.ProviderFlutterwave,
		ProviderReference: payment.ProviderReference,
		MerchantReference: payment.ID.String(),
		Status:            flwStatus(resp.Data.Status),
		Amount:            resp.Data.Amount,
		Currency:          resp.Data.Currency,
		FailureReason:     failureReason(flwStatus(resp.Data.Status), resp.Data.ProcessorResponse),
		OccurredAt:        time.Now().UTC(),
	}, nil
}

func (f *Flutterwave) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + f.cfg.SecretKey,
	}
}

func flwStatus(s string) models.OutcomeStatus {
	switch s {
	case "successful":
		return models.OutcomeCompleted
	case "failed", "cancelled":
		return models.OutcomeFailed
	default:
		return models.OutcomePending
	}
}

func failureReason(status models.OutcomeStatus, detail string) string {
	if status != models.OutcomeFailed {
		return ""
	}
	if detail == "" {
		return "payment failed"
	}
	return detail
}
