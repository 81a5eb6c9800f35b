package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mwangi/kodisha/internal/pkg/circuitbreaker"
	"github.com/mwangi/kodisha/internal/pkg/httpclient"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/internal/pkg/retry"
	"github.com/mwangi/kodisha/services/payments"
)

// Airtel is the Airtel Money push adapter. The merchant-generated
// transaction id is the provider reference: initiation, callbacks and
// status queries all key off it. Callbacks carry an HMAC-SHA256 signature
// over the raw body.
type Airtel struct {
	cfg     models.AirtelConfig
	client  *httpclient.Client
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewAirtel creates a new Airtel Money adapter
func NewAirtel(cfg models.AirtelConfig, l *logger.ZapLogger) *Airtel {
	return &Airtel{
		cfg:     cfg,
		client:  httpclient.NewClient(cfg.BaseURL, time.Duration(cfg.Timeout)*time.Second),
		retrier: retry.NewWithDefaults(l),
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("airtel"), l),
	}
}

// Name returns the provider identifier
func (a *Airtel) Name() models.PaymentProvider {
	return models.ProviderAirtel
}

type airtelTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (a *Airtel) accessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && time.Now().Before(a.tokenExp) {
		return a.token, nil
	}

	req := map[string]string{
		"client_id":     a.cfg.ClientID,
		"client_secret": a.cfg.ClientSecret,
		"grant_type":    "client_credentials",
	}
	var resp airtelTokenResponse
	status, err := a.client.PostJSON(ctx, "/auth/oauth2/token", req, nil, &resp)
	if err != nil {
		return "", fmt.Errorf("airtel token request failed: %w", err)
	}
	if status != http.StatusOK || resp.AccessToken == "" {
		return "", fmt.Errorf("airtel token request returned status %d", status)
	}

	a.token = resp.AccessToken
	expiresIn := time.Duration(resp.ExpiresIn) * time.Second
	if expiresIn <= time.Minute {
		expiresIn = 2 * time.Minute
	}
	a.tokenExp = time.Now().Add(expiresIn - time.Minute)
	return a.token, nil
}

type airtelPushRequest struct {
	Reference  string `json:"reference"`
	Subscriber struct {
		Country  string `json:"country"`
		Currency string `json:"currency"`
		Msisdn   string `json:"msisdn"`
	} `json:"subscriber"`
	Transaction struct {
		Amount   string `json:"amount"`
		Country  string `json:"country"`
		Currency string `json:"currency"`
		ID       string `json:"id"`
	} `json:"transaction"`
}

type airtelPushResponse struct {
	Status struct {
		Code    string `json:"code"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	} `json:"status"`
}

// Initiate pushes the charge to the subscriber's handset
func (a *Airtel) Initiate(ctx context.Context, payment *models.PaymentTransaction) (*models.InitiateResult, error) {
	if payment.Msisdn == "" {
		return nil, payments.ErrMsisdnRequired
	}

	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var req airtelPushRequest
	req.Reference = "Rent payment"
	req.Subscriber.Country = "KE"
	req.Subscriber.Currency = payment.Currency
	req.Subscriber.Msisdn = payment.Msisdn
	req.Transaction.Amount = payment.Amount.String()
	req.Transaction.Country = "KE"
	req.Transaction.Currency = payment.Currency
	req.Transaction.ID = payment.ID.String()

	var resp airtelPushResponse
	err = a.breaker.Execute(ctx, func(ctx context.Context) error {
		return a.retrier.Execute(ctx, func(ctx context.Context) error {
			status, err := a.client.PostJSON(ctx, "/merchant/v1/payments/", req, map[string]string{
				"Authorization": "Bearer " + token,
				"X-Country":     "KE",
				"X-Currency":    payment.Currency,
			}, &resp)
			if err != nil {
				return err
			}
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("airtel returned status %d", status)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("airtel push failed: %w", err)
	}
	if !resp.Status.Success {
		return nil, fmt.Errorf("airtel rejected payment: %s", resp.Status.Message)
	}

	return &models.InitiateResult{
		TransactionID:     payment.ID,
		Provider:          models.ProviderAirtel,
		ProviderReference: payment.ID.String(),
		PollToken:         payment.ID.String(),
	}, nil
}

type airtelCallbackPayload struct {
	Transaction struct {
		ID            string `json:"id"`
		Message       string `json:"message"`
		StatusCode    string `json:"status_code"`
		AirtelMoneyID string `json:"airtel_money_id"`
	} `json:"transaction"`
}

// ParseCallback verifies the HMAC signature over the raw body and
// normalizes the result. TS is the only success code.
func (a *Airtel) ParseCallback(r *http.Request, body []byte) (*models.PaymentOutcome, error) {
	signature := r.Header.Get("X-Auth-Signature")
	if a.cfg.WebhookSecret == "" || !a.validSignature(body, signature) {
		return nil, payments.ErrInvalidSignature
	}

	var payload airtelCallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse airtel callback: %w", err)
	}

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderAirtel,
		ProviderReference: payload.Transaction.ID,
		OccurredAt:        time.Now().UTC(),
	}

	switch payload.Transaction.StatusCode {
	case "TS":
		outcome.Status = models.OutcomeCompleted
	case "TF":
		outcome.Status = models.OutcomeFailed
		outcome.FailureReason = payload.Transaction.Message
	default:
		outcome.Status = models.OutcomePending
	}

	return outcome, nil
}

type airtelStatusResponse struct {
	Data struct {
		Transaction struct {
			ID      string `json:"id"`
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"transaction"`
	} `json:"data"`
}

// Verify queries the authoritative transaction status by the merchant id
func (a *Airtel) Verify(ctx context.Context, payment *models.PaymentTransaction) (*models.PaymentOutcome, error) {
	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var resp airtelStatusResponse
	var httpStatus int
	err = a.breaker.Execute(ctx, func(ctx context.Context) error {
		return a.retrier.Execute(ctx, func(ctx context.Context) error {
			path := fmt.Sprintf("/standard/v1/payments/%s", payment.ProviderReference)
			status, err := a.client.GetJSON(ctx, path, map[string]string{
				"Authorization": "Bearer " + token,
				"X-Country":     "KE",
				"X-Currency":    payment.Currency,
			}, &resp)
			if err != nil {
				return err
			}
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("airtel returned status %d", status)
			}
			httpStatus = status
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("airtel status query failed: %w", err)
	}

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderAirtel,
		ProviderReference: payment.ProviderReference,
		MerchantReference: payment.ID.String(),
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		OccurredAt:        time.Now().UTC(),
	}

	// An id the API does not recognize is a dead attempt; leaving it
	// pending would pin the verify sweep on it forever.
	if httpStatus == http.StatusNotFound {
		outcome.Status = models.OutcomeFailed
		outcome.FailureReason = resp.Data.Transaction.Message
		if outcome.FailureReason == "" {
			outcome.FailureReason = "transaction not found for id"
		}
		return outcome, nil
	}

	switch resp.Data.Transaction.Status {
	case "TS":
		outcome.Status = models.OutcomeCompleted
	case "TF":
		outcome.Status = models.OutcomeFailed
		outcome.FailureReason = resp.Data.Transaction.Message
	default:
		outcome.Status = models.OutcomePending
	}

	return outcome, nil
}

// validSignature compares the delivered signature with the HMAC-SHA256 of
// the raw body.
func (a *Airtel) validSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(a.cfg.WebhookSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
