package provider

import (
	"context"
	"crypto/subtle"
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
	"github.com/shopspring/decimal"
)

// Mpesa is the STK push adapter. Initiation triggers a PIN prompt on the
// subscriber's handset; the result arrives on the registered callback URL
// asynchronously. The callback URL carries a shared token because the
// provider does not sign deliveries.
type Mpesa struct {
	cfg        models.MpesaConfig
	appBaseURL string
	client     *httpclient.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewMpesa creates a new M-Pesa adapter
func NewMpesa(cfg models.MpesaConfig, appBaseURL string, l *logger.ZapLogger) *Mpesa {
	return &Mpesa{
		cfg:        cfg,
		appBaseURL: appBaseURL,
		client:     httpclient.NewClient(cfg.BaseURL, time.Duration(cfg.Timeout)*time.Second),
		retrier:    retry.NewWithDefaults(l),
		breaker:    circuitbreaker.New(circuitbreaker.DefaultConfig("mpesa"), l),
	}
}

// Name returns the provider identifier
func (m *Mpesa) Name() models.PaymentProvider {
	return models.ProviderMpesa
}

type mpesaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// accessToken returns a cached OAuth token, refreshing it when expired
func (m *Mpesa) accessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.tokenExp) {
		return m.token, nil
	}

	basic := base64.StdEncoding.EncodeToString([]byte(m.cfg.ConsumerKey + ":" + m.cfg.ConsumerSecret))
	var resp mpesaTokenResponse
	status, err := m.client.GetJSON(ctx, "/oauth/v1/generate?grant_type=client_credentials", map[string]string{
		"Authorization": "Basic " + basic,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("mpesa token request failed: %w", err)
	}
	if status != http.StatusOK || resp.AccessToken == "" {
		return "", fmt.Errorf("mpesa token request returned status %d", status)
	}

	m.token = resp.AccessToken
	// tokens last an hour; refresh a minute early
	m.tokenExp = time.Now().Add(59 * time.Minute)
	return m.token, nil
}

type mpesaSTKRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type mpesaSTKResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
}

// Initiate pushes the payment prompt to the subscriber's handset. The
// returned CheckoutRequestID is the reference all later callbacks and
// status queries key off.
func (m *Mpesa) Initiate(ctx context.Context, payment *models.PaymentTransaction) (*models.InitiateResult, error) {
	if payment.Msisdn == "" {
		return nil, payments.ErrMsisdnRequired
	}

	token, err := m.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	req := mpesaSTKRequest{
		BusinessShortCode: m.cfg.ShortCode,
		Password:          m.stkPassword(timestamp),
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            payment.Amount.Round(0).String(),
		PartyA:            payment.Msisdn,
		PartyB:            m.cfg.ShortCode,
		PhoneNumber:       payment.Msisdn,
		CallBackURL:       fmt.Sprintf("%s/payments/mpesa/callback?token=%s", m.appBaseURL, m.cfg.CallbackSecret),
		AccountReference:  payment.ID.String(),
		TransactionDesc:   "Rent payment",
	}

	var resp mpesaSTKResponse
	err = m.breaker.Execute(ctx, func(ctx context.Context) error {
		return m.retrier.Execute(ctx, func(ctx context.Context) error {
			status, err := m.client.PostJSON(ctx, "/mpesa/stkpush/v1/processrequest", req, map[string]string{
				"Authorization": "Bearer " + token,
			}, &resp)
			if err != nil {
				return err
			}
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("mpesa returned status %d", status)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("mpesa stk push failed: %w", err)
	}
	if resp.ResponseCode != "0" || resp.CheckoutRequestID == "" {
		return nil, fmt.Errorf("mpesa rejected stk push: %s", resp.ResponseDescription)
	}

	return &models.InitiateResult{
		TransactionID:     payment.ID,
		Provider:          models.ProviderMpesa,
		ProviderReference: resp.CheckoutRequestID,
		PollToken:         resp.CheckoutRequestID,
	}, nil
}

type mpesaCallbackPayload struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ParseCallback validates the shared callback token and normalizes the STK
// result.
func (m *Mpesa) ParseCallback(r *http.Request, body []byte) (*models.PaymentOutcome, error) {
	token := r.URL.Query().Get("token")
	if m.cfg.CallbackSecret == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(m.cfg.CallbackSecret)) != 1 {
		return nil, payments.ErrInvalidSignature
	}

	var payload mpesaCallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse mpesa callback: %w", err)
	}

	cb := payload.Body.StkCallback
	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		ProviderReference: cb.CheckoutRequestID,
		OccurredAt:        time.Now().UTC(),
	}

	if cb.ResultCode == 0 {
		outcome.Status = models.OutcomeCompleted
		for _, item := range cb.CallbackMetadata.Item {
			if item.Name == "Amount" {
				if amount, ok := item.Value.(float64); ok {
					outcome.Amount = decimal.NewFromFloat(amount)
				}
			}
		}
	} else {
		outcome.Status = models.OutcomeFailed
		outcome.FailureReason = cb.ResultDesc
	}

	return outcome, nil
}

type mpesaQueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// Verify queries the STK push status. A missing or in-flight result stays
// pending; only explicit result codes are terminal.
func (m *Mpesa) Verify(ctx context.Context, payment *models.PaymentTransaction) (*models.PaymentOutcome, error) {
	token, err := m.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	req := map[string]string{
		"BusinessShortCode": m.cfg.ShortCode,
		"Password":          m.stkPassword(timestamp),
		"Timestamp":         timestamp,
		"CheckoutRequestID": payment.ProviderReference,
	}

	var resp mpesaQueryResponse
	var httpStatus int
	err = m.breaker.Execute(ctx, func(ctx context.Context) error {
		return m.retrier.Execute(ctx, func(ctx context.Context) error {
			status, err := m.client.PostJSON(ctx, "/mpesa/stkpushquery/v1/query", req, map[string]string{
				"Authorization": "Bearer " + token,
			}, &resp)
			if err != nil {
				return err
			}
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("mpesa returned status %d", status)
			}
			httpStatus = status
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("mpesa status query failed: %w", err)
	}

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		ProviderReference: payment.ProviderReference,
		MerchantReference: payment.ID.String(),
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		OccurredAt:        time.Now().UTC(),
	}

	// The API answers 400/404 for a CheckoutRequestID it does not know or
	// has already expired. That attempt is dead, not in flight.
	if httpStatus == http.StatusBadRequest || httpStatus == http.StatusNotFound {
		outcome.Status = models.OutcomeFailed
		outcome.FailureReason = resp.ResultDesc
		if outcome.FailureReason == "" {
			outcome.FailureReason = "checkout request not found or expired"
		}
		return outcome, nil
	}

	switch resp.ResultCode {
	case "0":
		outcome.Status = models.OutcomeCompleted
	case "":
		// query accepted but no result yet
		outcome.Status = models.OutcomePending
	default:
		outcome.Status = models.OutcomeFailed
		outcome.FailureReason = resp.ResultDesc
	}

	return outcome, nil
}

// stkPassword derives the request password from shortcode, passkey and
// timestamp as the API requires.
func (m *Mpesa) stkPassword(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(m.cfg.ShortCode + m.cfg.PassKey + timestamp))
}
