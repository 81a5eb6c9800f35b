package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/payments"
)

func TestFlutterwave_ParseCallback_ValidHash(t *testing.T) {
	// Arrange
	flw := NewFlutterwave(models.FlutterwaveConfig{WebhookHash: "secret-hash"}, nil)

	body := []byte(`{
		"event": "charge.completed",
		"data": {
			"tx_ref": "5a0b2c3d-0000-0000-0000-000000000000",
			"flw_ref": "FLW-MOCK-1",
			"amount": 25000,
			"currency": "KES",
			"status": "successful"
		}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/flutterwave/callback", nil)
	req.Header.Set("verif-hash", "secret-hash")

	// Act
	outcome, err := flw.ParseCallback(req, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Status)
	assert.Equal(t, "5a0b2c3d-0000-0000-0000-000000000000", outcome.ProviderReference)
	assert.True(t, outcome.Amount.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, "KES", outcome.Currency)
}

func TestFlutterwave_ParseCallback_BadHash(t *testing.T) {
	// Arrange
	flw := NewFlutterwave(models.FlutterwaveConfig{WebhookHash: "secret-hash"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/payments/flutterwave/callback", nil)
	req.Header.Set("verif-hash", "wrong")

	// Act
	outcome, err := flw.ParseCallback(req, []byte(`{}`))

	// Assert
	assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	assert.Nil(t, outcome)
}

func TestFlutterwave_ParseCallback_FailedCharge(t *testing.T) {
	// Arrange
	flw := NewFlutterwave(models.FlutterwaveConfig{WebhookHash: "secret-hash"}, nil)
	body := []byte(`{
		"event": "charge.completed",
		"data": {
			"tx_ref": "ref-1",
			"status": "failed",
			"processor_response": "card declined"
		}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/flutterwave/callback", nil)
	req.Header.Set("verif-hash", "secret-hash")

	// Act
	outcome, err := flw.ParseCallback(req, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Equal(t, "card declined", outcome.FailureReason)
}

func TestFlutterwave_Initiate_ReturnsCheckoutLink(t *testing.T) {
	// Arrange
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v3/payments", r.URL.Path)

		var req flwPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "25000", req.Amount)
		assert.Equal(t, "KES", req.Currency)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "success",
			"message": "Hosted Link",
			"data":    map[string]string{"link": "https://checkout.example/pay/abc"},
		})
	}))
	defer server.Close()

	flw := NewFlutterwave(models.FlutterwaveConfig{
		BaseURL:   server.URL,
		SecretKey: "sk_test",
		Timeout:   5,
	}, nil)

	payment := &models.PaymentTransaction{
		ID:       uuid.New(),
		Amount:   decimal.NewFromInt(25000),
		Currency: "KES",
	}

	// Act
	result, err := flw.Initiate(context.Background(), payment)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/pay/abc", result.RedirectURL)
	assert.Equal(t, payment.ID.String(), result.ProviderReference)
	assert.Equal(t, "Bearer sk_test", gotAuth)
}

func TestMpesa_ParseCallback_SuccessResult(t *testing.T) {
	// Arrange
	m := NewMpesa(models.MpesaConfig{CallbackSecret: "cb-token"}, "http://localhost", nil)

	body := []byte(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "mr-1",
				"CheckoutRequestID": "ws_CO_123456",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": 25000},
						{"Name": "MpesaReceiptNumber", "Value": "QHX12345"}
					]
				}
			}
		}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/mpesa/callback?token=cb-token", nil)

	// Act
	outcome, err := m.ParseCallback(req, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Status)
	assert.Equal(t, "ws_CO_123456", outcome.ProviderReference)
	assert.True(t, outcome.Amount.Equal(decimal.NewFromInt(25000)))
}

func TestMpesa_ParseCallback_CancelledByUser(t *testing.T) {
	// Arrange
	m := NewMpesa(models.MpesaConfig{CallbackSecret: "cb-token"}, "http://localhost", nil)
	body := []byte(`{
		"Body": {
			"stkCallback": {
				"CheckoutRequestID": "ws_CO_123456",
				"ResultCode": 1032,
				"ResultDesc": "Request cancelled by user"
			}
		}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/mpesa/callback?token=cb-token", nil)

	// Act
	outcome, err := m.ParseCallback(req, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Equal(t, "Request cancelled by user", outcome.FailureReason)
}

func TestMpesa_ParseCallback_MissingToken(t *testing.T) {
	// Arrange
	m := NewMpesa(models.MpesaConfig{CallbackSecret: "cb-token"}, "http://localhost", nil)
	req := httptest.NewRequest(http.MethodPost, "/payments/mpesa/callback", nil)

	// Act
	outcome, err := m.ParseCallback(req, []byte(`{}`))

	// Assert
	assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	assert.Nil(t, outcome)
}

func TestAirtel_ParseCallback_ValidSignature(t *testing.T) {
	// Arrange
	a := NewAirtel(models.AirtelConfig{WebhookSecret: "hmac-secret"}, nil)

	body := []byte(`{"transaction":{"id":"agw-1","message":"ok","status_code":"TS","airtel_money_id":"AM-99"}}`)
	mac := hmac.New(sha256.New, []byte("hmac-secret"))
	mac.Write(body)

	req := httptest.NewRequest(http.MethodPost, "/payments/airtel/callback", nil)
	req.Header.Set("X-Auth-Signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	// Act
	outcome, err := a.ParseCallback(req, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Status)
	assert.Equal(t, "agw-1", outcome.ProviderReference)
}

func TestAirtel_ParseCallback_TamperedBody(t *testing.T) {
	// Arrange: the signature was computed over a different body
	a := NewAirtel(models.AirtelConfig{WebhookSecret: "hmac-secret"}, nil)

	original := []byte(`{"transaction":{"id":"agw-1","status_code":"TS"}}`)
	mac := hmac.New(sha256.New, []byte("hmac-secret"))
	mac.Write(original)

	tampered := []byte(`{"transaction":{"id":"agw-2","status_code":"TS"}}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/airtel/callback", nil)
	req.Header.Set("X-Auth-Signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	// Act
	outcome, err := a.ParseCallback(req, tampered)

	// Assert
	assert.ErrorIs(t, err, payments.ErrInvalidSignature)
	assert.Nil(t, outcome)
}

func TestAirtel_ParseCallback_FailureCode(t *testing.T) {
	// Arrange
	a := NewAirtel(models.AirtelConfig{WebhookSecret: "hmac-secret"}, nil)

	body := []byte(`{"transaction":{"id":"agw-1","message":"insufficient balance","status_code":"TF"}}`)
	mac := hmac.New(sha256.New, []byte("hmac-secret"))
	mac.Write(body)

	req := httptest.NewRequest(http.MethodPost, "/payments/airtel/callback", nil)
	req.Header.Set("X-Auth-Signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	// Act
	outcome, err := a.ParseCallback(req, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Equal(t, "insufficient balance", outcome.FailureReason)
}

func TestRegistry_ResolvesByName(t *testing.T) {
	// Arrange
	flw := NewFlutterwave(models.FlutterwaveConfig{}, nil)
	mp := NewMpesa(models.MpesaConfig{}, "http://localhost", nil)
	registry := payments.NewRegistry(flw, mp)

	// Act
	got, err := registry.Get(models.ProviderFlutterwave)
	_, missingErr := registry.Get(models.ProviderAirtel)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.ProviderFlutterwave, got.Name())
	assert.ErrorIs(t, missingErr, payments.ErrUnknownProvider)
}

func TestMpesa_STKPasswordDerivation(t *testing.T) {
	// Arrange
	m := NewMpesa(models.MpesaConfig{ShortCode: "174379", PassKey: "passkey"}, "http://localhost", nil)
	timestamp := time.Date(2026, 8, 28, 12, 30, 45, 0, time.UTC).Format("20060102150405")

	// Act
	password := m.stkPassword(timestamp)

	// Assert
	expected := base64.StdEncoding.EncodeToString([]byte("174379" + "passkey" + "20260828123045"))
	assert.Equal(t, expected, password)
}

func TestFlutterwave_Verify_UnknownReferenceIsFailed(t *testing.T) {
	// Arrange: the gateway has no record of the reference
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/transactions/verify_by_reference", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": "No transaction was found for this id",
			"data":    nil,
		})
	}))
	defer server.Close()

	flw := NewFlutterwave(models.FlutterwaveConfig{
		BaseURL:   server.URL,
		SecretKey: "sk_test",
		Timeout:   5,
	}, nil)

	payment := &models.PaymentTransaction{
		ID:                uuid.New(),
		ProviderReference: "dead-ref",
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}

	// Act
	outcome, err := flw.Verify(context.Background(), payment)

	// Assert: a dead reference terminates the attempt instead of leaving
	// it pending for every future sweep
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Equal(t, "No transaction was found for this id", outcome.FailureReason)
}

func TestMpesa_Verify_ExpiredCheckoutRequestIsFailed(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok", "expires_in": "3599"})
			return
		}
		assert.Equal(t, "/mpesa/stkpushquery/v1/query", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"requestId":    "1234-5678",
			"errorCode":    "400.002.02",
			"errorMessage": "Invalid CheckoutRequestID",
		})
	}))
	defer server.Close()

	m := NewMpesa(models.MpesaConfig{
		BaseURL:   server.URL,
		ShortCode: "174379",
		PassKey:   "passkey",
		Timeout:   5,
	}, "http://localhost", nil)

	payment := &models.PaymentTransaction{
		ID:                uuid.New(),
		ProviderReference: "ws_CO_000000000000",
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}

	// Act
	outcome, err := m.Verify(context.Background(), payment)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Equal(t, "checkout request not found or expired", outcome.FailureReason)
}

func TestAirtel_Verify_UnknownIDIsFailed(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/oauth2/token" {
			json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "tok", "expires_in": 3600})
			return
		}
		assert.Equal(t, "/standard/v1/payments/dead-id", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	a := NewAirtel(models.AirtelConfig{
		BaseURL: server.URL,
		Timeout: 5,
	}, nil)

	payment := &models.PaymentTransaction{
		ID:                uuid.New(),
		ProviderReference: "dead-id",
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}

	// Act
	outcome, err := a.Verify(context.Background(), payment)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Equal(t, "transaction not found for id", outcome.FailureReason)
}

func TestAirtel_Verify_InProgressStaysPending(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/oauth2/token" {
			json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "tok", "expires_in": 3600})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"transaction": map[string]interface{}{
					"id":      "txn-1",
					"status":  "TIP",
					"message": "transaction in progress",
				},
			},
		})
	}))
	defer server.Close()

	a := NewAirtel(models.AirtelConfig{BaseURL: server.URL, Timeout: 5}, nil)

	payment := &models.PaymentTransaction{
		ID:                uuid.New(),
		ProviderReference: "txn-1",
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}

	// Act
	outcome, err := a.Verify(context.Background(), payment)

	// Assert: an in-flight result is the one case that stays pending
	require.NoError(t, err)
	assert.Equal(t, models.OutcomePending, outcome.Status)
}
