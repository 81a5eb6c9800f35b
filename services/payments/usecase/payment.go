package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/constants"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/payments"
	"github.com/mwangi/kodisha/services/reservations"
)

// PaymentUC implements payment initiation, webhook ingestion and
// reconciliation. Webhook processing is guarded three deep: a durable
// delivery record, a per-reference distributed lock, and the terminal
// status check under the database row lock.
type PaymentUC struct {
	cfg           *models.Config
	paymentRepo   payments.PaymentRepo
	lockManager   payments.LockManager
	registry      *payments.Registry
	reservationUC reservations.ReservationUC
}

// NewPaymentUC creates a new payment usecase
func NewPaymentUC(
	cfg *models.Config,
	paymentRepo payments.PaymentRepo,
	lockManager payments.LockManager,
	registry *payments.Registry,
	reservationUC reservations.ReservationUC,
) *PaymentUC {
	return &PaymentUC{
		cfg:           cfg,
		paymentRepo:   paymentRepo,
		lockManager:   lockManager,
		registry:      registry,
		reservationUC: reservationUC,
	}
}

// InitiatePayment starts a payment attempt against the reservation's open
// invoice. The transaction row exists before the provider is contacted, so
// even an instant callback finds something to match.
func (uc *PaymentUC) InitiatePayment(ctx context.Context, tenantID uuid.UUID, providerName models.PaymentProvider, req models.InitiatePaymentRequest) (*models.InitiateResult, error) {
	adapter, err := uc.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, reservations.ErrReservationNotFound
	}

	reservation, err := uc.paymentRepo.GetPayableReservation(ctx, tenantID, reservationID)
	if err != nil {
		return nil, err
	}

	invoice, err := uc.paymentRepo.GetOpenInvoice(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	payment := &models.PaymentTransaction{
		ID:            uuid.New(),
		ReservationID: reservation.ID,
		InvoiceID:     invoice.ID,
		Provider:      providerName,
		Status:        models.TransactionStatusInitiated,
		Amount:        invoice.Outstanding(),
		Currency:      invoice.Currency,
		Msisdn:        req.Msisdn,
		CreatedAt:     time.Now().UTC(),
	}
	// the provider reference defaults to our id until the provider assigns one
	payment.ProviderReference = payment.ID.String()

	if err := uc.paymentRepo.CreateTransaction(ctx, payment); err != nil {
		return nil, err
	}

	result, err := adapter.Initiate(ctx, payment)
	if err != nil {
		if markErr := uc.paymentRepo.MarkTransactionFailed(ctx, payment.ID, err.Error()); markErr != nil {
			logger.Error("Failed to mark broken initiation",
				logger.String("transaction_id", payment.ID.String()),
				logger.Err(markErr))
		}
		logger.Warn("Payment initiation failed",
			logger.String("provider", string(providerName)),
			logger.String("transaction_id", payment.ID.String()),
			logger.Err(err))
		return nil, err
	}

	if result.ProviderReference != payment.ProviderReference {
		if err := uc.paymentRepo.SetProviderReference(ctx, payment.ID, result.ProviderReference); err != nil {
			return nil, err
		}
	}

	logger.Info("Payment initiated",
		logger.String("provider", string(providerName)),
		logger.String("transaction_id", payment.ID.String()),
		logger.String("provider_reference", result.ProviderReference),
		logger.String("amount", payment.Amount.String()))

	return result, nil
}

// HandleCallback ingests one provider callback delivery.
//
// The delivery is durably recorded before anything else, so a crash
// mid-processing loses nothing; the reconcile sweep picks up the rest.
// Processing failures after the record are absorbed (nil return) so the
// handler can acknowledge the provider; only an unknown provider or a bad
// signature surfaces as an error.
func (uc *PaymentUC) HandleCallback(ctx context.Context, providerName models.PaymentProvider, r *http.Request, body []byte) error {
	adapter, err := uc.registry.Get(providerName)
	if err != nil {
		return err
	}

	outcome, parseErr := adapter.ParseCallback(r, body)

	event := &models.WebhookEvent{
		ID:          uuid.New(),
		Provider:    providerName,
		Payload:     body,
		SignatureOK: !errors.Is(parseErr, payments.ErrInvalidSignature),
		ReceivedAt:  time.Now().UTC(),
	}
	if outcome != nil {
		event.ProviderReference = outcome.ProviderReference
	}
	if err := uc.paymentRepo.RecordWebhookEvent(ctx, event); err != nil {
		return err
	}

	if parseErr != nil {
		// Unauthenticated and malformed deliveries are acknowledged so the
		// provider stops redelivering them; the event row keeps the evidence.
		if errors.Is(parseErr, payments.ErrInvalidSignature) {
			logger.Warn("Discarding callback with bad signature",
				logger.String("provider", string(providerName)),
				logger.String("remote_addr", r.RemoteAddr))
			return nil
		}
		logger.Warn("Discarding unparseable callback",
			logger.String("provider", string(providerName)),
			logger.Err(parseErr))
		return nil
	}

	lockKey := fmt.Sprintf(constants.KeyWebhookLock, providerName, outcome.ProviderReference)
	acquired, err := uc.lockManager.AcquireLock(ctx, lockKey, constants.WebhookLockTTL)
	if err != nil {
		// lock store down: fall through to the row lock, which still
		// guarantees single application
		logger.Warn("Webhook lock unavailable, relying on row lock",
			logger.String("key", lockKey),
			logger.Err(err))
	} else if !acquired {
		logger.Info("Concurrent delivery already being processed",
			logger.String("provider", string(providerName)),
			logger.String("provider_reference", outcome.ProviderReference))
		return nil
	} else {
		defer func() {
			if err := uc.lockManager.ReleaseLock(ctx, lockKey); err != nil {
				logger.Warn("Failed to release webhook lock",
					logger.String("key", lockKey),
					logger.Err(err))
			}
		}()
	}

	payment, err := uc.paymentRepo.GetTransactionByReference(ctx, providerName, outcome.ProviderReference)
	if err != nil {
		if errors.Is(err, payments.ErrTransactionNotFound) {
			// unmatched deliveries stay recorded but unprocessed
			logger.Warn("Callback does not match any transaction",
				logger.String("provider", string(providerName)),
				logger.String("provider_reference", outcome.ProviderReference))
			return nil
		}
		logger.Error("Failed to match callback to transaction",
			logger.String("provider", string(providerName)),
			logger.Err(err))
		return nil
	}

	outcome.MerchantReference = payment.ID.String()
	if outcome.Amount.IsZero() {
		outcome.Amount = payment.Amount
		outcome.Currency = payment.Currency
	}

	if err := uc.reservationUC.ApplyPaymentOutcome(ctx, outcome); err != nil {
		if !errors.Is(err, reservations.ErrStaleTransition) {
			// left unprocessed so the reconcile sweep retries it
			logger.Error("Failed to apply callback outcome",
				logger.String("transaction_id", payment.ID.String()),
				logger.Err(err))
			return nil
		}
	}

	if err := uc.paymentRepo.MarkWebhookProcessed(ctx, event.ID); err != nil {
		logger.Warn("Failed to stamp webhook event",
			logger.String("event_id", event.ID.String()),
			logger.Err(err))
	}

	return nil
}

// VerifyTransaction reconciles one transaction against the provider's
// authoritative record. Terminal transactions are returned as-is.
func (uc *PaymentUC) VerifyTransaction(ctx context.Context, transactionID uuid.UUID) (*models.PaymentTransaction, error) {
	payment, err := uc.paymentRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if payment.Status.Terminal() {
		return payment, nil
	}

	adapter, err := uc.registry.Get(payment.Provider)
	if err != nil {
		return nil, err
	}

	outcome, err := adapter.Verify(ctx, payment)
	if err != nil {
		return nil, err
	}
	if outcome.Status == models.OutcomePending {
		return payment, nil
	}

	outcome.MerchantReference = payment.ID.String()
	if err := uc.reservationUC.ApplyPaymentOutcome(ctx, outcome); err != nil &&
		!errors.Is(err, reservations.ErrStaleTransition) {
		return nil, err
	}

	return uc.paymentRepo.GetTransaction(ctx, transactionID)
}

// VerifyPending sweeps initiated transactions whose callbacks are overdue.
// One broken provider must not stall the batch, so errors are logged per
// transaction and the sweep continues.
func (uc *PaymentUC) VerifyPending(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-time.Duration(uc.cfg.Scheduler.VerifyAfter) * time.Minute)
	pending, err := uc.paymentRepo.ListPendingVerification(ctx, cutoff, uc.cfg.Scheduler.BatchSize)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	logger.Info("Reconciling overdue transactions", logger.Int("count", len(pending)))

	for _, payment := range pending {
		if _, err := uc.VerifyTransaction(ctx, payment.ID); err != nil {
			logger.Warn("Reconciliation failed for transaction",
				logger.String("transaction_id", payment.ID.String()),
				logger.String("provider", string(payment.Provider)),
				logger.Err(err))
		}
	}

	return nil
}
