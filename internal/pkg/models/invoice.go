package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusOpen          InvoiceStatus = "open"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusVoid          InvoiceStatus = "void"
)

// InvoiceKind distinguishes the initial reservation invoice from recurring
// occupancy renewal charges.
type InvoiceKind string

const (
	InvoiceKindReservation InvoiceKind = "reservation"
	InvoiceKindRenewal     InvoiceKind = "renewal"
)

// Invoice is a billing record derived from a reservation or a recurring
// occupancy charge. Its lifecycle is independent of any single payment
// transaction: one invoice may be settled by several completed transactions.
type Invoice struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ReservationID uuid.UUID       `json:"reservation_id" db:"reservation_id"`
	Kind          InvoiceKind     `json:"kind" db:"kind"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	Currency      string          `json:"currency" db:"currency"`
	Status        InvoiceStatus   `json:"status" db:"status"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// Outstanding returns the unpaid remainder of the invoice
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Amount.Sub(i.AmountPaid)
}
