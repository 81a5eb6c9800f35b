package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property is the read-only view the property directory exposes. The engine
// only needs the rent basis and availability; everything else about a
// property lives in the directory service.
type Property struct {
	ID          uuid.UUID       `json:"id"`
	LandlordID  uuid.UUID       `json:"landlord_id"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Currency    string          `json:"currency"`
	Available   bool            `json:"available"`
}
