package models

import (
	"fmt"
	"time"
)

// Transaction types produced by the import pipeline.
const (
	TypeDeposit    = "Deposit"
	TypeWithdrawal = "Withdrawal"
	TypeBuy        = "Buy"
	TypeSell       = "Sell"
)

// DateLayout is the calendar-date format used everywhere in the engine
// (ISO 8601, no time component).
const DateLayout = "2006-01-02"

// Transaction is the canonical, normalized financial event. Every field is
// populated at normalization time; enrichment fields default to their zero
// value when the source file does not carry them and can be edited later
// through the transaction update endpoint.
type Transaction struct {
	ID        int     `json:"id"`
	Date      string  `json:"date"` // ISO calendar date
	OrNo      string  `json:"orNo"`
	AcNum     string  `json:"acNum"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Balance   float64 `json:"balance"`
	BankCode  string  `json:"bankCode"`
	Country   string  `json:"country"`
	IsCash    bool    `json:"isCash"`
	CheckNo   string  `json:"checkNo"`
	CheckDate string  `json:"checkDate"`
	UserID    string  `json:"userId"`
	Stat      string  `json:"stat"`
	Type      string  `json:"type"`

	// Enrichment fields.
	Email            string `json:"email"`
	EmploymentStatus string `json:"employmentStatus"`
	IsFlagged        bool   `json:"isFlagged"`
	FlagReason       string `json:"flagReason"`
	ContactChanges   string `json:"contactChanges"` // comma-separated ISO dates
	Mot              int    `json:"mot"`
	Purpose          string `json:"purpose"`
	ProductType      string `json:"productType"`
	IDType           string `json:"idType"`
	IDNo             string `json:"idNo"`
	SourceFund       string `json:"sourceFund"`
	CurrencyCode     string `json:"currencyCode"`
	CityCode         string `json:"cityCode"`
}

// Validate checks the transaction against the canonical schema. A row that
// fails validation is excluded from the collection, never partially admitted.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d", t.ID)
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", t.Date, err)
	}
	if t.CheckDate != "" {
		if _, err := time.Parse(DateLayout, t.CheckDate); err != nil {
			return fmt.Errorf("invalid check date %q: %w", t.CheckDate, err)
		}
	}
	switch t.Type {
	case TypeDeposit, TypeWithdrawal, TypeBuy, TypeSell:
	default:
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %f", t.Amount)
	}
	if t.Balance < 0 {
		return fmt.Errorf("balance must be non-negative, got %f", t.Balance)
	}
	return nil
}

// TransactionPatch carries the editable enrichment fields for an existing
// transaction. Nil pointers leave the current value untouched.
type TransactionPatch struct {
	Email            *string  `json:"email,omitempty"`
	EmploymentStatus *string  `json:"employmentStatus,omitempty"`
	IsFlagged        *bool    `json:"isFlagged,omitempty"`
	FlagReason       *string  `json:"flagReason,omitempty"`
	Balance          *float64 `json:"balance,omitempty"`
	ContactChanges   *string  `json:"contactChanges,omitempty"`
	Country          *string  `json:"country,omitempty"`
}
