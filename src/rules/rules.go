// Package rules holds the AML detectors. Every detector is a pure function
// from a transaction (or an account's transaction set) and the active
// thresholds to zero or more raw flags; the engine in engine.go fans the
// transaction collection out over them in a fixed order so that flag
// generation is deterministic.
package rules

import (
	"fmt"
	"time"

	"github.com/username/amlview/backend/src/models"
)

// HighRiskCountries are the jurisdictions the deposit_high_risk detector
// screens against (FATF call-for-action list).
var HighRiskCountries = map[string]bool{
	"CU": true,
	"IR": true,
	"KP": true,
	"SY": true,
}

// RawFlag is an un-scored detection event. Empty or zero fields are filled
// from the representative transaction during assembly.
type RawFlag struct {
	Flag     string
	SuspCode string
	Reason   string
	AcNum    string
	Name     string
	Type     string
	Amount   float64
	Date     string
	BankCode string
}

// RowRule evaluates a single transaction.
type RowRule func(tx models.Transaction, t models.Thresholds) []RawFlag

// AccountRule evaluates one account's full transaction set.
type AccountRule func(acct []models.Transaction, t models.Thresholds) []RawFlag

func parseDay(s string) time.Time {
	d, _ := time.Parse(models.DateLayout, s)
	return d
}

// daysBetween is the whole number of days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ---------------------------------------------------------------------------
// Per-transaction detectors
// ---------------------------------------------------------------------------

func HighValue(tx models.Transaction, t models.Thresholds) []RawFlag {
	if tx.Amount > t.HighValue {
		return []RawFlag{{
			Flag:     "high_value",
			SuspCode: "SC3",
			Reason:   fmt.Sprintf("High value: %.2f > %v", tx.Amount, t.HighValue),
			AcNum:    tx.AcNum,
			Name:     tx.Name,
			Type:     tx.Type,
			Amount:   tx.Amount,
			Date:     tx.Date,
			BankCode: tx.BankCode,
		}}
	}
	return nil
}

func LargeCashDeposit(tx models.Transaction, t models.Thresholds) []RawFlag {
	if tx.Type == models.TypeDeposit && tx.IsCash && tx.Amount > t.CashDeposit {
		return []RawFlag{{
			Flag:     "cash_deposit",
			SuspCode: "SC4",
			Reason:   fmt.Sprintf("Large cash deposit: %.2f > %v", tx.Amount, t.CashDeposit),
			AcNum:    tx.AcNum,
			Name:     tx.Name,
			Type:     tx.Type,
			Amount:   tx.Amount,
			Date:     tx.Date,
			BankCode: tx.BankCode,
		}}
	}
	return nil
}

func DepositHighRisk(tx models.Transaction, t models.Thresholds) []RawFlag {
	if tx.Type == models.TypeDeposit && HighRiskCountries[tx.Country] && tx.Amount > t.HighValue {
		return []RawFlag{{
			Flag:     "deposit_high_risk",
			SuspCode: "SC1",
			Reason:   fmt.Sprintf("Deposit from high-risk jurisdiction %s > %v", tx.Country, t.HighValue),
			AcNum:    tx.AcNum,
			Name:     tx.Name,
			Type:     tx.Type,
			Amount:   tx.Amount,
			Date:     tx.Date,
			BankCode: tx.BankCode,
		}}
	}
	return nil
}

func FlaggedAccount(tx models.Transaction, t models.Thresholds) []RawFlag {
	if tx.IsFlagged && tx.Amount > t.HighValue {
		return []RawFlag{{
			Flag:     "flagged_account",
			SuspCode: "SC1",
			Reason:   fmt.Sprintf("Flagged account (%s) transacted > %v", tx.FlagReason, t.HighValue),
			AcNum:    tx.AcNum,
			Name:     tx.Name,
			Type:     tx.Type,
			Amount:   tx.Amount,
			Date:     tx.Date,
			BankCode: tx.BankCode,
		}}
	}
	return nil
}
