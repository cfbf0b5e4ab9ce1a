package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/amlview/backend/src/models"
)

func defaults() models.Thresholds { return models.DefaultThresholds() }

func deposit(id int, acNum, date string, amount float64) models.Transaction {
	return models.Transaction{
		ID: id, AcNum: acNum, Name: "Holder " + acNum, Date: date,
		Amount: amount, Type: models.TypeDeposit,
	}
}

func withdrawal(id int, acNum, date string, amount float64) models.Transaction {
	return models.Transaction{
		ID: id, AcNum: acNum, Name: "Holder " + acNum, Date: date,
		Amount: amount, Type: models.TypeWithdrawal,
	}
}

func TestHighValue(t *testing.T) {
	tx := deposit(1, "AC-1", "2026-01-05", 600000)
	got := HighValue(tx, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "high_value", got[0].Flag)
	assert.Equal(t, "SC3", got[0].SuspCode)
	assert.Equal(t, "High value: 600000.00 > 500000", got[0].Reason)

	// Boundary: equal to threshold does not fire.
	assert.Empty(t, HighValue(deposit(2, "AC-1", "2026-01-05", 500000), defaults()))
}

func TestLargeCashDeposit(t *testing.T) {
	tx := deposit(1, "AC-1", "2026-01-05", 150000)
	tx.IsCash = true
	got := LargeCashDeposit(tx, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "cash_deposit", got[0].Flag)
	assert.Equal(t, "SC4", got[0].SuspCode)

	tx.IsCash = false
	assert.Empty(t, LargeCashDeposit(tx, defaults()))

	wd := withdrawal(2, "AC-1", "2026-01-05", 150000)
	wd.IsCash = true
	assert.Empty(t, LargeCashDeposit(wd, defaults()))
}

func TestDepositHighRisk(t *testing.T) {
	tx := deposit(1, "AC-1", "2026-01-05", 600000)
	tx.Country = "IR"
	got := DepositHighRisk(tx, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "deposit_high_risk", got[0].Flag)
	assert.Equal(t, "SC1", got[0].SuspCode)

	tx.Country = "CH"
	assert.Empty(t, DepositHighRisk(tx, defaults()))

	small := deposit(2, "AC-1", "2026-01-05", 100)
	small.Country = "KP"
	assert.Empty(t, DepositHighRisk(small, defaults()))
}

func TestFlaggedAccount(t *testing.T) {
	tx := deposit(1, "AC-1", "2026-01-05", 600000)
	tx.IsFlagged = true
	tx.FlagReason = "prior STR"
	got := FlaggedAccount(tx, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "flagged_account", got[0].Flag)
	assert.Contains(t, got[0].Reason, "prior STR")

	tx.IsFlagged = false
	assert.Empty(t, FlaggedAccount(tx, defaults()))
}
