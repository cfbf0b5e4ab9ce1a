package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/amlview/backend/src/models"
)

func TestQuickWithdraw(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 1000),
		withdrawal(2, "AC-1", "2026-01-10", 600),
	}
	got := QuickWithdraw(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "quick_withdraw", got[0].Flag)
	assert.Equal(t, "Quick withdraw 600.00 after deposit 1000.00", got[0].Reason)
	assert.Equal(t, "2026-01-10", got[0].Date)
}

func TestQuickWithdrawIgnoresEarlierWithdrawal(t *testing.T) {
	// A withdrawal before the deposit never pairs with it.
	acct := []models.Transaction{
		withdrawal(1, "AC-1", "2026-01-01", 600),
		deposit(2, "AC-1", "2026-01-10", 1000),
	}
	assert.Empty(t, QuickWithdraw(acct, defaults()))
}

func TestQuickWithdrawOutsideWindow(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 1000),
		withdrawal(2, "AC-1", "2026-03-01", 999),
	}
	assert.Empty(t, QuickWithdraw(acct, defaults()))
}

func TestQuickWithdrawBelowPercentage(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 1000),
		withdrawal(2, "AC-1", "2026-01-05", 400),
	}
	assert.Empty(t, QuickWithdraw(acct, defaults()))
}

func TestCustomerCashTotal(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-01", 600000)
	d1.IsCash = true
	d2 := deposit(2, "AC-1", "2026-02-01", 500000)
	d2.IsCash = true
	nonCash := deposit(3, "AC-1", "2026-02-02", 900000)
	acct := []models.Transaction{d1, d2, nonCash}

	got := CustomerCashTotal(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "customer_cash_total", got[0].Flag)
	assert.Equal(t, "PC1", got[0].SuspCode)
	assert.Equal(t, 1100000.0, got[0].Amount)
	assert.Equal(t, "Multiple", got[0].BankCode)
	// Dated at the account's last transaction.
	assert.Equal(t, "2026-02-02", got[0].Date)
}

func TestCustomerCashTotalIgnoresNonCash(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 2000000),
	}
	assert.Empty(t, CustomerCashTotal(acct, defaults()))
}

func TestMultipleDeposits(t *testing.T) {
	mk := func(id int, date, bank string, amount float64) models.Transaction {
		tx := deposit(id, "AC-1", date, amount)
		tx.BankCode = bank
		return tx
	}
	acct := []models.Transaction{
		mk(1, "2026-01-01", "BPI", 200000),
		mk(2, "2026-01-10", "BDO", 200000),
		mk(3, "2026-01-20", "UBP", 200000),
	}
	got := MultipleDeposits(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "multiple_deposits", got[0].Flag)
	assert.Equal(t, 600000.0, got[0].Amount)
	assert.Equal(t, "2026-01-20", got[0].Date)
}

func TestMultipleDepositsNeedsDistinctBanks(t *testing.T) {
	mk := func(id int, date string, amount float64) models.Transaction {
		tx := deposit(id, "AC-1", date, amount)
		tx.BankCode = "BPI"
		return tx
	}
	acct := []models.Transaction{
		mk(1, "2026-01-01", 300000),
		mk(2, "2026-01-10", 300000),
		mk(3, "2026-01-20", 300000),
	}
	assert.Empty(t, MultipleDeposits(acct, defaults()))
}

func TestMultipleDepositsWindowAnchoredToAccountMaxDate(t *testing.T) {
	mk := func(id int, date, bank string, amount float64) models.Transaction {
		tx := deposit(id, "AC-1", date, amount)
		tx.BankCode = bank
		return tx
	}
	// The first deposit is outside the 30-day trailing window ending at the
	// account's latest date, so only two banks remain.
	acct := []models.Transaction{
		mk(1, "2025-10-01", "BPI", 200000),
		mk(2, "2026-01-10", "BDO", 200000),
		mk(3, "2026-01-20", "UBP", 200000),
	}
	assert.Empty(t, MultipleDeposits(acct, defaults()))
}

func TestTotalValueOverTimePerType(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 300000),
		deposit(2, "AC-1", "2026-01-15", 300000),
		withdrawal(3, "AC-1", "2026-01-20", 100),
	}
	got := TotalValueOverTime(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "total_value_over_time", got[0].Flag)
	assert.Equal(t, models.TypeDeposit, got[0].Type)
	assert.Equal(t, 600000.0, got[0].Amount)
}

func TestInactivityDeposit(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 100),
		deposit(2, "AC-1", "2026-05-01", 600000),
	}
	got := InactivityDeposit(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "inactivity_deposit", got[0].Flag)
	assert.Equal(t, "SC5", got[0].SuspCode)
	assert.Equal(t, "2026-05-01", got[0].Date)
}

func TestInactivityDepositShortGap(t *testing.T) {
	acct := []models.Transaction{
		deposit(1, "AC-1", "2026-01-01", 100),
		deposit(2, "AC-1", "2026-02-01", 600000),
	}
	assert.Empty(t, InactivityDeposit(acct, defaults()))
}

func TestPositionEmployment(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-01", 600000)
	d1.EmploymentStatus = "unemployed"
	d2 := deposit(2, "AC-1", "2026-01-10", 600000)
	acct := []models.Transaction{d1, d2}

	got := PositionEmployment(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "position_employment", got[0].Flag)
	assert.Equal(t, 1200000.0, got[0].Amount)
	assert.Equal(t, "Group", got[0].Type)
}

func TestPositionEmploymentEmployedNotFlagged(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-01", 2000000)
	d1.EmploymentStatus = "employed"
	assert.Empty(t, PositionEmployment([]models.Transaction{d1}, defaults()))
}

func TestUndeployedCash(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-01", 100)
	d1.Balance = 600000
	d2 := deposit(2, "AC-1", "2026-01-15", 100)
	d2.Balance = 700000
	acct := []models.Transaction{d1, d2}

	got := UndeployedCash(acct, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "undeployed_cash", got[0].Flag)
	assert.Equal(t, 650000.0, got[0].Amount)
}

func TestUndeployedCashWithdrawalSuppresses(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-01", 100)
	d1.Balance = 600000
	wd := withdrawal(2, "AC-1", "2026-01-15", 10)
	wd.Balance = 600000
	assert.Empty(t, UndeployedCash([]models.Transaction{d1, wd}, defaults()))
}

func TestContactChanges(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-20", 100)
	d1.ContactChanges = "2026-01-05, 2026-01-12"
	got := ContactChanges([]models.Transaction{d1}, defaults())
	require.Len(t, got, 1)
	assert.Equal(t, "contact_changes", got[0].Flag)
	assert.Equal(t, "SC5", got[0].SuspCode)
}

func TestContactChangesBelowThreshold(t *testing.T) {
	d1 := deposit(1, "AC-1", "2026-01-20", 100)
	d1.ContactChanges = "2026-01-05"
	assert.Empty(t, ContactChanges([]models.Transaction{d1}, defaults()))
}

func TestSameEmailDifferentNamesAcrossAccounts(t *testing.T) {
	a := deposit(1, "AC-1", "2026-01-01", 100)
	a.Email = "shared@example.com"
	b := deposit(2, "AC-2", "2026-01-02", 100)
	b.Email = "shared@example.com"
	b.Name = "Other Person"
	all := []models.Transaction{a, b}

	gotA := SameEmailDifferentNames([]models.Transaction{a}, all)
	require.Len(t, gotA, 1)
	assert.Equal(t, "same_email_different_names", gotA[0].Flag)
	assert.Equal(t, "SC2", gotA[0].SuspCode)
	assert.Equal(t, "AC-1", gotA[0].AcNum)
	assert.Equal(t, "Email shared@example.com used by multiple names: Holder AC-1, Other Person", gotA[0].Reason)

	gotB := SameEmailDifferentNames([]models.Transaction{b}, all)
	require.Len(t, gotB, 1)
	assert.Equal(t, "AC-2", gotB[0].AcNum)
}

func TestSameEmailSameNameNotFlagged(t *testing.T) {
	a := deposit(1, "AC-1", "2026-01-01", 100)
	a.Email = "same@example.com"
	b := deposit(2, "AC-2", "2026-01-02", 100)
	b.Email = "same@example.com"
	b.Name = a.Name
	all := []models.Transaction{a, b}

	assert.Empty(t, SameEmailDifferentNames([]models.Transaction{a}, all))
}
