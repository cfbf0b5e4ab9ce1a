package processors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/parsers/registers"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func dwRow(vals map[int]string) registers.Row {
	cells := make([]string, 10)
	for i, v := range vals {
		cells[i] = v
	}
	return registers.Row{Cells: cells}
}

func bsRow(vals map[int]string, selling bool) registers.Row {
	cells := make([]string, 19)
	for i, v := range vals {
		cells[i] = v
	}
	return registers.Row{Cells: cells, Selling: selling}
}

func TestProcessDepositRow(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []registers.Row{
		dwRow(map[int]string{
			registers.DWDate:     "2026-01-05",
			registers.DWOrNo:     "OR-1",
			registers.DWAcNum:    "AC-1",
			registers.DWName:     " Jane Cruz ",
			registers.DWAmount:   "150,000.50",
			registers.DWBankCode: "CASH",
			registers.DWUserID:   "teller1",
		}),
	}

	txs := p.Process(rows, registers.KindDeposit, 1)
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, 1, tx.ID)
	assert.Equal(t, "2026-01-05", tx.Date)
	assert.Equal(t, "OR-1", tx.OrNo)
	assert.Equal(t, "Jane Cruz", tx.Name)
	assert.Equal(t, 150000.50, tx.Amount)
	assert.Equal(t, models.TypeDeposit, tx.Type)
	assert.True(t, tx.IsCash)
	assert.Equal(t, "USD", tx.CurrencyCode)
}

func TestProcessWithdrawalNotCash(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []registers.Row{
		dwRow(map[int]string{
			registers.DWDate:     "2026-01-05",
			registers.DWAcNum:    "AC-1",
			registers.DWName:     "Jane",
			registers.DWAmount:   "500",
			registers.DWBankCode: "BPI",
		}),
	}

	txs := p.Process(rows, registers.KindWithdrawal, 1)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TypeWithdrawal, txs[0].Type)
	assert.False(t, txs[0].IsCash)
	assert.Equal(t, "BPI", txs[0].BankCode)
}

func TestProcessBuySellAmountAndType(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []registers.Row{
		bsRow(map[int]string{
			registers.BSDate:            "2026-01-05",
			registers.BSConfNo:          "C-1",
			registers.BSCustomerName:    "Jane",
			registers.BSTrader:          "B",
			registers.BSStockCode:       "ALI",
			registers.BSShares:          "100",
			registers.BSUnitPrice:       "2.50",
			registers.BSCustomerAccount: "AC-1",
		}, true), // section mode says selling; marker wins
		bsRow(map[int]string{
			registers.BSDate:            "2026-01-05",
			registers.BSCustomerName:    "Jane",
			registers.BSTrader:          "S",
			registers.BSShares:          "10",
			registers.BSUnitPrice:       "1",
			registers.BSCustomerAccount: "AC-1",
		}, false),
		bsRow(map[int]string{
			registers.BSDate:            "2026-01-05",
			registers.BSCustomerName:    "Jane",
			registers.BSShares:          "10",
			registers.BSUnitPrice:       "1",
			registers.BSCustomerAccount: "AC-1",
		}, true), // blank marker falls back to section mode
		bsRow(map[int]string{
			registers.BSDate:            "2026-01-05",
			registers.BSCustomerName:    "Jane",
			registers.BSShares:          "10",
			registers.BSUnitPrice:       "1",
			registers.BSCustomerAccount: "AC-1",
		}, false),
	}

	txs := p.Process(rows, registers.KindBuySell, 1)
	require.Len(t, txs, 4)

	assert.Equal(t, models.TypeBuy, txs[0].Type)
	assert.Equal(t, 250.0, txs[0].Amount)
	assert.Equal(t, "ALI", txs[0].ProductType)

	assert.Equal(t, models.TypeSell, txs[1].Type)
	assert.Equal(t, models.TypeSell, txs[2].Type)
	assert.Equal(t, models.TypeBuy, txs[3].Type)
}

func TestProcessDropsInvalidRowsKeepsSequence(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []registers.Row{
		dwRow(map[int]string{registers.DWDate: "2026-01-05", registers.DWAcNum: "AC-1", registers.DWAmount: "100"}),
		dwRow(map[int]string{registers.DWDate: "garbage", registers.DWAcNum: "AC-2", registers.DWAmount: "100"}),
		dwRow(map[int]string{registers.DWDate: "2026-01-06", registers.DWAcNum: "AC-3", registers.DWAmount: "100"}),
	}

	txs := p.Process(rows, registers.KindDeposit, 10)
	require.Len(t, txs, 2)
	assert.Equal(t, 10, txs[0].ID)
	assert.Equal(t, 11, txs[1].ID)
	assert.Equal(t, "AC-3", txs[1].AcNum)
}
