// Package processors turns repaired register rows into canonical
// transactions.
package processors

import (
	"strings"

	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/parsers/registers"
)

// CashMarker is the literal bank-code value the deposit/withdrawal register
// uses for over-the-counter cash.
const CashMarker = "CASH"

// TransactionProcessor maps repaired register rows to canonical
// transactions and validates them against the schema.
type TransactionProcessor struct{}

func NewTransactionProcessor() *TransactionProcessor { return &TransactionProcessor{} }

// Process converts rows into validated transactions. IDs are assigned
// sequentially starting at nextID, so an import appends to the existing
// collection without renumbering it. Rows that fail schema validation are
// dropped with a diagnostic; the batch continues.
func (p *TransactionProcessor) Process(rows []registers.Row, kind registers.ImportKind, nextID int) []models.Transaction {
	var txs []models.Transaction
	for i, row := range rows {
		var tx models.Transaction
		if kind == registers.KindBuySell {
			tx = p.mapBuySell(row)
		} else {
			tx = p.mapDepositWithdrawal(row, kind)
		}
		tx.ID = nextID + len(txs)

		if err := tx.Validate(); err != nil {
			logger.L.Warn("Dropping invalid register row", "kind", string(kind), "rowIndex", i, "error", err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs
}

func (p *TransactionProcessor) mapDepositWithdrawal(row registers.Row, kind registers.ImportKind) models.Transaction {
	bankCode := strings.TrimSpace(row.Cell(registers.DWBankCode))
	checkDate := ""
	if iso, ok := registers.ParseCellDate(row.Cell(registers.DWCheckDate)); ok {
		checkDate = iso
	}
	return models.Transaction{
		Date:         row.Cell(registers.DWDate),
		OrNo:         strings.TrimSpace(row.Cell(registers.DWOrNo)),
		AcNum:        strings.TrimSpace(row.Cell(registers.DWAcNum)),
		Name:         strings.TrimSpace(row.Cell(registers.DWName)),
		Amount:       registers.ParseCellFloat(row.Cell(registers.DWAmount)),
		BankCode:     bankCode,
		IsCash:       bankCode == CashMarker,
		CheckNo:      strings.TrimSpace(row.Cell(registers.DWCheckNo)),
		CheckDate:    checkDate,
		UserID:       strings.TrimSpace(row.Cell(registers.DWUserID)),
		Stat:         strings.TrimSpace(row.Cell(registers.DWStat)),
		Type:         string(kind),
		CurrencyCode: "USD",
	}
}

func (p *TransactionProcessor) mapBuySell(row registers.Row) models.Transaction {
	shares := registers.ParseCellFloat(row.Cell(registers.BSShares))
	unitPrice := registers.ParseCellFloat(row.Cell(registers.BSUnitPrice))

	// The trader-role marker is authoritative for the transaction type
	// ("B" means the house bought for the customer). Some sheets leave the
	// marker blank on continuation lines; those fall back to the
	// BUYING/SELLING section mode recorded during repair.
	txType := models.TypeSell
	switch marker := strings.TrimSpace(row.Cell(registers.BSTrader)); marker {
	case "B":
		txType = models.TypeBuy
	case "":
		if !row.Selling {
			txType = models.TypeBuy
		}
	}

	return models.Transaction{
		Date:         row.Cell(registers.BSDate),
		OrNo:         strings.TrimSpace(row.Cell(registers.BSConfNo)),
		AcNum:        strings.TrimSpace(row.Cell(registers.BSCustomerAccount)),
		Name:         strings.TrimSpace(row.Cell(registers.BSCustomerName)),
		Amount:       shares * unitPrice,
		BankCode:     strings.TrimSpace(row.Cell(registers.BSClearingAccount)),
		UserID:       strings.TrimSpace(row.Cell(registers.BSUser)),
		Stat:         strings.TrimSpace(row.Cell(registers.BSStat)),
		Type:         txType,
		ProductType:  strings.TrimSpace(row.Cell(registers.BSStockCode)),
		CurrencyCode: "USD",
	}
}
