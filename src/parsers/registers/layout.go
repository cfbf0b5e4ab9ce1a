// Package registers extracts and repairs rows from the two fixed register
// layouts exported by the bank/brokerage back office: the deposit/withdrawal
// register and the buy/sell register. Sheets arrive as a raw grid of cell
// strings; this package selects the meaningful columns, strips boilerplate,
// and forward-fills the values the printed layout only carries once per
// group.
package registers

import (
	"fmt"
	"strings"

	"github.com/username/amlview/backend/src/logger"
)

// ImportKind identifies which register layout a sheet uses.
type ImportKind string

const (
	KindDeposit    ImportKind = "Deposit"
	KindWithdrawal ImportKind = "Withdrawal"
	KindBuySell    ImportKind = "Buy/Sell"
)

// ParseImportKind validates a client-supplied kind string.
func ParseImportKind(s string) (ImportKind, error) {
	switch ImportKind(s) {
	case KindDeposit, KindWithdrawal, KindBuySell:
		return ImportKind(s), nil
	}
	return "", fmt.Errorf("unknown import kind %q", s)
}

// Selected-field indices for the deposit/withdrawal layout.
const (
	DWDate = iota
	DWOrNo
	DWAcNum
	DWName
	DWAmount
	DWBankCode
	DWCheckNo
	DWCheckDate
	DWUserID
	DWStat
)

// Selected-field indices for the buy/sell layout.
const (
	BSDate = iota
	BSConfNo
	BSCustomerCode
	BSCustomerName
	BSTrader
	BSStockCode
	BSShares
	BSUnitPrice
	BSClearingAccount
	BSComm
	BSVATPayable
	BSDST
	BSTransferFee
	BSVATWTax
	BSPSEFee
	BSSCCPFee
	BSCustomerAccount
	BSUser
	BSStat
)

// Row is one extracted register row. Cells holds the selected fields in
// layout order (DW* or BS* indices). Selling is meaningful for the buy/sell
// layout only and records the section mode in effect when the row was read.
type Row struct {
	Cells   []string
	Selling bool
}

func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

type layout struct {
	skipRows    int
	offsets     []int
	minColumns  int
	minNonEmpty int
}

var (
	depositLayout = layout{
		skipRows:    13,
		offsets:     []int{0, 3, 8, 10, 19, 23, 27, 29, 31, 33},
		minColumns:  10,
		minNonEmpty: 2,
	}
	buySellLayout = layout{
		skipRows:    15,
		offsets:     []int{0, 1, 2, 5, 6, 8, 11, 13, 16, 19, 22, 25, 27, 29, 30, 33, 35, 38, 41},
		minColumns:  19,
		minNonEmpty: 5,
	}
)

// Footer/subtotal markers printed by the back office between data blocks.
var boilerplateMarkers = []string{"sub total", "grand total", "invoice total"}

func layoutFor(kind ImportKind) layout {
	if kind == KindBuySell {
		return buySellLayout
	}
	return depositLayout
}

// Extract selects the layout's columns from the raw grid, dropping the fixed
// header block, subtotal/total boilerplate, and rows too sparse to be data.
// A sheet narrower than the layout expects is processed anyway with
// best-effort offsets; the shortfall is surfaced as a warning, never as a
// hard failure.
func Extract(grid [][]string, kind ImportKind) ([]Row, []string) {
	l := layoutFor(kind)
	var warnings []string

	if len(grid) > 0 && len(grid[0]) < l.minColumns {
		w := fmt.Sprintf("sheet has %d columns, expected at least %d", len(grid[0]), l.minColumns)
		logger.L.Warn("Register sheet narrower than layout", "kind", string(kind), "columns", len(grid[0]), "expected", l.minColumns)
		warnings = append(warnings, w)
	}

	if len(grid) <= l.skipRows {
		return nil, warnings
	}

	var rows []Row
	for _, raw := range grid[l.skipRows:] {
		cells := make([]string, len(l.offsets))
		for i, off := range l.offsets {
			if off < len(raw) {
				cells[i] = raw[off]
			}
		}
		if isBoilerplate(cells) {
			continue
		}
		if nonEmptyCount(cells) < l.minNonEmpty {
			continue
		}
		rows = append(rows, Row{Cells: cells})
	}
	return rows, warnings
}

func isBoilerplate(cells []string) bool {
	for _, c := range cells {
		lower := strings.ToLower(c)
		for _, marker := range boilerplateMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

func nonEmptyCount(cells []string) int {
	n := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}
