package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bsRow(vals map[int]string) Row {
	cells := make([]string, len(buySellLayout.offsets))
	for i, v := range vals {
		cells[i] = v
	}
	return Row{Cells: cells}
}

func dwRow(vals map[int]string) Row {
	cells := make([]string, len(depositLayout.offsets))
	for i, v := range vals {
		cells[i] = v
	}
	return Row{Cells: cells}
}

func TestRepairBuySellSectionMarkers(t *testing.T) {
	rows := []Row{
		bsRow(map[int]string{BSDate: "2026-02-02", BSConfNo: "C-1", BSCustomerCode: "K-1"}),
		bsRow(map[int]string{BSDate: "SELLING"}),
		bsRow(map[int]string{BSDate: "2026-02-02", BSConfNo: "C-2", BSCustomerCode: "K-2"}),
		bsRow(map[int]string{BSDate: "buying"}),
		bsRow(map[int]string{BSDate: "2026-02-03", BSConfNo: "C-3", BSCustomerCode: "K-3"}),
	}

	out := Repair(rows, KindBuySell)
	require.Len(t, out, 3)

	assert.False(t, out[0].Selling)
	assert.True(t, out[1].Selling)
	assert.False(t, out[2].Selling)
}

func TestRepairBuySellForwardFill(t *testing.T) {
	rows := []Row{
		bsRow(map[int]string{BSDate: "2026-02-02", BSConfNo: "C-1", BSCustomerCode: "K-1"}),
		bsRow(map[int]string{BSDate: "2026-02-02"}),
		bsRow(map[int]string{BSDate: "2026-02-02", BSConfNo: "C-2"}),
		bsRow(map[int]string{BSDate: "2026-02-03"}),
	}

	out := Repair(rows, KindBuySell)
	require.Len(t, out, 4)

	assert.Equal(t, "C-1", out[1].Cell(BSConfNo))
	assert.Equal(t, "K-1", out[1].Cell(BSCustomerCode))
	assert.Equal(t, "C-2", out[2].Cell(BSConfNo))
	assert.Equal(t, "K-1", out[2].Cell(BSCustomerCode))
	assert.Equal(t, "C-2", out[3].Cell(BSConfNo))
}

func TestRepairDatesForwardFill(t *testing.T) {
	rows := []Row{
		dwRow(map[int]string{DWDate: "2026-03-01", DWAcNum: "AC-1"}),
		dwRow(map[int]string{DWDate: "", DWAcNum: "AC-2"}),
		dwRow(map[int]string{DWDate: "not a date", DWAcNum: "AC-3"}),
		dwRow(map[int]string{DWDate: "03/15/2026", DWAcNum: "AC-4"}),
	}

	out := Repair(rows, KindDeposit)
	require.Len(t, out, 4)

	assert.Equal(t, "2026-03-01", out[0].Cell(DWDate))
	assert.Equal(t, "2026-03-01", out[1].Cell(DWDate))
	assert.Equal(t, "2026-03-01", out[2].Cell(DWDate))
	assert.Equal(t, "2026-03-15", out[3].Cell(DWDate))
}

func TestRepairDropsRowsBeforeFirstDate(t *testing.T) {
	rows := []Row{
		dwRow(map[int]string{DWDate: "", DWAcNum: "AC-orphan"}),
		dwRow(map[int]string{DWDate: "2026-03-01", DWAcNum: "AC-1"}),
	}

	out := Repair(rows, KindDeposit)
	require.Len(t, out, 1)
	assert.Equal(t, "AC-1", out[0].Cell(DWAcNum))
}
