package registers

import (
	"strings"
)

// Repair walks extracted rows in order and fixes the holes the printed
// layouts leave behind.
//
// Buy/sell sheets interleave data with section markers: a row whose date
// cell reads "BUYING" or "SELLING" switches the running mode and is not a
// data row. Within a section the confirmation number and customer code are
// printed once per order group, so blanks are filled from the last non-blank
// value seen on the sheet.
//
// All layouts print the trade date once per day block; each row's date is
// parsed and normalized to ISO form, and unparseable cells inherit the last
// established date. Rows read before any date was established are dropped.
func Repair(rows []Row, kind ImportKind) []Row {
	if kind == KindBuySell {
		rows = repairBuySell(rows)
	}
	return repairDates(rows)
}

func repairBuySell(rows []Row) []Row {
	selling := false
	lastConfNo := ""
	lastCustomerCode := ""

	out := rows[:0]
	for _, row := range rows {
		switch strings.ToLower(strings.TrimSpace(row.Cell(BSDate))) {
		case "selling":
			selling = true
			continue
		case "buying":
			selling = false
			continue
		}

		if strings.TrimSpace(row.Cell(BSConfNo)) == "" {
			row.Cells[BSConfNo] = lastConfNo
		}
		if strings.TrimSpace(row.Cell(BSCustomerCode)) == "" {
			row.Cells[BSCustomerCode] = lastCustomerCode
		}
		if v := strings.TrimSpace(row.Cell(BSConfNo)); v != "" {
			lastConfNo = v
		}
		if v := strings.TrimSpace(row.Cell(BSCustomerCode)); v != "" {
			lastCustomerCode = v
		}

		row.Selling = selling
		out = append(out, row)
	}
	return out
}

func repairDates(rows []Row) []Row {
	lastDate := ""

	out := rows[:0]
	for _, row := range rows {
		// Date is index 0 in both layouts.
		if iso, ok := ParseCellDate(row.Cell(0)); ok {
			lastDate = iso
			row.Cells[0] = iso
		} else {
			row.Cells[0] = lastDate
		}
		if row.Cells[0] == "" {
			// No date has ever been established on this sheet.
			continue
		}
		out = append(out, row)
	}
	return out
}
