package registers

import (
	"strconv"
	"strings"
	"time"
)

// Date formats seen across register exports. Spreadsheet tooling is not
// consistent here: re-saved sheets flip between ISO, slash and
// month-name forms.
var cellDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"02-Jan-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Excel's serial date epoch (with the traditional 1900 leap-year bug
// already accounted for).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseCellDate normalizes a raw date cell to ISO form. Numeric cells are
// treated as Excel serial dates, which is how raw .xlsx grids deliver date
// cells that carry no text format.
func ParseCellDate(cell string) (string, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return "", false
	}

	for _, l := range cellDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 200000 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return t.Format("2006-01-02"), true
	}

	return "", false
}

// ParseCellFloat reads a numeric cell, tolerating thousands separators and
// surrounding quotes. Unparseable cells read as 0.
func ParseCellFloat(cell string) float64 {
	s := strings.TrimSpace(cell)
	s = strings.Trim(s, "\"")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
