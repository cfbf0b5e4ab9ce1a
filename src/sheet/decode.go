// Package sheet decodes uploaded spreadsheet bytes into the raw cell grid
// the register pipeline consumes. It owns no pipeline logic; it is the
// file-reading collaborator in front of the core.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnparseable is returned when no decoder recognizes the payload.
var ErrUnparseable = errors.New("sheet: unable to parse file with any known format")

var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04} // zip container

// Decode sniffs the payload and returns the first sheet as a grid of cell
// strings. XLSX workbooks are read from the first worksheet; anything else
// is treated as delimited text, probing comma, semicolon and tab.
func Decode(data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, xlsxMagic) {
		return decodeXLSX(data)
	}
	return decodeDelimited(data)
}

func decodeXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sheet: opening xlsx workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("sheet: workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet: reading worksheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// Register exports come out of different back-office tools; the delimiter
// is not reliable, so each candidate is tried until one yields a grid with
// more than one column.
var delimiters = []rune{',', ';', '\t'}

func decodeDelimited(data []byte) ([][]string, error) {
	text := string(data)
	for _, delim := range delimiters {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = delim
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		records, err := r.ReadAll()
		if err != nil {
			continue
		}
		if len(records) > 0 && len(records[0]) > 1 {
			return records, nil
		}
	}
	return nil, ErrUnparseable
}
