package services

import (
	"fmt"

	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/security/validation"
	"github.com/xuri/excelize/v2"
)

var flagExportHeaders = []interface{}{
	"ID", "Transaction ID", "Flag", "Susp. Code", "Reason", "Score",
	"Susp. Code Desc.", "A/C#", "Name", "Type", "Amount", "Date",
	"Bank Code", "Country", "Notes",
}

// buildFlagWorkbook renders the flag collection into an XLSX workbook.
// Free-text columns pass through the formula-injection sanitizer so a
// crafted customer name cannot execute when the review sheet is opened.
func buildFlagWorkbook(flagSet []models.Flag) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Flagged Transactions"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &flagExportHeaders); err != nil {
		return nil, fmt.Errorf("writing export header: %w", err)
	}

	for i, fl := range flagSet {
		row := []interface{}{
			fl.ID,
			fl.TransactionID,
			fl.Flag,
			fl.SuspCode,
			validation.SanitizeForFormulaInjection(fl.Reason),
			fl.Score,
			fl.SuspCodeDesc,
			validation.SanitizeForFormulaInjection(fl.AcNum),
			validation.SanitizeForFormulaInjection(fl.Name),
			fl.Type,
			fl.Amount,
			fl.Date,
			validation.SanitizeForFormulaInjection(fl.BankCode),
			fl.Country,
			validation.SanitizeForFormulaInjection(fl.Notes),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing export row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing flag workbook: %w", err)
	}
	return buf.Bytes(), nil
}
