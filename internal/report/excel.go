package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"grantcalc/internal/core"
)

const (
	sheetHost          = "Host Clubs"
	sheetInternational = "International Clubs"
	sheetDonors        = "Other Donors"
	sheetSummary       = "Summary"
)

var clubHeader = []any{"Club/District", "DDF (USD)", "Cash Direct to Project", "Cash via TRF", "Cash Through TRF (net)", "5% Fee", "Total to TRF"}
var donorHeader = []any{"Donor", "Cash Direct to Project", "Cash via TRF", "Cash Through TRF (net)", "5% Fee", "Total to TRF"}

// WriteXLSX renders the report as an Excel workbook with one sheet per
// section. Amounts are written as numeric dollars so spreadsheet formulas
// keep working on them.
func WriteXLSX(app core.Application, result core.FundingResult, warnings []core.Warning) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetHost); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{sheetInternational, sheetDonors, sheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeClubSheet(f, sheetHost, ClubLines(app.HostClubs, "Total Host Contributions")); err != nil {
		return nil, err
	}
	if err := writeClubSheet(f, sheetInternational, ClubLines(app.InternationalClubs, "Total International Contributions")); err != nil {
		return nil, err
	}
	if err := writeDonorSheet(f, DonorLines(app.OtherDonors)); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, app, result, warnings); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeClubSheet(f *excelize.File, sheet string, lines []ClubLine) error {
	if err := writeRow(f, sheet, 1, clubHeader); err != nil {
		return err
	}
	for i, l := range lines {
		row := []any{l.Name, l.DDF.Dollars(), l.CashDirect.Dollars(), l.CashTRF.Dollars(),
			l.CashThroughTRF.Dollars(), l.Fee.Dollars(), l.TotalToTRF.Dollars()}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDonorSheet(f *excelize.File, lines []DonorLine) error {
	if err := writeRow(f, sheetDonors, 1, donorHeader); err != nil {
		return err
	}
	for i, l := range lines {
		row := []any{l.Name, l.AmountDirect.Dollars(), l.AmountTRF.Dollars(),
			l.CashThroughTRF.Dollars(), l.Fee.Dollars(), l.TotalToTRF.Dollars()}
		if err := writeRow(f, sheetDonors, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, app core.Application, result core.FundingResult, warnings []core.Warning) error {
	if err := writeRow(f, sheetSummary, 1, []any{"Application #", app.Number}); err != nil {
		return err
	}
	if err := writeRow(f, sheetSummary, 2, []any{"Project Country", app.Country}); err != nil {
		return err
	}
	row := 4
	for _, s := range SummaryRows(result) {
		if err := writeRow(f, sheetSummary, row, []any{s.Label, s.Amount.Dollars()}); err != nil {
			return err
		}
		row++
	}
	row++
	for _, w := range warnings {
		if err := writeRow(f, sheetSummary, row, []any{"Warning", w.Message}); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
