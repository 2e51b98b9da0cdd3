// Package report renders a computed funding breakdown for human consumption:
// summary rows, a pie chart, an HTML document, and PDF/XLSX exports.
// Everything here is derived read-only from an Application, its
// FundingResult, and the validators' warnings.
package report

import "grantcalc/internal/core"

// ClubLine is one club row of the paginated report. The TRF columns are
// derived from the row's own CashTRF, the same 5% split the aggregator
// applies to the group total.
type ClubLine struct {
	Name           string
	DDF            core.Money
	CashDirect     core.Money
	CashTRF        core.Money
	CashThroughTRF core.Money
	Fee            core.Money
	TotalToTRF     core.Money
}

// DonorLine is one other-donor row. Donors carry no DDF.
type DonorLine struct {
	Name           string
	AmountDirect   core.Money
	AmountTRF      core.Money
	CashThroughTRF core.Money
	Fee            core.Money
	TotalToTRF     core.Money
}

// SummaryRow is one labeled amount of the on-screen summary table.
type SummaryRow struct {
	Label  string
	Amount core.Money
}

func clubLine(name string, ddf, direct, trf core.Money) ClubLine {
	return ClubLine{
		Name:           name,
		DDF:            ddf,
		CashDirect:     direct,
		CashTRF:        trf,
		CashThroughTRF: core.CashThroughTRF(trf),
		Fee:            core.TRFFee(trf),
		TotalToTRF:     trf,
	}
}

// ClubLines expands clubs into report rows in input order and appends a
// group-total row labeled with totalLabel.
func ClubLines(clubs []core.Club, totalLabel string) []ClubLine {
	lines := make([]ClubLine, 0, len(clubs)+1)
	var ddf, direct, trf core.Money
	for _, c := range clubs {
		lines = append(lines, clubLine(c.Name, c.DDF, c.CashDirect, c.CashTRF))
		ddf.Cents += c.DDF.Cents
		direct.Cents += c.CashDirect.Cents
		trf.Cents += c.CashTRF.Cents
	}
	lines = append(lines, clubLine(totalLabel, ddf, direct, trf))
	return lines
}

// DonorLines expands other donors into report rows in input order.
func DonorLines(donors []core.Donor) []DonorLine {
	lines := make([]DonorLine, 0, len(donors))
	for _, d := range donors {
		lines = append(lines, DonorLine{
			Name:           d.Name,
			AmountDirect:   d.AmountDirect,
			AmountTRF:      d.AmountTRF,
			CashThroughTRF: core.CashThroughTRF(d.AmountTRF),
			Fee:            core.TRFFee(d.AmountTRF),
			TotalToTRF:     d.AmountTRF,
		})
	}
	return lines
}

// SummaryRows builds the summary table shown on screen and at the foot of
// every exported report.
func SummaryRows(r core.FundingResult) []SummaryRow {
	host := r.TotalHostDDF.Cents + r.TotalHostCashDirect.Cents + r.TotalHostCashTRF.Cents
	intl := r.TotalInternationalDDF.Cents + r.TotalInternationalCashDirect.Cents + r.TotalInternationalCashTRF.Cents
	donors := r.TotalOtherDonorsDirect.Cents + r.TotalOtherDonorsTRF.Cents

	return []SummaryRow{
		{"Total Host Contributions", core.Money{Cents: host}},
		{"Total International Contributions", core.Money{Cents: intl}},
		{"Total Rotarian Contributions", r.TotalContributions},
		{"Cash Through TRF (net of 5% fee)", r.ProjectCashTRF},
		{"TRF Processing Fee (5%)", r.Fee},
		{"TRF World Fund Match (80% of DDF)", r.WorldFundMatch},
		{"Total Other Donors", core.Money{Cents: donors}},
		{"Endowed/Directed Gift", r.EndowedGift},
		{"Total Project Funding", r.TotalFunding},
	}
}
