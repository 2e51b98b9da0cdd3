package core

// FundingResult is the flat record produced by one aggregation pass.
// Every field is always present; empty inputs yield an all-zero result.
// It is never mutated after CalculateTotals returns it.
type FundingResult struct {
	TotalHostDDF        Money `json:"total_host_ddf"`
	TotalHostCashDirect Money `json:"total_host_cash_direct"`
	TotalHostCashTRF    Money `json:"total_host_cash_trf"`

	TotalInternationalDDF        Money `json:"total_international_ddf"`
	TotalInternationalCashDirect Money `json:"total_international_cash_direct"`
	TotalInternationalCashTRF    Money `json:"total_international_cash_trf"`

	TotalOtherDonorsDirect Money `json:"total_other_donors_direct"`
	TotalOtherDonorsTRF    Money `json:"total_other_donors_trf"`

	TotalDDF        Money `json:"total_ddf"`
	TotalCashDirect Money `json:"total_cash_direct"`
	TotalCashTRF    Money `json:"total_cash_trf"`

	// ProjectCashTRF is the TRF-routed cash net of the processing fee.
	// The fee is reported alongside but never subtracted from TotalFunding.
	ProjectCashTRF Money `json:"project_cash_trf"`
	Fee            Money `json:"fee"`
	WorldFundMatch Money `json:"world_fund_match"`

	EndowedGift  Money `json:"endowed_gift"`
	TotalFunding Money `json:"total_funding"`

	// TotalContributions measures direct Rotarian input only: host plus
	// international DDF, direct cash, and TRF cash. It excludes the match,
	// other donors, and the endowed gift.
	TotalContributions Money `json:"total_contributions"`

	InternationalContributionPercentage float64 `json:"international_contribution_percentage"`
}

// TRFFee is the 5% processing fee on cash routed through TRF, half-up
// rounded to the cent. Also used per row by the report renderers.
func TRFFee(cash Money) Money {
	return percentOf(cash, TRFFeePercent)
}

// CashThroughTRF is the TRF-routed cash net of the processing fee.
func CashThroughTRF(cash Money) Money {
	return Money{Cents: cash.Cents - TRFFee(cash).Cents}
}

// WorldFundMatchFor is 80% of the given DDF, capped at $400,000.
func WorldFundMatchFor(ddf Money) Money {
	match := percentOf(ddf, WorldFundMatchPercent)
	if match.Cents > WorldFundMatchCapCents {
		match.Cents = WorldFundMatchCapCents
	}
	return match
}

// CalculateTotals reduces the contribution lists into a FundingResult.
// Pure function of its inputs: no I/O, no shared state, deterministic.
// Inputs are assumed validated (non-negative) by Application.Validate.
func CalculateTotals(hostClubs, internationalClubs []Club, otherDonors []Donor, endowedGift Money) FundingResult {
	var r FundingResult

	for _, c := range hostClubs {
		r.TotalHostDDF.Cents += c.DDF.Cents
		r.TotalHostCashDirect.Cents += c.CashDirect.Cents
		r.TotalHostCashTRF.Cents += c.CashTRF.Cents
	}
	for _, c := range internationalClubs {
		r.TotalInternationalDDF.Cents += c.DDF.Cents
		r.TotalInternationalCashDirect.Cents += c.CashDirect.Cents
		r.TotalInternationalCashTRF.Cents += c.CashTRF.Cents
	}
	for _, d := range otherDonors {
		r.TotalOtherDonorsDirect.Cents += d.AmountDirect.Cents
		r.TotalOtherDonorsTRF.Cents += d.AmountTRF.Cents
	}

	r.TotalDDF.Cents = r.TotalHostDDF.Cents + r.TotalInternationalDDF.Cents
	r.TotalCashDirect.Cents = r.TotalHostCashDirect.Cents + r.TotalInternationalCashDirect.Cents
	r.TotalCashTRF.Cents = r.TotalHostCashTRF.Cents + r.TotalInternationalCashTRF.Cents

	r.Fee = TRFFee(r.TotalCashTRF)
	r.ProjectCashTRF = CashThroughTRF(r.TotalCashTRF)
	r.WorldFundMatch = WorldFundMatchFor(r.TotalDDF)
	r.EndowedGift = endowedGift

	r.TotalContributions.Cents = r.TotalDDF.Cents + r.TotalCashDirect.Cents + r.TotalCashTRF.Cents

	// TRF-routed cash keeps its full face value here; the fee is the cost
	// of processing, not a funding deduction.
	r.TotalFunding.Cents = r.TotalDDF.Cents +
		r.TotalCashDirect.Cents +
		r.TotalCashTRF.Cents +
		r.WorldFundMatch.Cents +
		r.TotalOtherDonorsDirect.Cents +
		r.TotalOtherDonorsTRF.Cents +
		r.EndowedGift.Cents

	international := r.TotalInternationalDDF.Cents +
		r.TotalInternationalCashDirect.Cents +
		r.TotalInternationalCashTRF.Cents
	if r.TotalContributions.Cents > 0 {
		r.InternationalContributionPercentage = float64(international) / float64(r.TotalContributions.Cents)
	}

	return r
}

// percentOf computes pct% of m with half-up rounding to the cent. The input
// sum is exact, so the single rounding here is the only one in the pipeline.
func percentOf(m Money, pct int64) Money {
	return Money{Cents: (m.Cents*pct + 50) / 100}
}
