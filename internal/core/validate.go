package core

import (
	"fmt"
	"strings"
)

// WarningCode categorizes eligibility warnings by rule.
type WarningCode string

const (
	WarnInternationalShare WarningCode = "international-share"
	WarnMinimumFunding     WarningCode = "minimum-funding"
	WarnIneligibleDonor    WarningCode = "ineligible-donor"
)

// Warning is a non-fatal eligibility finding. Warnings are advisory: they
// surface on every report but never block calculation or rendering.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// CheckFundingRules inspects an aggregated result against the program
// thresholds. The international-share check is emitted first, then the
// minimum-funding check; both may fire independently.
func CheckFundingRules(r FundingResult) []Warning {
	var warnings []Warning
	if r.InternationalContributionPercentage < MinInternationalShare {
		warnings = append(warnings, Warning{
			Code: WarnInternationalShare,
			Message: fmt.Sprintf("international contributions are %.1f%% of Rotarian contributions; the program requires at least 15%%",
				r.InternationalContributionPercentage*100),
		})
	}
	if r.TotalFunding.Cents < MinTotalFundingCents {
		warnings = append(warnings, Warning{
			Code: WarnMinimumFunding,
			Message: fmt.Sprintf("total project funding %s is below the $30,000.00 program minimum",
				r.TotalFunding.Format()),
		})
	}
	return warnings
}

// CheckDonorEligibility screens other donors for names suggesting a
// cooperating organization or beneficiary, which program rules may bar from
// contributing. Donors are checked in input order; a donor matching more
// than one term still yields a single warning.
func CheckDonorEligibility(otherDonors []Donor) []Warning {
	var warnings []Warning
	for _, d := range otherDonors {
		name := strings.ToLower(d.Name)
		if strings.Contains(name, "foundation") || strings.Contains(name, "corporation") {
			warnings = append(warnings, Warning{
				Code: WarnIneligibleDonor,
				Message: fmt.Sprintf("donor %q may be ineligible: foundations and corporations acting as cooperating organizations or beneficiaries cannot contribute",
					d.Name),
			})
		}
	}
	return warnings
}
