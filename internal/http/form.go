package http

import (
	"fmt"
	"net/url"
	"strings"

	"grantcalc/internal/core"
)

const (
	maxHostClubs          = 5
	maxInternationalClubs = 5
	maxOtherDonors        = 3
)

// parseApplicationForm reads the contribution form into an Application.
// A club or donor row is included only when its name is filled in and at
// least one of its amounts is positive; entirely blank rows are skipped.
// Any malformed or negative amount fails the whole parse.
func parseApplicationForm(form url.Values) (core.Application, error) {
	app := core.Application{
		Number:  sanitizeInput(form.Get("application_number")),
		Country: sanitizeInput(form.Get("project_country")),
	}

	for i := 1; i <= maxHostClubs; i++ {
		club, ok, err := parseClubRow(form, "host", i)
		if err != nil {
			return core.Application{}, err
		}
		if ok {
			app.HostClubs = append(app.HostClubs, club)
		}
	}

	for i := 1; i <= maxInternationalClubs; i++ {
		club, ok, err := parseClubRow(form, "intl", i)
		if err != nil {
			return core.Application{}, err
		}
		if ok {
			app.InternationalClubs = append(app.InternationalClubs, club)
		}
	}

	for i := 1; i <= maxOtherDonors; i++ {
		donor, ok, err := parseDonorRow(form, i)
		if err != nil {
			return core.Application{}, err
		}
		if ok {
			app.OtherDonors = append(app.OtherDonors, donor)
		}
	}

	endowed, err := parseAmountField(form, "endowed_gift")
	if err != nil {
		return core.Application{}, err
	}
	app.EndowedGift = endowed

	return app, nil
}

func parseClubRow(form url.Values, prefix string, i int) (core.Club, bool, error) {
	name := sanitizeInput(form.Get(fmt.Sprintf("%s_name_%d", prefix, i)))

	ddf, err := parseAmountField(form, fmt.Sprintf("%s_ddf_%d", prefix, i))
	if err != nil {
		return core.Club{}, false, err
	}
	direct, err := parseAmountField(form, fmt.Sprintf("%s_cash_direct_%d", prefix, i))
	if err != nil {
		return core.Club{}, false, err
	}
	trf, err := parseAmountField(form, fmt.Sprintf("%s_cash_trf_%d", prefix, i))
	if err != nil {
		return core.Club{}, false, err
	}

	if name == "" || ddf.Cents+direct.Cents+trf.Cents == 0 {
		return core.Club{}, false, nil
	}

	return core.Club{Name: name, DDF: ddf, CashDirect: direct, CashTRF: trf}, true, nil
}

func parseDonorRow(form url.Values, i int) (core.Donor, bool, error) {
	name := sanitizeInput(form.Get(fmt.Sprintf("donor_name_%d", i)))

	direct, err := parseAmountField(form, fmt.Sprintf("donor_direct_%d", i))
	if err != nil {
		return core.Donor{}, false, err
	}
	trf, err := parseAmountField(form, fmt.Sprintf("donor_trf_%d", i))
	if err != nil {
		return core.Donor{}, false, err
	}

	if name == "" || direct.Cents+trf.Cents == 0 {
		return core.Donor{}, false, nil
	}

	return core.Donor{Name: name, AmountDirect: direct, AmountTRF: trf}, true, nil
}

// parseAmountField treats a blank field as zero. Negative or malformed
// values are reported with the offending field name.
func parseAmountField(form url.Values, field string) (core.Money, error) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return core.Money{}, nil
	}
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		return core.Money{}, fmt.Errorf("field %s: %w", field, err)
	}
	return core.Money{Cents: cents}, nil
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
