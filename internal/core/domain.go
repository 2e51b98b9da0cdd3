package core

import (
	"errors"
	"strings"
)

// Program constants for the Global Grant funding model. Rates are expressed
// in percent so derived amounts can be computed exactly from cent sums.
const (
	// TRFFeePercent is the processing fee charged on cash routed through TRF.
	TRFFeePercent = 5

	// WorldFundMatchPercent is the match earned on total DDF.
	WorldFundMatchPercent = 80

	// WorldFundMatchCapCents caps the world-fund match at $400,000.
	WorldFundMatchCapCents int64 = 400_000_00

	// MinTotalFundingCents is the program minimum of $30,000 total funding.
	MinTotalFundingCents int64 = 30_000_00

	// MinInternationalShare is the minimum fraction of Rotarian contributions
	// that must come from international clubs.
	MinInternationalShare = 0.15
)

type (
	Money struct {
		Cents int64
	}

	// Club is a single host or international Rotary club/district row.
	// Immutable once constructed; the aggregator reads it and never writes.
	Club struct {
		Name       string
		DDF        Money
		CashDirect Money
		CashTRF    Money
	}

	// Donor is a non-club contributor. Donors carry no DDF.
	Donor struct {
		Name         string
		AmountDirect Money
		AmountTRF    Money
	}

	// Application is the raw input snapshot assembled by the form layer.
	// This is what persists; computed results are always rederived from it.
	Application struct {
		Number             string
		Country            string
		HostClubs          []Club
		InternationalClubs []Club
		OtherDonors        []Donor
		EndowedGift        Money
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("negative amount")
	ErrEmptyName      = errors.New("empty name")
	ErrMissingNumber  = errors.New("missing application number")
	ErrMissingCountry = errors.New("missing project country")
	ErrNoClubs        = errors.New("at least one host or international club is required")
)

// IsValidationError reports whether err stems from boundary validation,
// as opposed to a storage or transport failure.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidAmount, ErrNegativeAmount, ErrEmptyName,
		ErrMissingNumber, ErrMissingCountry, ErrNoClubs,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	for _, m := range []Money{c.DDF, c.CashDirect, c.CashTRF} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d Donor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	for _, m := range []Money{d.AmountDirect, d.AmountTRF} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate enforces the boundary rules: identifying fields present, at least
// one club, and no negative monetary values anywhere in the snapshot. The
// aggregator itself assumes an already-validated snapshot.
func (a Application) Validate() error {
	if strings.TrimSpace(a.Number) == "" {
		return ErrMissingNumber
	}
	if strings.TrimSpace(a.Country) == "" {
		return ErrMissingCountry
	}
	if len(a.HostClubs) == 0 && len(a.InternationalClubs) == 0 {
		return ErrNoClubs
	}
	for _, c := range a.HostClubs {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range a.InternationalClubs {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, d := range a.OtherDonors {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return a.EndowedGift.Validate()
}
