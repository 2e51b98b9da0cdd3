package core

import (
	"errors"
	"fmt"
	"testing"
)

func validApplication() Application {
	return Application{
		Number:  "GG-2026-001",
		Country: "Kenya",
		HostClubs: []Club{
			{Name: "Nairobi Central", DDF: usd(10000), CashTRF: usd(5000)},
		},
		InternationalClubs: []Club{
			{Name: "Oslo West", DDF: usd(2000), CashTRF: usd(3000)},
		},
	}
}

func TestApplicationValidate(t *testing.T) {
	if err := validApplication().Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Application)
		want   error
	}{
		{"missing number", func(a *Application) { a.Number = "  " }, ErrMissingNumber},
		{"missing country", func(a *Application) { a.Country = "" }, ErrMissingCountry},
		{"no clubs", func(a *Application) { a.HostClubs = nil; a.InternationalClubs = nil }, ErrNoClubs},
		{"unnamed club", func(a *Application) { a.HostClubs[0].Name = "" }, ErrEmptyName},
		{"negative ddf", func(a *Application) { a.HostClubs[0].DDF.Cents = -1 }, ErrNegativeAmount},
		{"negative donor amount", func(a *Application) {
			a.OtherDonors = []Donor{{Name: "D", AmountTRF: Money{Cents: -500}}}
		}, ErrNegativeAmount},
		{"negative endowed gift", func(a *Application) { a.EndowedGift.Cents = -1 }, ErrNegativeAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validApplication()
			tc.mutate(&a)
			if err := a.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestInternationalOnlyApplicationIsValid(t *testing.T) {
	a := validApplication()
	a.HostClubs = nil
	if err := a.Validate(); err != nil {
		t.Fatalf("international-only application should validate, got %v", err)
	}
}

func TestZeroAmountsAreValid(t *testing.T) {
	a := validApplication()
	a.HostClubs[0].DDF = Money{}
	a.HostClubs[0].CashTRF = Money{}
	if err := a.Validate(); err != nil {
		t.Fatalf("zero amounts should validate, got %v", err)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(fmt.Errorf("validate application: %w", ErrMissingNumber)) {
		t.Error("wrapped sentinel should be recognized")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Error("unrelated error should not be recognized")
	}
	if IsValidationError(nil) {
		t.Error("nil is not a validation error")
	}
}
