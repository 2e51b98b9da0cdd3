package http

import (
	"net/url"
	"testing"
)

func TestParseApplicationForm_FullForm(t *testing.T) {
	form := url.Values{
		"application_number": {"GG-2026-042"},
		"project_country":    {"Guatemala"},
		"host_name_1":        {"Antigua"},
		"host_ddf_1":         {"10000"},
		"host_cash_trf_1":    {"5000"},
		"intl_name_1":        {"Oslo"},
		"intl_ddf_1":         {"2000"},
		"intl_cash_trf_1":    {"3000"},
		"donor_name_1":       {"Local Business"},
		"donor_direct_1":     {"500.50"},
		"endowed_gift":       {"1000"},
	}

	app, err := parseApplicationForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.Number != "GG-2026-042" {
		t.Errorf("expected number GG-2026-042, got %q", app.Number)
	}
	if app.Country != "Guatemala" {
		t.Errorf("expected country Guatemala, got %q", app.Country)
	}
	if len(app.HostClubs) != 1 {
		t.Fatalf("expected 1 host club, got %d", len(app.HostClubs))
	}
	if app.HostClubs[0].DDF.Cents != 10000_00 {
		t.Errorf("expected host DDF 1000000 cents, got %d", app.HostClubs[0].DDF.Cents)
	}
	if len(app.InternationalClubs) != 1 {
		t.Fatalf("expected 1 international club, got %d", len(app.InternationalClubs))
	}
	if len(app.OtherDonors) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(app.OtherDonors))
	}
	if app.OtherDonors[0].AmountDirect.Cents != 500_50 {
		t.Errorf("expected donor direct 50050 cents, got %d", app.OtherDonors[0].AmountDirect.Cents)
	}
	if app.EndowedGift.Cents != 1000_00 {
		t.Errorf("expected endowed gift 100000 cents, got %d", app.EndowedGift.Cents)
	}
}

func TestParseApplicationForm_SkipsBlankRows(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"name without amounts", url.Values{"host_name_2": {"Ghost Club"}}},
		{"amounts without name", url.Values{"host_ddf_3": {"5000"}}},
		{"zero amounts with name", url.Values{"host_name_4": {"Zero Club"}, "host_ddf_4": {"0"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := parseApplicationForm(tt.form)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(app.HostClubs) != 0 {
				t.Errorf("expected row skipped, got %d host clubs", len(app.HostClubs))
			}
		})
	}
}

func TestParseApplicationForm_RejectsBadAmounts(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"negative club amount", "host_ddf_1", "-100"},
		{"non numeric", "host_cash_trf_1", "abc"},
		{"negative donor amount", "donor_direct_1", "-5"},
		{"negative endowed gift", "endowed_gift", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{
				"host_name_1":  {"Antigua"},
				"donor_name_1": {"Someone"},
			}
			form.Set(tt.field, tt.value)
			if _, err := parseApplicationForm(form); err == nil {
				t.Fatalf("expected error for %s=%q, got nil", tt.field, tt.value)
			}
		})
	}
}

func TestParseApplicationForm_RowOrderPreserved(t *testing.T) {
	form := url.Values{
		"host_name_1": {"First"}, "host_ddf_1": {"100"},
		"host_name_3": {"Third"}, "host_ddf_3": {"300"},
		"host_name_5": {"Fifth"}, "host_ddf_5": {"500"},
	}

	app, err := parseApplicationForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(app.HostClubs) != 3 {
		t.Fatalf("expected 3 host clubs, got %d", len(app.HostClubs))
	}
	want := []string{"First", "Third", "Fifth"}
	for i, name := range want {
		if app.HostClubs[i].Name != name {
			t.Errorf("row %d: expected %q, got %q", i, name, app.HostClubs[i].Name)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Antigua  ", "Antigua"},
		{"bad\x00input", "badinput"},
		{"keeps spaces inside", "keeps spaces inside"},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
