package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"grantcalc/internal/core"
	applog "grantcalc/internal/log"
	"grantcalc/internal/report"
	"grantcalc/internal/store"
)

type clubFormRow struct {
	Name       string
	DDF        string
	CashDirect string
	CashTRF    string
}

type donorFormRow struct {
	Name   string
	Direct string
	TRF    string
}

type formState struct {
	Number      string
	Country     string
	EndowedGift string
	HostRows    []clubFormRow
	IntlRows    []clubFormRow
	DonorRows   []donorFormRow
}

// emptyFormState returns a blank form with the full set of input rows.
func emptyFormState() formState {
	return formState{
		HostRows:  make([]clubFormRow, maxHostClubs),
		IntlRows:  make([]clubFormRow, maxInternationalClubs),
		DonorRows: make([]donorFormRow, maxOtherDonors),
	}
}

// formStateFrom fills the fixed-size form rows from a saved application.
func formStateFrom(app core.Application) formState {
	st := emptyFormState()
	st.Number = app.Number
	st.Country = app.Country
	st.EndowedGift = amountValue(app.EndowedGift)

	for i, c := range app.HostClubs {
		if i >= maxHostClubs {
			break
		}
		st.HostRows[i] = clubFormRow{
			Name:       c.Name,
			DDF:        amountValue(c.DDF),
			CashDirect: amountValue(c.CashDirect),
			CashTRF:    amountValue(c.CashTRF),
		}
	}
	for i, c := range app.InternationalClubs {
		if i >= maxInternationalClubs {
			break
		}
		st.IntlRows[i] = clubFormRow{
			Name:       c.Name,
			DDF:        amountValue(c.DDF),
			CashDirect: amountValue(c.CashDirect),
			CashTRF:    amountValue(c.CashTRF),
		}
	}
	for i, d := range app.OtherDonors {
		if i >= maxOtherDonors {
			break
		}
		st.DonorRows[i] = donorFormRow{
			Name:   d.Name,
			Direct: amountValue(d.AmountDirect),
			TRF:    amountValue(d.AmountTRF),
		}
	}
	return st
}

// amountValue renders a cents amount as a plain decimal form value,
// blank for zero.
func amountValue(m core.Money) string {
	if m.Cents == 0 {
		return ""
	}
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderForm(w, r, emptyFormState())
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, st formState) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", st); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type summaryRowView struct {
	Label   string
	Amount  string
	IsTotal bool
}

type summaryData struct {
	Warnings           []core.Warning
	Rows               []summaryRowView
	InternationalShare string
	Pie                template.HTML
}

// handleCalculate runs the aggregator on the posted form and renders the
// summary partial. Nothing is persisted.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	app, err := parseApplicationForm(r.Form)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}
	// The aggregator assumes a validated snapshot; reject incomplete forms
	// here just like the save path does.
	if err := app.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid application: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	result := core.CalculateTotals(app.HostClubs, app.InternationalClubs, app.OtherDonors, app.EndowedGift)
	warnings := core.CheckFundingRules(result)
	warnings = append(warnings, core.CheckDonorEligibility(app.OtherDonors)...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.renderSummary(w, r, result, warnings)
}

func (s *Server) renderSummary(w http.ResponseWriter, r *http.Request, result core.FundingResult, warnings []core.Warning) {
	data := summaryData{
		Warnings:           warnings,
		InternationalShare: fmt.Sprintf("%.1f%%", result.InternationalContributionPercentage*100),
		Pie:                template.HTML(report.PieSVG(report.ChartSlices(result))),
	}
	for _, row := range report.SummaryRows(result) {
		data.Rows = append(data.Rows, summaryRowView{
			Label:   row.Label,
			Amount:  row.Amount.Format(),
			IsTotal: row.Label == "Total Project Funding",
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="summary"><div class="placeholder">Total Project Funding: ` + result.TotalFunding.Format() + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
		_, _ = w.Write([]byte(`<section id="summary"><div class="placeholder">Error rendering summary</div></section>`))
	}
}

// handleSaveApplication validates and persists the raw input records, then
// queues an async report render when a publisher is wired. GET returns the
// saved application numbers as JSON.
func (s *Server) handleSaveApplication(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		numbers, err := s.reader.List(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Application list error", "error", err)
			http.Error(w, "error listing applications", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string][]string{"applications": numbers}); err != nil {
			slog.ErrorContext(r.Context(), "Application list encode error", "error", err)
		}
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	app, err := parseApplicationForm(r.Form)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if err := s.service.SaveApplication(r.Context(), app); err != nil {
		if core.IsValidationError(err) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid application: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Application save error", "error", err, applog.FieldApplicationNumber, app.Number)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving application</div>`))
		return
	}

	// Stale renders must not outlive a resubmission
	s.reportCache.Delete(app.Number + ".pdf")
	s.reportCache.Delete(app.Number + ".xlsx")

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Application ` + template.HTMLEscapeString(app.Number) + ` saved</div>`))
}

// handleApplicationSubtree routes /applications/{number} and
// /applications/{number}/report.{pdf,xlsx}.
func (s *Server) handleApplicationSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/applications/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleGetApplication(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "report.pdf":
		s.handleReportDownload(w, r, parts[0], "pdf")
	case len(parts) == 2 && parts[1] == "report.xlsx":
		s.handleReportDownload(w, r, parts[0], "xlsx")
	default:
		http.NotFound(w, r)
	}
}

// handleGetApplication reloads a saved application into the entry form.
// With Accept: application/json the raw record is returned instead.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request, number string) {
	app, err := s.reader.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Application load error", "error", err, applog.FieldApplicationNumber, number)
		http.Error(w, "error loading application", http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(app); err != nil {
			slog.ErrorContext(r.Context(), "Application encode error", "error", err, applog.FieldApplicationNumber, number)
		}
		return
	}

	s.renderForm(w, r, formStateFrom(app))
}

// handleReportDownload renders the persisted application synchronously.
// Rendered bytes are cached until the application is saved again.
func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request, number, format string) {
	cacheKey := number + "." + format
	if data, found := s.reportCache.Get(cacheKey); found {
		slog.DebugContext(r.Context(), "Report cache hit", applog.FieldApplicationNumber, number, applog.FieldFormat, format)
		writeReport(w, number, format, data)
		return
	}

	app, err := s.reader.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Application load error", "error", err, applog.FieldApplicationNumber, number)
		http.Error(w, "error loading application", http.StatusInternalServerError)
		return
	}

	result := core.CalculateTotals(app.HostClubs, app.InternationalClubs, app.OtherDonors, app.EndowedGift)
	warnings := core.CheckFundingRules(result)
	warnings = append(warnings, core.CheckDonorEligibility(app.OtherDonors)...)

	var data []byte
	switch format {
	case "pdf":
		if s.pdf == nil {
			http.Error(w, "pdf rendering not available", http.StatusServiceUnavailable)
			return
		}
		data, err = s.pdf.Render(r.Context(), app, result, warnings)
	case "xlsx":
		data, err = report.WriteXLSX(app, result, warnings)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Report render error", "error", err, applog.FieldApplicationNumber, number, applog.FieldFormat, format)
		http.Error(w, "error rendering report", http.StatusInternalServerError)
		return
	}

	s.reportCache.Set(cacheKey, data)
	writeReport(w, number, format, data)
}

func writeReport(w http.ResponseWriter, number, format string, data []byte) {
	contentType := "application/pdf"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", number+"_report."+format))
	_, _ = w.Write(data)
}
