package report

import (
	"bytes"
	"fmt"
	"html/template"

	"grantcalc/internal/core"
)

// Document bundles everything a rendered report needs. Built once per
// render from the application snapshot and the core's outputs.
type Document struct {
	ApplicationNumber  string
	ProjectCountry     string
	HostLines          []ClubLine
	InternationalLines []ClubLine
	DonorLines         []DonorLine
	Summary            []SummaryRow
	Warnings           []core.Warning
	PieSVG             template.HTML
}

// NewDocument derives the full report model from an application and its
// computed result.
func NewDocument(app core.Application, result core.FundingResult, warnings []core.Warning) Document {
	return Document{
		ApplicationNumber:  app.Number,
		ProjectCountry:     app.Country,
		HostLines:          ClubLines(app.HostClubs, "Total Host Contributions"),
		InternationalLines: ClubLines(app.InternationalClubs, "Total International Contributions"),
		DonorLines:         DonorLines(app.OtherDonors),
		Summary:            SummaryRows(result),
		Warnings:           warnings,
		PieSVG:             template.HTML(PieSVG(ChartSlices(result))),
	}
}

const reportTmplText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: letter landscape; margin: 14mm; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; color: #111; }
  h1 { font-size: 16pt; margin-bottom: 2px; }
  .meta { color: #444; margin-bottom: 14px; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 14px; }
  th { background: #808080; color: #f5f5f0; padding: 6px; font-size: 9pt; }
  td { background: #f5f5dc; padding: 6px; text-align: center; border: 1px solid #000; font-size: 9pt; }
  tr.total td { font-weight: bold; }
  .warnings { margin: 12px 0; }
  .warning { color: #8a5700; background: #fff4da; border: 1px solid #e0b95c; padding: 6px; margin-bottom: 4px; }
  .chart { margin-top: 10px; }
</style>
</head>
<body>
<h1>Global Grant Financing Planner</h1>
<div class="meta">Application #: {{.ApplicationNumber}} | Project Country: {{.ProjectCountry}}</div>

{{if .Warnings}}<div class="warnings">
{{range .Warnings}}<div class="warning">{{.Message}}</div>
{{end}}</div>{{end}}

<table>
<tr><th>Host Rotary Clubs/Districts</th><th>DDF (USD)</th><th>Cash Direct to Project</th><th>Cash via TRF</th><th>Cash Through TRF (net)</th><th>5% Fee</th><th>Total to TRF</th></tr>
{{range $i, $l := .HostLines}}<tr{{if isTotal $i $.HostLines}} class="total"{{end}}><td>{{$l.Name}}</td><td>{{$l.DDF.Format}}</td><td>{{$l.CashDirect.Format}}</td><td>{{$l.CashTRF.Format}}</td><td>{{$l.CashThroughTRF.Format}}</td><td>{{$l.Fee.Format}}</td><td>{{$l.TotalToTRF.Format}}</td></tr>
{{end}}</table>

<table>
<tr><th>International Rotary Clubs/Districts</th><th>DDF (USD)</th><th>Cash Direct to Project</th><th>Cash via TRF</th><th>Cash Through TRF (net)</th><th>5% Fee</th><th>Total to TRF</th></tr>
{{range $i, $l := .InternationalLines}}<tr{{if isTotal $i $.InternationalLines}} class="total"{{end}}><td>{{$l.Name}}</td><td>{{$l.DDF.Format}}</td><td>{{$l.CashDirect.Format}}</td><td>{{$l.CashTRF.Format}}</td><td>{{$l.CashThroughTRF.Format}}</td><td>{{$l.Fee.Format}}</td><td>{{$l.TotalToTRF.Format}}</td></tr>
{{end}}</table>

{{if .DonorLines}}<table>
<tr><th>Other Donors</th><th>Cash Direct to Project</th><th>Cash via TRF</th><th>Cash Through TRF (net)</th><th>5% Fee</th><th>Total to TRF</th></tr>
{{range .DonorLines}}<tr><td>{{.Name}}</td><td>{{.AmountDirect.Format}}</td><td>{{.AmountTRF.Format}}</td><td>{{.CashThroughTRF.Format}}</td><td>{{.Fee.Format}}</td><td>{{.TotalToTRF.Format}}</td></tr>
{{end}}</table>{{end}}

<table>
{{range .Summary}}<tr><td>{{.Label}}</td><td>{{.Amount.Format}}</td></tr>
{{end}}</table>

{{if .PieSVG}}<div class="chart">{{.PieSVG}}</div>{{end}}
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"isTotal": func(i int, lines []ClubLine) bool { return i == len(lines)-1 },
}).Parse(reportTmplText))

// RenderHTML produces the printable report document.
func RenderHTML(app core.Application, result core.FundingResult, warnings []core.Warning) (string, error) {
	doc := NewDocument(app, result, warnings)
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return buf.String(), nil
}
