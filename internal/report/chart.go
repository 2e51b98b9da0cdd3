package report

import (
	"fmt"
	"math"
	"strings"

	"grantcalc/internal/core"
)

// ChartSlice is one category of the funding-breakdown pie.
type ChartSlice struct {
	Label string
	Value core.Money
	Color string
}

// ChartSlices maps a result onto the five chart categories. Zero-valued
// categories are omitted so they do not render as degenerate slices.
func ChartSlices(r core.FundingResult) []ChartSlice {
	all := []ChartSlice{
		{"Host Contributions", core.Money{Cents: r.TotalHostDDF.Cents + r.TotalHostCashDirect.Cents + r.TotalHostCashTRF.Cents}, "#ff9999"},
		{"International Contributions", core.Money{Cents: r.TotalInternationalDDF.Cents + r.TotalInternationalCashDirect.Cents + r.TotalInternationalCashTRF.Cents}, "#66b3ff"},
		{"World Fund Match", r.WorldFundMatch, "#99ff99"},
		{"Other Donors", core.Money{Cents: r.TotalOtherDonorsDirect.Cents + r.TotalOtherDonorsTRF.Cents}, "#ffcc99"},
		{"Endowed Gift", r.EndowedGift, "#c2c2f0"},
	}
	slices := make([]ChartSlice, 0, len(all))
	for _, s := range all {
		if s.Value.Cents > 0 {
			slices = append(slices, s)
		}
	}
	return slices
}

const (
	pieSize   = 320.0
	pieRadius = 130.0
)

// PieSVG renders the slices as a standalone SVG pie chart with percentage
// labels and a legend. Returns an empty string when there is nothing to
// draw, so templates can collapse the chart section.
func PieSVG(slices []ChartSlice) string {
	var total int64
	for _, s := range slices {
		total += s.Value.Cents
	}
	if total <= 0 {
		return ""
	}

	cx, cy := pieSize/2, pieSize/2
	legendW := 200.0

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`,
		pieSize+legendW, pieSize, pieSize+legendW, pieSize)

	if len(slices) == 1 {
		// A single category fills the whole circle; an arc path would collapse.
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`, cx, cy, pieRadius, slices[0].Color)
	} else {
		// Start at 12 o'clock, sweep clockwise, matching the source chart.
		angle := -math.Pi / 2
		for _, s := range slices {
			frac := float64(s.Value.Cents) / float64(total)
			next := angle + frac*2*math.Pi
			x1, y1 := cx+pieRadius*math.Cos(angle), cy+pieRadius*math.Sin(angle)
			x2, y2 := cx+pieRadius*math.Cos(next), cy+pieRadius*math.Sin(next)
			large := 0
			if frac > 0.5 {
				large = 1
			}
			fmt.Fprintf(&b, `<path d="M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d 1 %.1f,%.1f Z" fill="%s"/>`,
				cx, cy, x1, y1, pieRadius, pieRadius, large, x2, y2, s.Color)
			angle = next
		}
	}

	// Percentage labels at each slice midpoint
	angle := -math.Pi / 2
	for _, s := range slices {
		frac := float64(s.Value.Cents) / float64(total)
		mid := angle + frac*math.Pi
		lx, ly := cx+pieRadius*0.6*math.Cos(mid), cy+pieRadius*0.6*math.Sin(mid)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%.1f%%</text>`,
			lx, ly, frac*100)
		angle += frac * 2 * math.Pi
	}

	// Legend
	for i, s := range slices {
		y := 24.0 + float64(i)*22
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="14" height="14" fill="%s"/>`, pieSize+8, y, s.Color)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12">%s (%s)</text>`,
			pieSize+28, y+12, escapeXML(s.Label), s.Value.Format())
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
