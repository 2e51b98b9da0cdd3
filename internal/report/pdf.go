package report

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"grantcalc/internal/core"
)

// PDFConfig controls the headless-Chromium print step.
type PDFConfig struct {
	ChromiumPath string
	Timeout      time.Duration
}

// PDFRenderer prints the HTML report to PDF via headless Chromium. If
// Chromium is unavailable it returns an error so the caller can retry or
// fall back to another format.
type PDFRenderer struct {
	cfg PDFConfig
}

func NewPDFRenderer(cfg PDFConfig) *PDFRenderer {
	return &PDFRenderer{cfg: cfg}
}

// Render builds the report HTML and prints it as landscape letter.
func (r *PDFRenderer) Render(ctx context.Context, app core.Application, result core.FundingResult, warnings []core.Warning) ([]byte, error) {
	html, err := RenderHTML(app, result, warnings)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.cfg.ChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.cfg.ChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := r.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err = chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(11).
				WithPaperHeight(8.5).
				Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdfBuf, nil
}
