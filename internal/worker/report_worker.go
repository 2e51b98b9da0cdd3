// Package worker renders report files for queued render requests.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"grantcalc/internal/amqp"
	"grantcalc/internal/core"
	applog "grantcalc/internal/log"
	"grantcalc/internal/report"
	"grantcalc/internal/store"
)

// PDFRenderer prints a report to PDF. Satisfied by *report.PDFRenderer.
type PDFRenderer interface {
	Render(ctx context.Context, app core.Application, result core.FundingResult, warnings []core.Warning) ([]byte, error)
}

// ReportWorker consumes render requests, reruns the funding calculation for
// the stored snapshot, and writes report files to the output directory.
type ReportWorker struct {
	reader store.ApplicationReader
	pdf    PDFRenderer
	outDir string
}

func NewReportWorker(reader store.ApplicationReader, pdf PDFRenderer, outDir string) *ReportWorker {
	return &ReportWorker{
		reader: reader,
		pdf:    pdf,
		outDir: outDir,
	}
}

// HandleReportRequest processes a single render request from the queue.
// An error from any format requeues the whole job; renders are idempotent,
// so a retry simply overwrites the files it already produced.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error {
	slog.InfoContext(ctx, "Processing report request",
		applog.FieldJobID, msg.JobID,
		applog.FieldApplicationNumber, msg.ApplicationNumber,
		"formats", msg.Formats)

	app, err := w.reader.Get(ctx, msg.ApplicationNumber)
	if err != nil {
		return fmt.Errorf("load application %s: %w", msg.ApplicationNumber, err)
	}

	result := core.CalculateTotals(app.HostClubs, app.InternationalClubs, app.OtherDonors, app.EndowedGift)
	warnings := append(core.CheckFundingRules(result), core.CheckDonorEligibility(app.OtherDonors)...)

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, format := range msg.Formats {
		var data []byte
		switch format {
		case amqp.FormatPDF:
			data, err = w.pdf.Render(ctx, app, result, warnings)
		case amqp.FormatXLSX:
			data, err = report.WriteXLSX(app, result, warnings)
		default:
			slog.WarnContext(ctx, "Unknown report format, skipping",
				applog.FieldJobID, msg.JobID, applog.FieldFormat, format)
			continue
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := filepath.Join(w.outDir, fmt.Sprintf("%s_report.%s", msg.ApplicationNumber, format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.InfoContext(ctx, "Report written",
			applog.FieldJobID, msg.JobID,
			applog.FieldOutputPath, path,
			"bytes", len(data),
			applog.FieldWarningCount, len(warnings))
	}

	return nil
}
