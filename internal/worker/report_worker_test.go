package worker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"grantcalc/internal/amqp"
	"grantcalc/internal/core"
	"grantcalc/internal/store/memory"
)

type fakePDF struct {
	calls int
	err   error
}

func (f *fakePDF) Render(_ context.Context, _ core.Application, _ core.FundingResult, _ []core.Warning) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	mem := memory.New()
	app := core.Application{
		Number:  "GG-55",
		Country: "Fiji",
		HostClubs: []core.Club{
			{Name: "Suva", DDF: core.Money{Cents: 1000000}, CashTRF: core.Money{Cents: 500000}},
		},
	}
	if err := mem.Save(context.Background(), app); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return mem
}

func TestHandleReportRequestWritesFiles(t *testing.T) {
	outDir := t.TempDir()
	pdf := &fakePDF{}
	w := NewReportWorker(seedStore(t), pdf, outDir)

	msg := &amqp.ReportRequestMessage{
		JobID:             "job-1",
		ApplicationNumber: "GG-55",
		Formats:           []string{amqp.FormatPDF, amqp.FormatXLSX},
	}
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if pdf.calls != 1 {
		t.Fatalf("expected one pdf render, got %d", pdf.calls)
	}

	pdfData, err := os.ReadFile(filepath.Join(outDir, "GG-55_report.pdf"))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfData, []byte("%PDF")) {
		t.Fatalf("unexpected pdf content: %q", pdfData[:8])
	}

	xlsxData, err := os.ReadFile(filepath.Join(outDir, "GG-55_report.xlsx"))
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	// xlsx is a zip archive
	if !bytes.HasPrefix(xlsxData, []byte("PK")) {
		t.Fatalf("unexpected xlsx magic: %q", xlsxData[:2])
	}
}

func TestHandleReportRequestUnknownApplication(t *testing.T) {
	w := NewReportWorker(memory.New(), &fakePDF{}, t.TempDir())
	msg := &amqp.ReportRequestMessage{JobID: "job-2", ApplicationNumber: "missing", Formats: []string{amqp.FormatXLSX}}
	if err := w.HandleReportRequest(context.Background(), msg); err == nil {
		t.Fatal("expected error for missing application")
	}
}

func TestHandleReportRequestSkipsUnknownFormat(t *testing.T) {
	outDir := t.TempDir()
	w := NewReportWorker(seedStore(t), &fakePDF{}, outDir)
	msg := &amqp.ReportRequestMessage{JobID: "job-3", ApplicationNumber: "GG-55", Formats: []string{"docx"}}
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("unknown format should be skipped, got %v", err)
	}
	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Fatalf("expected no files, got %d", len(entries))
	}
}
