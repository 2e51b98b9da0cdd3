// Package services orchestrates application persistence and the async
// report pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"grantcalc/internal/amqp"
	"grantcalc/internal/core"
	applog "grantcalc/internal/log"
	"grantcalc/internal/store"
)

// ReportPublisher enqueues render jobs. Satisfied by *amqp.Client.
type ReportPublisher interface {
	PublishReportRequest(ctx context.Context, applicationNumber string, formats []string) error
}

// GrantService saves application snapshots and queues report rendering.
type GrantService struct {
	writer    store.ApplicationWriter
	publisher ReportPublisher
}

func NewGrantService(writer store.ApplicationWriter, publisher ReportPublisher) *GrantService {
	return &GrantService{
		writer:    writer,
		publisher: publisher,
	}
}

// SaveApplication validates and persists the snapshot, then queues an async
// report render. A publish failure is logged but never fails the save; the
// snapshot is durable and reports can be rendered on demand.
func (s *GrantService) SaveApplication(ctx context.Context, app core.Application) error {
	if err := app.Validate(); err != nil {
		return fmt.Errorf("validate application: %w", err)
	}
	if err := s.writer.Save(ctx, app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}

	if s.publisher == nil {
		slog.DebugContext(ctx, "Report publisher not available, skipping render request",
			applog.FieldApplicationNumber, app.Number)
		return nil
	}
	formats := []string{amqp.FormatPDF, amqp.FormatXLSX}
	if err := s.publisher.PublishReportRequest(ctx, app.Number, formats); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report request",
			applog.FieldApplicationNumber, app.Number, applog.FieldError, err)
	}
	return nil
}
