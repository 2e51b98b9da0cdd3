package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Report formats the worker knows how to render.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ReportRequestMessage asks the report worker to render a saved application.
// It carries only the application number; the worker fetches the snapshot
// from storage and reruns the calculation itself.
type ReportRequestMessage struct {
	JobID             string    `json:"job_id"`
	ApplicationNumber string    `json:"application_number"`
	Formats           []string  `json:"formats"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewReportRequestMessage creates a render request with a fresh job ID.
func NewReportRequestMessage(applicationNumber string, formats []string) *ReportRequestMessage {
	return &ReportRequestMessage{
		JobID:             uuid.NewString(),
		ApplicationNumber: applicationNumber,
		Formats:           formats,
		Timestamp:         time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestMessageFromJSON creates a message from JSON bytes.
func ReportRequestMessageFromJSON(data []byte) (*ReportRequestMessage, error) {
	var msg ReportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
