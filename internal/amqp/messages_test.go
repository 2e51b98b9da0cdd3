package amqp

import "testing"

func TestNewReportRequestMessage(t *testing.T) {
	msg := NewReportRequestMessage("GG-1", []string{FormatPDF, FormatXLSX})
	if msg.JobID == "" {
		t.Fatal("expected a job ID")
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ReportRequestMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.JobID != msg.JobID || got.ApplicationNumber != "GG-1" || len(got.Formats) != 2 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestReportRequestMessageFromJSONInvalid(t *testing.T) {
	if _, err := ReportRequestMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
