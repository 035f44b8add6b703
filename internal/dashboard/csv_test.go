package dashboard

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"softwaresur_backend/internal/quotes/transport"
)

func sampleRecord() transport.QuoteRequestResponse {
	service := "Desarrollo Web"
	amount := 2500.00
	responded := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	return transport.QuoteRequestResponse{
		ID:              uuid.New(),
		TrackingID:      "SS-000007",
		Name:            "Ana Pérez",
		Email:           "ana@example.com",
		ServiceInterest: &service,
		Message:         "Necesito un sitio, con tienda \"online\"\ny facturación.",
		SubmittedAt:     time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		Status:          transport.StatusRespondido,
		QuotedAmount:    &amount,
		RespondedAt:     &responded,
	}
}

func TestBuildCSV_StartsWithUTF8BOM(t *testing.T) {
	payload, err := BuildCSV([]transport.QuoteRequestResponse{sampleRecord()})
	if err != nil {
		t.Fatalf("BuildCSV failed: %v", err)
	}
	if !bytes.HasPrefix(payload, utf8BOM) {
		t.Fatalf("CSV export must start with a UTF-8 BOM")
	}
}

func TestBuildCSV_RoundTripsSpecialCharacters(t *testing.T) {
	record := sampleRecord()
	payload, err := BuildCSV([]transport.QuoteRequestResponse{record})
	if err != nil {
		t.Fatalf("BuildCSV failed: %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(payload, utf8BOM)))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if len(rows[0]) != len(csvHeader) {
		t.Fatalf("header has %d columns, want %d", len(rows[0]), len(csvHeader))
	}

	row := rows[1]
	if row[0] != record.TrackingID {
		t.Fatalf("tracking ID column = %q, want %q", row[0], record.TrackingID)
	}
	if row[4] != record.Message {
		t.Fatalf("message with quotes and newline mangled: %q", row[4])
	}
	if row[7] != "2500.00" {
		t.Fatalf("amount column = %q, want 2500.00", row[7])
	}
}

func TestBuildCSV_EmptyOptionalColumns(t *testing.T) {
	record := sampleRecord()
	record.ServiceInterest = nil
	record.QuotedAmount = nil
	record.RespondedAt = nil

	payload, err := BuildCSV([]transport.QuoteRequestResponse{record})
	if err != nil {
		t.Fatalf("BuildCSV failed: %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(payload, utf8BOM)))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	row := rows[1]
	for _, idx := range []int{3, 7, 8} {
		if row[idx] != "" {
			t.Fatalf("column %d should be empty, got %q", idx, row[idx])
		}
	}
}

func TestExportFilename_IsDated(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	got := ExportFilename(now)
	if got != "solicitudes-cotizacion-2026-08-29.csv" {
		t.Fatalf("ExportFilename = %q", got)
	}
}
