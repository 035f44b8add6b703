package dashboard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"softwaresur_backend/internal/quotes/transport"
)

// utf8BOM makes Excel open the export with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"ID de Rastreo", "Nombre", "Email", "Servicio de Interés", "Mensaje",
	"Estado", "Fecha de Envío", "Monto Cotizado", "Fecha de Respuesta",
}

// BuildCSV renders quote requests as a spreadsheet-friendly CSV export.
func BuildCSV(records []transport.QuoteRequestResponse) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.TrackingID,
			r.Name,
			r.Email,
			stringOrEmpty(r.ServiceInterest),
			r.Message,
			r.Status,
			r.SubmittedAt.Format(time.RFC3339),
			amountOrEmpty(r.QuotedAmount),
			timeOrEmpty(r.RespondedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename builds a dated download name like
// "solicitudes-cotizacion-2026-08-29.csv".
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("solicitudes-cotizacion-%s.csv", now.Format("2006-01-02"))
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amountOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
