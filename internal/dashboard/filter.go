package dashboard

import (
	"strings"

	"softwaresur_backend/internal/quotes/transport"
)

// Filter narrows a listing the same way the admin dashboard does: an
// exact status match (empty or "todos" keeps everything) combined with a
// case-insensitive substring search over name, email, message and
// tracking ID.
func Filter(records []transport.QuoteRequestResponse, status, search string) []transport.QuoteRequestResponse {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]transport.QuoteRequestResponse, 0, len(records))
	for _, r := range records {
		if status != "" && status != "todos" && r.Status != status {
			continue
		}
		if needle != "" && !matchesSearch(&r, needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r *transport.QuoteRequestResponse, needle string) bool {
	for _, h := range []string{r.Name, r.Email, r.Message, r.TrackingID} {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
