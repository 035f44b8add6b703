package dashboard

import (
	"testing"

	"softwaresur_backend/internal/quotes/transport"
)

func records() []transport.QuoteRequestResponse {
	return []transport.QuoteRequestResponse{
		{TrackingID: "SS-000001", Name: "Ana Pérez", Email: "ana@example.com", Message: "Sitio web corporativo", Status: transport.StatusPendiente},
		{TrackingID: "SS-000002", Name: "Carlos Gómez", Email: "carlos@example.com", Message: "App móvil", Status: transport.StatusRevisado},
		{TrackingID: "SS-000003", Name: "Beatriz Luna", Email: "bea@example.com", Message: "Tienda online", Status: transport.StatusRespondido},
	}
}

func TestFilter_StatusExactMatch(t *testing.T) {
	got := Filter(records(), transport.StatusRevisado, "")
	if len(got) != 1 || got[0].TrackingID != "SS-000002" {
		t.Fatalf("status filter returned %+v", got)
	}
}

func TestFilter_TodosAndEmptyMatchEverything(t *testing.T) {
	if got := Filter(records(), "todos", ""); len(got) != 3 {
		t.Fatalf(`"todos" returned %d records, want 3`, len(got))
	}
	if got := Filter(records(), "", ""); len(got) != 3 {
		t.Fatalf("empty status returned %d records, want 3", len(got))
	}
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	got := Filter(records(), "", "CARLOS")
	if len(got) != 1 || got[0].TrackingID != "SS-000002" {
		t.Fatalf("search returned %+v", got)
	}
}

func TestFilter_SearchSpansFields(t *testing.T) {
	cases := []struct {
		search string
		want   string
	}{
		{"ss-000003", "SS-000003"},
		{"bea@", "SS-000003"},
		{"tienda", "SS-000003"},
		{"pérez", "SS-000001"},
	}
	for _, c := range cases {
		got := Filter(records(), "", c.search)
		if len(got) != 1 || got[0].TrackingID != c.want {
			t.Fatalf("search %q returned %+v, want %s", c.search, got, c.want)
		}
	}
}

func TestFilter_CombinesStatusAndSearch(t *testing.T) {
	got := Filter(records(), transport.StatusPendiente, "carlos")
	if len(got) != 0 {
		t.Fatalf("conflicting filters must match nothing, got %+v", got)
	}
}
