package service

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTrackingID_ZeroPadsToSixDigits(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "SS-000001"},
		{42, "SS-000042"},
		{999999, "SS-999999"},
		{1000000, "SS-1000000"},
	}
	for _, c := range cases {
		if got := formatTrackingID(c.n); got != c.want {
			t.Fatalf("formatTrackingID(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestFallbackTrackingID_IsRecognizable(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := fallbackTrackingID(now)
	if got != "SS-ERR-1700000000000" {
		t.Fatalf("fallbackTrackingID = %q, want SS-ERR-1700000000000", got)
	}
	if !strings.HasPrefix(got, "SS-ERR-") {
		t.Fatalf("fallback ID %q missing SS-ERR- prefix", got)
	}
	if isSequenceTrackingID(got) {
		t.Fatalf("fallback ID %q must not look like a sequence ID", got)
	}
}

func TestIsSequenceTrackingID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"SS-000001", true},
		{"SS-123456", true},
		{"SS-1234567", false},
		{"SS-ERR-1700000000000", false},
		{"XX-000001", false},
		{"SS-00001", false},
	}
	for _, c := range cases {
		if got := isSequenceTrackingID(c.id); got != c.want {
			t.Fatalf("isSequenceTrackingID(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}
