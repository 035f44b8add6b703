package service

import (
	"fmt"
	"regexp"
	"time"
)

const trackingPrefix = "SS-"

var sequenceTrackingPattern = regexp.MustCompile(`^SS-\d{6}$`)

// formatTrackingID renders a counter value as a customer-facing tracking
// ID, e.g. 7 -> "SS-000007". Values beyond six digits keep all digits.
func formatTrackingID(n int64) string {
	return fmt.Sprintf("%s%06d", trackingPrefix, n)
}

// fallbackTrackingID builds a recognizable non-sequential ID used when the
// counter cannot be incremented. Intake still succeeds with this ID.
func fallbackTrackingID(now time.Time) string {
	return fmt.Sprintf("%sERR-%d", trackingPrefix, now.UnixMilli())
}

// isSequenceTrackingID reports whether id came from the counter rather
// than the fallback path.
func isSequenceTrackingID(id string) bool {
	return sequenceTrackingPattern.MatchString(id)
}
