package logs

import (
	"strings"
	"time"
)

const (
	timestampLayout         = "2006-01-02 15:04:05"
	timestampFractionLayout = "2006-01-02 15:04:05.000000"

	fetchErrorPrefix = "Error fetching logs: "
)

// Event is one log record as read from a stream.
type Event struct {
	Timestamp time.Time
	Message   string
}

// FormatTimestamp renders t in loc. The fraction is printed as microseconds and
// only when the timestamp is not on a whole second.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	if t.Nanosecond() == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampFractionLayout)
}

// FormatEvent renders "[<timestamp>] <message>" with the message trimmed.
func FormatEvent(e Event, loc *time.Location) string {
	return "[" + FormatTimestamp(e.Timestamp, loc) + "] " + strings.TrimSpace(e.Message)
}

// FormatFetchError renders a failed fetch as a printable line.
func FormatFetchError(err error) string {
	return fetchErrorPrefix + err.Error()
}

// FormatEvents renders events in order.
func FormatEvents(events []Event, loc *time.Location) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, FormatEvent(e, loc))
	}
	return lines
}
