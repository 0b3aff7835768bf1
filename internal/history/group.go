package history

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/launchlens/pkg/launchlens"
)

// Bucket is a relative-time section of the history list.
type Bucket string

// Buckets in display order.
const (
	BucketToday     Bucket = "Today"
	BucketYesterday Bucket = "Yesterday"
	BucketWeek      Bucket = "Previous 7 Days"
	BucketMonth     Bucket = "Previous 30 Days"
	BucketOlder     Bucket = "Older"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{BucketToday, BucketYesterday, BucketWeek, BucketMonth, BucketOlder}

// Group sorts entries into buckets relative to local midnight of now. Entry
// order within a bucket is preserved.
func Group(entries []launchlens.HistoryEntry, now time.Time) map[Bucket][]launchlens.HistoryEntry {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.Add(-24 * time.Hour)
	weekAgo := today.Add(-7 * 24 * time.Hour)
	monthAgo := today.Add(-30 * 24 * time.Hour)

	out := make(map[Bucket][]launchlens.HistoryEntry)
	for _, e := range entries {
		at := e.CreatedAt.Time
		var b Bucket
		switch {
		case !at.Before(today):
			b = BucketToday
		case !at.Before(yesterday):
			b = BucketYesterday
		case !at.Before(weekAgo):
			b = BucketWeek
		case !at.Before(monthAgo):
			b = BucketMonth
		default:
			b = BucketOlder
		}
		out[b] = append(out[b], e)
	}
	return out
}

var titleCaser = cases.Title(language.English)

// Location returns the state when present, otherwise the country.
func Location(e launchlens.HistoryEntry) string {
	if e.State != "" {
		return e.State
	}
	return e.Country
}

// Title renders an entry as "{idea} - {State|Country}: {location}".
func Title(e launchlens.HistoryEntry) string {
	kind := launchlens.ReportTypeCountry
	if e.ReportType == launchlens.ReportTypeState {
		kind = launchlens.ReportTypeState
	}
	return fmt.Sprintf("%s - %s: %s", e.Idea, titleCaser.String(kind), Location(e))
}

// FormatDate renders a creation time like "Jul 30, 10:15 AM".
func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 03:04 PM")
}
