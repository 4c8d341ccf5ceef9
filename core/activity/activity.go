// Package activity derives per-user activity summaries from raw usage
// events and classifies them into recency buckets.
package activity

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Bucket is one of the three activity levels a user can be in. The
// assignment is a total, mutually exclusive partition for any fixed "now".
type Bucket string

const (
	BucketActive   Bucket = "active"
	BucketPartial  Bucket = "partial"
	BucketInactive Bucket = "inactive"
)

const (
	activeWindow   = 30 * 24 * time.Hour
	inactiveWindow = 60 * 24 * time.Hour
)

// Buckets lists all activity levels, most active first.
var Buckets = []Bucket{BucketActive, BucketPartial, BucketInactive}

// IsValid reports whether b is a known bucket ("all" is not a bucket).
func (b Bucket) IsValid() bool {
	for _, known := range Buckets {
		if b == known {
			return true
		}
	}
	return false
}

// Event is a single raw usage log entry.
type Event struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Summary is the per-user aggregate of the raw usage log. A user absent
// from the aggregation map is equivalent to the zero Summary: no usage,
// no latest activity, hence inactive.
type Summary struct {
	UsageCount     int       `json:"usage_count"`
	LatestActivity null.Time `json:"latest_activity"`
}

// Classify maps a summary into a bucket given the current time.
//
// The 60-day boundary is inclusive (a user whose last activity is exactly
// 60 days old is inactive) while the 30-day boundary is exclusive (exactly
// 30 days old is partial, not active). The asymmetry is deliberate and
// load-bearing: callers depend on the exact partition.
func Classify(s Summary, now time.Time) Bucket {
	if s.UsageCount == 0 || !s.LatestActivity.Valid {
		return BucketInactive
	}
	latest := s.LatestActivity.Time
	if !latest.After(now.Add(-inactiveWindow)) { // latest <= now-60d
		return BucketInactive
	}
	if latest.After(now.Add(-activeWindow)) { // latest > now-30d
		return BucketActive
	}
	return BucketPartial
}

// DaysSince returns full days elapsed between the latest activity and now;
// -1 when there is no recorded activity.
func DaysSince(s Summary, now time.Time) int {
	if !s.LatestActivity.Valid {
		return -1
	}
	d := now.Sub(s.LatestActivity.Time)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Aggregate folds raw events into one Summary per distinct user ID.
// Input ordering is irrelevant; users with zero events are absent from
// the result.
func Aggregate(events []Event) map[string]Summary {
	summaries := make(map[string]Summary, len(events))
	for _, ev := range events {
		s := summaries[ev.UserID]
		s.UsageCount++
		if !s.LatestActivity.Valid || ev.Timestamp.After(s.LatestActivity.Time) {
			s.LatestActivity = null.TimeFrom(ev.Timestamp)
		}
		summaries[ev.UserID] = s
	}
	return summaries
}
