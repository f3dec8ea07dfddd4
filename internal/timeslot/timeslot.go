package timeslot

import (
	"fmt"
	"time"
)

// Wire formats for slot labels and calendar dates.
const (
	LabelLayout = "3:04 PM"
	DateLayout  = "2006-01-02"
)

// Labels returns every slot label between startHour (inclusive) and
// endHour (exclusive) on a stepMinutes grid, e.g. "11:00 AM" through
// "7:45 PM" for 11 -> 20 with a 15-minute step.
func Labels(startHour, endHour, stepMinutes int) []string {
	if stepMinutes <= 0 {
		stepMinutes = 15
	}

	var labels []string
	for h := startHour; h < endHour; h++ {
		for m := 0; m < 60; m += stepMinutes {
			hour12 := h % 12
			if hour12 == 0 {
				hour12 = 12
			}
			ampm := "AM"
			if h >= 12 {
				ampm = "PM"
			}
			labels = append(labels, fmt.Sprintf("%d:%02d %s", hour12, m, ampm))
		}
	}
	return labels
}

// ToUTC combines a calendar date ("2006-01-02") with a slot label
// ("3:04 PM") interpreted in loc and returns the UTC instant.
//
// The wall clock is anchored in loc via time.Date, never parsed as a
// bare string, so the result follows the salon zone's offset including
// DST. A wall time skipped by a spring-forward transition normalizes
// forward by the size of the gap (2:30 AM on 2024-03-10 in LA resolves
// to 3:30 AM PDT).
func ToUTC(date, label string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	clock, err := time.Parse(LabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot label %q: %w", label, err)
	}

	local := time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		loc,
	)
	return local.UTC(), nil
}

// Label renders an instant back as its slot label in loc.
func Label(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LabelLayout)
}

// DateKey returns the canonical YYYY-MM-DD key of an instant in loc.
// Day listings and day routes are keyed by it.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// DayWindow returns the [start, end) UTC window covering the local
// calendar day named by date.
func DayWindow(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC(), nil
}

// SameMinute reports whether two instants fall in the same minute,
// ignoring seconds and below. Stored instants may carry sub-minute
// drift relative to the requested slot.
func SameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}
