package gamelog

import (
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
)

// Entry is one game row of a player's game log as delivered by the provider.
type Entry struct {
	GameDate string
	Goals    int
}

// Date parses GameDate. Entries without a usable date report false and are skipped by callers.
func (e Entry) Date() (time.Time, bool) {
	return calendar.ParseDate(e.GameDate)
}

// LastGoalDate returns the latest date on which the player scored.
func LastGoalDate(entries []Entry) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)
	for _, entry := range entries {
		if entry.Goals <= 0 {
			continue
		}
		date, ok := entry.Date()
		if !ok {
			continue
		}
		if !found || date.After(latest) {
			latest = date
			found = true
		}
	}
	return latest, found
}

// PlayedDates returns every parseable game date in source order, goal or not.
func PlayedDates(entries []Entry) []time.Time {
	out := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		date, ok := entry.Date()
		if !ok {
			continue
		}
		out = append(out, date)
	}
	return out
}
