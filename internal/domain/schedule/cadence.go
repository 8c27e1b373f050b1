package schedule

import (
	"sort"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
)

// AverageDaysBetween returns the mean whole-day gap between consecutive dates
// after sorting. Fewer than two dates yield 0. Duplicates are kept and count as 0-day gaps.
func AverageDaysBetween(dates []time.Time) float64 {
	if len(dates) < 2 {
		return 0
	}

	sorted := append([]time.Time(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	total := 0
	for i := 1; i < len(sorted); i++ {
		total += calendar.DaysBetween(sorted[i-1], sorted[i])
	}
	return float64(total) / float64(len(sorted)-1)
}
