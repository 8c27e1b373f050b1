package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/domain/gamelog"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/schedule"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/season"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/skater"
)

// StatsProvider is the data access boundary of the due evaluator. Every method
// fails with a *ProviderError on a non-success response or transport failure.
type StatsProvider interface {
	CurrentSeason(ctx context.Context) (season.ID, error)
	SeasonDateRange(ctx context.Context, id season.ID) (season.DateRange, error)
	TopScorers(ctx context.Context, id season.ID, minGoals int) ([]skater.PlayerBaseline, error)
	PlayerGameLog(ctx context.Context, playerID int64, id season.ID) ([]gamelog.Entry, error)
	TeamSchedule(ctx context.Context, teamID int64, start, end time.Time) ([]schedule.DateBlock, error)
	DaySchedule(ctx context.Context, date time.Time) (schedule.DaySchedule, error)
}
