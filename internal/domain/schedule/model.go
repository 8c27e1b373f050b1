package schedule

import (
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
)

// DateBlock is one scheduled date from a team schedule query.
type DateBlock struct {
	Date string
}

// TeamRef identifies one side of a game.
type TeamRef struct {
	ID   int64
	Name string
}

// Game is one game on a day's slate. Home or Away may be nil when the provider omits the side.
type Game struct {
	StartTime string
	Home      *TeamRef
	Away      *TeamRef
}

// DaySchedule is the full slate of games for one date.
type DaySchedule struct {
	Games []Game
}

// Matchup is what a team faces in its game of the day.
type Matchup struct {
	Opponent  string
	StartTime string
}

// ExtractDates parses the scheduled dates, skipping blocks without a usable date.
func ExtractDates(blocks []DateBlock) []time.Time {
	out := make([]time.Time, 0, len(blocks))
	for _, block := range blocks {
		date, ok := calendar.ParseDate(block.Date)
		if !ok {
			continue
		}
		out = append(out, date)
	}
	return out
}

// TeamsPlaying returns the ids of every team with a game on the slate.
func (d DaySchedule) TeamsPlaying() map[int64]struct{} {
	out := make(map[int64]struct{}, len(d.Games)*2)
	for _, game := range d.Games {
		for _, side := range []*TeamRef{game.Home, game.Away} {
			if side == nil {
				continue
			}
			out[side.ID] = struct{}{}
		}
	}
	return out
}

// NextGameForTeam finds the first game on the slate involving teamID.
func (d DaySchedule) NextGameForTeam(teamID int64) (Matchup, bool) {
	for _, game := range d.Games {
		if game.Home != nil && game.Home.ID == teamID {
			return Matchup{Opponent: sideName(game.Away), StartTime: game.StartTime}, true
		}
		if game.Away != nil && game.Away.ID == teamID {
			return Matchup{Opponent: sideName(game.Home), StartTime: game.StartTime}, true
		}
	}
	return Matchup{}, false
}

func sideName(side *TeamRef) string {
	if side == nil {
		return ""
	}
	return side.Name
}
