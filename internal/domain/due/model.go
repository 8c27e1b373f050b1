package due

import (
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/domain/skater"
)

// PlayerDueStatus is emitted for a player whose scoring gap exceeds the expected one
// and whose team has a game on the evaluation date.
type PlayerDueStatus struct {
	Player                   skater.PlayerBaseline `json:"player"`
	LastGoalDate             time.Time             `json:"last_goal_date"`
	DaysSinceLastGoal        int                   `json:"days_since_last_goal"`
	ExpectedDaysBetweenGoals float64               `json:"expected_days_between_goals"`
	NextGameOpponent         string                `json:"next_game_opponent"`
	NextGameStartTime        string                `json:"next_game_start_time"`
}

// ExpectedDaysBetweenGoals scales the team's game cadence by games-per-goal.
// Callers must exclude goalsPerGame == 0 before calling.
func ExpectedDaysBetweenGoals(goalsPerGame, averageCadence float64) float64 {
	return (1 / goalsPerGame) * averageCadence
}

// IsDue requires the drought to be strictly longer than expected.
func IsDue(daysSinceLastGoal int, expectedDays float64) bool {
	return float64(daysSinceLastGoal) > expectedDays
}
