package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/domain/gamelog"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/schedule"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/season"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/skater"
	usecasemock "github.com/riskibarqy/nhl-due-tracker/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	evalDate      = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	seasonStart   = time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC)
	currentSeason = season.ID(20232024)
)

func sameDay(want time.Time) any {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

func daysBefore(n int) string {
	return evalDate.AddDate(0, 0, -n).Format("2006-01-02")
}

// everyThreeDays yields a team schedule with a 3.0-day cadence ending on the evaluation date.
func everyThreeDays() []schedule.DateBlock {
	return []schedule.DateBlock{
		{Date: daysBefore(9)},
		{Date: daysBefore(6)},
		{Date: daysBefore(3)},
		{Date: daysBefore(0)},
	}
}

func slateWith(games ...schedule.Game) schedule.DaySchedule {
	return schedule.DaySchedule{Games: games}
}

func leafsVsBruins() schedule.Game {
	return schedule.Game{
		StartTime: "2024-01-16T00:00:00Z",
		Home:      &schedule.TeamRef{ID: 10, Name: "Toronto Maple Leafs"},
		Away:      &schedule.TeamRef{ID: 6, Name: "Boston Bruins"},
	}
}

func sniper(id, teamID int64) skater.PlayerBaseline {
	return skater.PlayerBaseline{
		PlayerID:    id,
		Name:        fmt.Sprintf("Sniper %d", id),
		TeamID:      teamID,
		TeamAbbrev:  "TOR",
		Goals:       40,
		GamesPlayed: 40,
	}
}

func expectSeasonContext(provider *usecasemock.StatsProvider, slate schedule.DaySchedule, scorers []skater.PlayerBaseline) {
	provider.On("CurrentSeason", mock.Anything).Return(currentSeason, nil).Once()
	provider.On("SeasonDateRange", mock.Anything, currentSeason).
		Return(season.DateRange{Start: seasonStart, End: time.Date(2024, time.April, 18, 0, 0, 0, 0, time.UTC)}, nil).
		Once()
	provider.On("DaySchedule", mock.Anything, sameDay(evalDate)).Return(slate, nil).Once()
	provider.On("TopScorers", mock.Anything, season.ID(20232023), DefaultMinGoals).Return(scorers, nil).Once()
}

func TestDueService_Evaluate_EmitsDuePlayer(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	player := sniper(8478483, 10)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{player})

	provider.On("PlayerGameLog", mock.Anything, player.PlayerID, currentSeason).
		Return([]gamelog.Entry{
			{GameDate: daysBefore(14), Goals: 1},
			{GameDate: daysBefore(10), Goals: 2},
			{GameDate: daysBefore(7), Goals: 0},
			{GameDate: daysBefore(3), Goals: 0},
		}, nil).
		Once()
	provider.On("TeamSchedule", mock.Anything, int64(10), sameDay(seasonStart), sameDay(evalDate)).
		Return(everyThreeDays(), nil).
		Once()

	svc := NewDueService(provider, DueOptions{}, nil)
	got, err := svc.Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Len(t, got, 1)

	status := got[0]
	if status.DaysSinceLastGoal != 10 {
		t.Fatalf("unexpected days since last goal: got=%d want=10", status.DaysSinceLastGoal)
	}
	if status.ExpectedDaysBetweenGoals != 3.0 {
		t.Fatalf("unexpected expected days: got=%v want=3.0", status.ExpectedDaysBetweenGoals)
	}
	if !status.LastGoalDate.Equal(evalDate.AddDate(0, 0, -10)) {
		t.Fatalf("unexpected last goal date: %s", status.LastGoalDate)
	}
	if status.NextGameOpponent != "Boston Bruins" || status.NextGameStartTime != "2024-01-16T00:00:00Z" {
		t.Fatalf("unexpected matchup: %+v", status)
	}
	if status.Player != player {
		t.Fatalf("baseline must be carried unchanged: %+v", status.Player)
	}
}

func TestDueService_Evaluate_RecentGoalIsNotDue(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	player := sniper(8478483, 10)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{player})

	provider.On("PlayerGameLog", mock.Anything, player.PlayerID, currentSeason).
		Return([]gamelog.Entry{{GameDate: daysBefore(2), Goals: 1}}, nil).
		Once()
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return(everyThreeDays(), nil).
		Once()

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDueService_Evaluate_EqualDroughtIsNotDue(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	player := sniper(8478483, 10)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{player})

	provider.On("PlayerGameLog", mock.Anything, player.PlayerID, currentSeason).
		Return([]gamelog.Entry{{GameDate: daysBefore(3), Goals: 1}}, nil).
		Once()
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return(everyThreeDays(), nil).
		Once()

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	if len(got) != 0 {
		t.Fatalf("3 days since goal with 3.0 expected must not be due, got=%+v", got)
	}
}

func TestDueService_Evaluate_FiltersIdleTeamsBeforeFetching(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	idle := sniper(1, 99)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{idle})

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Empty(t, got)

	provider.AssertNotCalled(t, "PlayerGameLog", mock.Anything, mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "TeamSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDueService_Evaluate_NoGoalSkipsScheduleLookup(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	player := sniper(8478483, 10)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{player})

	provider.On("PlayerGameLog", mock.Anything, player.PlayerID, currentSeason).
		Return([]gamelog.Entry{{GameDate: daysBefore(20), Goals: 0}, {GameDate: "", Goals: 3}}, nil).
		Once()

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Empty(t, got)
	provider.AssertNotCalled(t, "TeamSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDueService_Evaluate_FallsBackToPlayedDates(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	player := sniper(8478483, 10)
	player.Goals = 20 // 0.5 goals per game
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{player})

	// played every 2 days -> cadence 2.0, expected 4.0
	provider.On("PlayerGameLog", mock.Anything, player.PlayerID, currentSeason).
		Return([]gamelog.Entry{
			{GameDate: daysBefore(9), Goals: 1},
			{GameDate: daysBefore(7), Goals: 0},
			{GameDate: daysBefore(5), Goals: 0},
			{GameDate: daysBefore(3), Goals: 0},
		}, nil).
		Once()
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return([]schedule.DateBlock{{Date: ""}, {Date: "garbage"}}, nil).
		Once()

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if got[0].ExpectedDaysBetweenGoals != 4.0 || got[0].DaysSinceLastGoal != 9 {
		t.Fatalf("unexpected fallback evaluation: %+v", got[0])
	}
}

func TestDueService_Evaluate_SkipsMissingSignals(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	singleGameTeam := sniper(1, 10)
	noGames := sniper(2, 6)
	noGames.GamesPlayed = 0
	due := sniper(3, 6)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{singleGameTeam, noGames, due})

	oldGoal := []gamelog.Entry{{GameDate: daysBefore(30), Goals: 1}}

	// one scheduled date is non-empty, so no fallback and cadence is 0
	provider.On("PlayerGameLog", mock.Anything, int64(1), currentSeason).Return(oldGoal, nil).Once()
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return([]schedule.DateBlock{{Date: daysBefore(1)}}, nil).
		Once()

	provider.On("PlayerGameLog", mock.Anything, int64(2), currentSeason).Return(oldGoal, nil).Once()
	provider.On("PlayerGameLog", mock.Anything, int64(3), currentSeason).Return(oldGoal, nil).Once()
	provider.On("TeamSchedule", mock.Anything, int64(6), mock.Anything, mock.Anything).
		Return(everyThreeDays(), nil).
		Twice()

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if got[0].Player.PlayerID != 3 || got[0].NextGameOpponent != "Toronto Maple Leafs" {
		t.Fatalf("unexpected due player: %+v", got[0])
	}
}

func TestDueService_Evaluate_ProviderFailureAbortsRun(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	first := sniper(1, 10)
	second := sniper(2, 10)
	expectSeasonContext(provider, slateWith(leafsVsBruins()), []skater.PlayerBaseline{first, second})

	provider.On("PlayerGameLog", mock.Anything, int64(1), currentSeason).
		Return([]gamelog.Entry{{GameDate: daysBefore(30), Goals: 1}}, nil).
		Once()
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return(everyThreeDays(), nil).
		Once()
	provider.On("PlayerGameLog", mock.Anything, int64(2), currentSeason).
		Return(nil, &ProviderError{Resource: "https://api.nhle.com/stats/rest/en/player/summary", StatusCode: 503}).
		Once()

	got, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	if err == nil {
		t.Fatalf("expected provider failure")
	}
	if got != nil {
		t.Fatalf("no partial result expected, got=%+v", got)
	}
	if !errors.Is(err, ErrDependencyUnavailable) || !IsProviderError(err) {
		t.Fatalf("expected provider error kind, got %v", err)
	}
	if want := "fetch game log player_id=2: failed to fetch https://api.nhle.com/stats/rest/en/player/summary: 503"; err.Error() != want {
		t.Fatalf("unexpected error message: got=%q want=%q", err.Error(), want)
	}
}

func TestDueService_Evaluate_SeasonFailureIsTerminal(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	provider.On("CurrentSeason", mock.Anything).
		Return(season.ID(0), &ProviderError{Resource: "seasons/current", Err: errors.New("dial tcp: no such host")}).
		Once()

	_, err := NewDueService(provider, DueOptions{}, nil).Evaluate(context.Background(), evalDate)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	provider.AssertNotCalled(t, "DaySchedule", mock.Anything, mock.Anything)
}

func TestDueService_Evaluate_ZeroDateUsesClock(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	expectSeasonContext(provider, slateWith(), nil)

	svc := NewDueService(provider, DueOptions{}, nil)
	svc.now = func() time.Time { return evalDate.Add(15 * time.Hour) }

	got, err := svc.Evaluate(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDueService_Evaluate_ParallelKeepsCandidateOrder(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	candidates := make([]skater.PlayerBaseline, 0, 6)
	for i := int64(1); i <= 6; i++ {
		candidates = append(candidates, sniper(i, 10))
	}
	expectSeasonContext(provider, slateWith(leafsVsBruins()), candidates)

	for _, player := range candidates {
		// even ids scored 2 days ago and are not due
		daysAgo := 12
		if player.PlayerID%2 == 0 {
			daysAgo = 2
		}
		delay := time.Duration(7-player.PlayerID) * 5 * time.Millisecond
		entries := []gamelog.Entry{{GameDate: daysBefore(daysAgo), Goals: 1}}
		provider.On("PlayerGameLog", mock.Anything, player.PlayerID, currentSeason).
			After(delay).
			Return(entries, nil).
			Once()
	}
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return(everyThreeDays(), nil).
		Times(len(candidates))

	got, err := NewDueService(provider, DueOptions{MaxWorkers: 3}, nil).Evaluate(context.Background(), evalDate)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, want := range []int64{1, 3, 5} {
		if got[i].Player.PlayerID != want {
			t.Fatalf("unexpected order at %d: got=%d want=%d", i, got[i].Player.PlayerID, want)
		}
	}
}

func TestDueService_Evaluate_ParallelFailureAbortsRun(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	candidates := []skater.PlayerBaseline{sniper(1, 10), sniper(2, 10), sniper(3, 10)}
	expectSeasonContext(provider, slateWith(leafsVsBruins()), candidates)

	boom := &ProviderError{Resource: "player/summary", StatusCode: 500}
	provider.On("PlayerGameLog", mock.Anything, int64(2), currentSeason).Return(nil, boom).Maybe()
	provider.On("PlayerGameLog", mock.Anything, mock.Anything, currentSeason).
		Return([]gamelog.Entry{{GameDate: daysBefore(12), Goals: 1}}, nil).
		Maybe()
	provider.On("TeamSchedule", mock.Anything, int64(10), mock.Anything, mock.Anything).
		Return(everyThreeDays(), nil).
		Maybe()

	got, err := NewDueService(provider, DueOptions{MaxWorkers: 3}, nil).Evaluate(context.Background(), evalDate)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected provider failure, got %v", err)
	}
	if got != nil {
		t.Fatalf("no partial result expected, got=%+v", got)
	}
}

func TestFirstSlotError_PrefersRealFailureOverCancellation(t *testing.T) {
	t.Parallel()

	real := errors.New("boom")
	slots := []candidateResult{
		{ok: true},
		{err: fmt.Errorf("fetch: %w", context.Canceled)},
		{err: real},
	}
	if err := firstSlotError(slots); !errors.Is(err, real) {
		t.Fatalf("expected real failure, got %v", err)
	}
	if err := firstSlotError(slots[:2]); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation when nothing else failed, got %v", err)
	}
	if err := firstSlotError(slots[:1]); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
