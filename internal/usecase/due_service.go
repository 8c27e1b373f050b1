package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/due"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/gamelog"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/schedule"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/season"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/skater"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
	idgen "github.com/riskibarqy/nhl-due-tracker/internal/platform/id"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const DefaultMinGoals = 40

const (
	skipNoGoalThisSeason = "no_goal_this_season"
	skipNoCadence        = "no_cadence"
	skipNoScoringRate    = "no_scoring_rate"
	skipWithinExpected   = "within_expected_gap"
	skipNoGameToday      = "no_game_today"
)

type DueOptions struct {
	MinGoals int
	// MaxWorkers above 1 evaluates candidates on a bounded pool; output order is unchanged.
	MaxWorkers int
}

type DueService struct {
	provider StatsProvider
	opts     DueOptions
	logger   *logging.Logger
	now      func() time.Time
	newRunID func() string
}

func NewDueService(provider StatsProvider, opts DueOptions, logger *logging.Logger) *DueService {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.MinGoals <= 0 {
		opts.MinGoals = DefaultMinGoals
	}
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}

	return &DueService{
		provider: provider,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		newRunID: idgen.NewUUIDGenerator().NewID,
	}
}

// evaluationRun is the season context shared by every candidate of one run.
type evaluationRun struct {
	today       time.Time
	current     season.ID
	seasonStart time.Time
	slate       schedule.DaySchedule
	logger      *logging.Logger
}

type candidateResult struct {
	status due.PlayerDueStatus
	ok     bool
	err    error
}

// Evaluate returns the players due on today, in candidate order. A zero today
// means the current local date. Any provider failure aborts the whole run.
func (s *DueService) Evaluate(ctx context.Context, today time.Time) ([]due.PlayerDueStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DueService.Evaluate")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: stats provider is required", ErrInvalidInput)
	}

	if today.IsZero() {
		today = calendar.Today(s.now)
	} else {
		today = calendar.Date(today)
	}

	logger := s.logger.With("run_id", s.newRunID(), "evaluation_date", calendar.Format(today))

	current, err := s.provider.CurrentSeason(ctx)
	if err != nil {
		return nil, crerr.Wrap(err, "resolve current season")
	}
	previous := current.Previous()

	dates, err := s.provider.SeasonDateRange(ctx, current)
	if err != nil {
		return nil, crerr.Wrapf(err, "resolve season dates season_id=%s", current)
	}

	slate, err := s.provider.DaySchedule(ctx, today)
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch schedule date=%s", calendar.Format(today))
	}
	playing := slate.TeamsPlaying()

	scorers, err := s.provider.TopScorers(ctx, previous, s.opts.MinGoals)
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch top scorers season_id=%s", previous)
	}
	candidates := skater.FilterByTeams(scorers, playing)

	logger.InfoContext(ctx, "due evaluation started",
		"current_season", current.String(),
		"previous_season", previous.String(),
		"season_start", calendar.Format(dates.Start),
		"games_today", len(slate.Games),
		"top_scorers", len(scorers),
		"candidates", len(candidates),
		"workers", s.opts.MaxWorkers,
	)

	run := evaluationRun{
		today:       today,
		current:     current,
		seasonStart: dates.Start,
		slate:       slate,
		logger:      logger,
	}

	var out []due.PlayerDueStatus
	if s.opts.MaxWorkers <= 1 || len(candidates) <= 1 {
		out, err = s.evaluateSequential(ctx, run, candidates)
	} else {
		out, err = s.evaluateParallel(ctx, run, candidates)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("due.candidates", len(candidates)),
		attribute.Int("due.players", len(out)),
	)
	logger.InfoContext(ctx, "due evaluation finished", "candidates", len(candidates), "due_players", len(out))
	return out, nil
}

func (s *DueService) evaluateSequential(ctx context.Context, run evaluationRun, candidates []skater.PlayerBaseline) ([]due.PlayerDueStatus, error) {
	out := make([]due.PlayerDueStatus, 0, len(candidates))
	for _, player := range candidates {
		status, ok, err := s.evaluateCandidate(ctx, run, player)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, status)
		}
	}
	return out, nil
}

func (s *DueService) evaluateParallel(ctx context.Context, run evaluationRun, candidates []skater.PlayerBaseline) ([]due.PlayerDueStatus, error) {
	workerCount := s.opts.MaxWorkers
	if workerCount > len(candidates) {
		workerCount = len(candidates)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]candidateResult, len(candidates))
	var workers sync.WaitGroup
	for i := range candidates {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			var catcher panics.Catcher
			catcher.Try(func() {
				slots[i].status, slots[i].ok, slots[i].err = s.evaluateCandidate(ctx, run, candidates[i])
			})
			if recovered := catcher.Recovered(); recovered != nil {
				slots[i].err = recovered.AsError()
			}
			if slots[i].err != nil {
				cancel()
			}
		}); err != nil {
			workers.Done()
			cancel()
			workers.Wait()
			return nil, fmt.Errorf("submit candidate to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := firstSlotError(slots); err != nil {
		return nil, err
	}

	out := make([]due.PlayerDueStatus, 0, len(candidates))
	for _, slot := range slots {
		if slot.ok {
			out = append(out, slot.status)
		}
	}
	return out, nil
}

// firstSlotError prefers the lowest-index real failure over cancellations it caused in siblings.
func firstSlotError(slots []candidateResult) error {
	var cancelled error
	for _, slot := range slots {
		if slot.err == nil {
			continue
		}
		if errors.Is(slot.err, context.Canceled) {
			if cancelled == nil {
				cancelled = slot.err
			}
			continue
		}
		return slot.err
	}
	return cancelled
}

func (s *DueService) evaluateCandidate(ctx context.Context, run evaluationRun, player skater.PlayerBaseline) (due.PlayerDueStatus, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DueService.evaluateCandidate",
		trace.WithAttributes(attribute.Int64("player.id", player.PlayerID), attribute.Int64("team.id", player.TeamID)),
	)
	defer span.End()

	logger := run.logger.With("player_id", player.PlayerID, "player_name", player.Name, "team", player.TeamAbbrev)
	skip := func(reason string, args ...any) (due.PlayerDueStatus, bool, error) {
		logger.DebugContext(ctx, "candidate skipped", append([]any{"reason", reason}, args...)...)
		return due.PlayerDueStatus{}, false, nil
	}

	entries, err := s.provider.PlayerGameLog(ctx, player.PlayerID, run.current)
	if err != nil {
		return due.PlayerDueStatus{}, false, crerr.Wrapf(err, "fetch game log player_id=%d", player.PlayerID)
	}

	lastGoal, ok := gamelog.LastGoalDate(entries)
	if !ok {
		return skip(skipNoGoalThisSeason, "games_logged", len(entries))
	}

	blocks, err := s.provider.TeamSchedule(ctx, player.TeamID, run.seasonStart, run.today)
	if err != nil {
		return due.PlayerDueStatus{}, false, crerr.Wrapf(err, "fetch team schedule team_id=%d", player.TeamID)
	}

	dates := schedule.ExtractDates(blocks)
	cadenceSource := "team_schedule"
	if len(dates) == 0 {
		dates = gamelog.PlayedDates(entries)
		cadenceSource = "game_log"
	}

	cadence := schedule.AverageDaysBetween(dates)
	if cadence == 0 {
		return skip(skipNoCadence, "cadence_source", cadenceSource, "dates", len(dates))
	}

	goalsPerGame := player.GoalsPerGame()
	if goalsPerGame == 0 {
		return skip(skipNoScoringRate, "goals", player.Goals, "games_played", player.GamesPlayed)
	}

	expected := due.ExpectedDaysBetweenGoals(goalsPerGame, cadence)
	daysSince := calendar.DaysBetween(lastGoal, run.today)
	if !due.IsDue(daysSince, expected) {
		return skip(skipWithinExpected, "days_since_last_goal", daysSince, "expected_days", expected)
	}

	matchup, ok := run.slate.NextGameForTeam(player.TeamID)
	if !ok {
		return skip(skipNoGameToday)
	}

	logger.DebugContext(ctx, "candidate due",
		"days_since_last_goal", daysSince,
		"expected_days", expected,
		"cadence", cadence,
		"cadence_source", cadenceSource,
	)

	return due.PlayerDueStatus{
		Player:                   player,
		LastGoalDate:             lastGoal,
		DaysSinceLastGoal:        daysSince,
		ExpectedDaysBetweenGoals: expected,
		NextGameOpponent:         matchup.Opponent,
		NextGameStartTime:        matchup.StartTime,
	}, true, nil
}
