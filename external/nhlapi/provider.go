package nhlapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/domain/gamelog"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/schedule"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/season"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/skater"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
	"github.com/riskibarqy/nhl-due-tracker/internal/usecase"
)

const regularSeasonGameType = 2

func (c *Client) CurrentSeason(ctx context.Context) (season.ID, error) {
	var payload seasonsEnvelope
	if err := c.doJSON(ctx, c.statsURL("/seasons/current", nil), &payload); err != nil {
		return 0, err
	}
	if len(payload.Seasons) == 0 || payload.Seasons[0].SeasonID <= 0 {
		return 0, fmt.Errorf("%w: current season missing from response", usecase.ErrDependencyUnavailable)
	}
	return season.ID(payload.Seasons[0].SeasonID.Int64()), nil
}

func (c *Client) SeasonDateRange(ctx context.Context, id season.ID) (season.DateRange, error) {
	if id <= 0 {
		return season.DateRange{}, fmt.Errorf("%w: season id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload seasonsEnvelope
	if err := c.doJSON(ctx, c.statsURL("/seasons/"+id.String(), nil), &payload); err != nil {
		return season.DateRange{}, err
	}
	if len(payload.Seasons) == 0 {
		return season.DateRange{}, fmt.Errorf("%w: season %s missing from response", usecase.ErrDependencyUnavailable, id)
	}

	item := payload.Seasons[0]
	start, ok := calendar.ParseDate(item.RegularSeasonStartDate)
	if !ok {
		return season.DateRange{}, fmt.Errorf("%w: season %s has invalid regular season start %q", usecase.ErrDependencyUnavailable, id, item.RegularSeasonStartDate)
	}
	end, ok := calendar.ParseDate(item.RegularSeasonEndDate)
	if !ok {
		return season.DateRange{}, fmt.Errorf("%w: season %s has invalid regular season end %q", usecase.ErrDependencyUnavailable, id, item.RegularSeasonEndDate)
	}
	return season.DateRange{Start: start, End: end}, nil
}

// TopScorers returns regular-season skaters of season id with at least minGoals goals,
// in provider order. Rows without a player or team id are dropped.
func (c *Client) TopScorers(ctx context.Context, id season.ID, minGoals int) ([]skater.PlayerBaseline, error) {
	query := url.Values{}
	query.Set("isAggregate", "false")
	query.Set("isGame", "false")
	query.Set("reportName", "skatersummary")
	query.Set("cayenneExp", fmt.Sprintf("seasonId=%s and gameTypeId=%d", id, regularSeasonGameType))

	var payload skaterSummaryEnvelope
	if err := c.doJSON(ctx, c.restURL("/skater/summary", query), &payload); err != nil {
		return nil, err
	}

	out := make([]skater.PlayerBaseline, 0, len(payload.Data))
	dropped := 0
	for _, item := range payload.Data {
		if item.Goals.Int() < minGoals {
			continue
		}
		if item.PlayerID <= 0 || item.TeamID <= 0 {
			dropped++
			continue
		}
		out = append(out, skater.PlayerBaseline{
			PlayerID:    item.PlayerID.Int64(),
			Name:        strings.TrimSpace(item.PlayerName),
			TeamID:      item.TeamID.Int64(),
			TeamAbbrev:  strings.TrimSpace(item.TeamAbbrevs),
			Goals:       item.Goals.Int(),
			GamesPlayed: item.GamesPlayed.Int(),
		})
	}
	if dropped > 0 {
		c.logger.DebugContext(ctx, "dropped skater summary rows without ids", "season_id", id.String(), "rows", dropped)
	}
	return out, nil
}

func (c *Client) PlayerGameLog(ctx context.Context, playerID int64, id season.ID) ([]gamelog.Entry, error) {
	query := url.Values{}
	query.Set("isAggregate", "false")
	query.Set("isGame", "true")
	query.Set("reportName", "playergamelog")
	query.Set("cayenneExp", fmt.Sprintf("playerId=%d and seasonId=%s", playerID, id))

	var payload gameLogEnvelope
	if err := c.doJSON(ctx, c.restURL("/player/summary", query), &payload); err != nil {
		return nil, err
	}

	out := make([]gamelog.Entry, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, gamelog.Entry{GameDate: item.GameDate, Goals: item.Goals.Int()})
	}
	return out, nil
}

func (c *Client) TeamSchedule(ctx context.Context, teamID int64, start, end time.Time) ([]schedule.DateBlock, error) {
	query := url.Values{}
	query.Set("teamId", strconv.FormatInt(teamID, 10))
	query.Set("startDate", calendar.Format(start))
	query.Set("endDate", calendar.Format(end))

	var payload scheduleEnvelope
	if err := c.doJSON(ctx, c.statsURL("/schedule", query), &payload); err != nil {
		return nil, err
	}

	out := make([]schedule.DateBlock, 0, len(payload.Dates))
	for _, item := range payload.Dates {
		out = append(out, schedule.DateBlock{Date: item.Date})
	}
	return out, nil
}

func (c *Client) DaySchedule(ctx context.Context, date time.Time) (schedule.DaySchedule, error) {
	query := url.Values{}
	query.Set("date", calendar.Format(date))

	var payload scheduleEnvelope
	if err := c.doJSON(ctx, c.statsURL("/schedule", query), &payload); err != nil {
		return schedule.DaySchedule{}, err
	}

	var out schedule.DaySchedule
	for _, block := range payload.Dates {
		for _, game := range block.Games {
			out.Games = append(out.Games, schedule.Game{
				StartTime: game.GameDate,
				Home:      mapSide(game.Teams.Home),
				Away:      mapSide(game.Teams.Away),
			})
		}
	}
	return out, nil
}

func mapSide(side *scheduleSide) *schedule.TeamRef {
	if side == nil || side.Team == nil {
		return nil
	}
	return &schedule.TeamRef{ID: side.Team.ID.Int64(), Name: strings.TrimSpace(side.Team.Name)}
}
