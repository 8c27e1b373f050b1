package nhlapi

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type seasonsEnvelope struct {
	Seasons []seasonItem `json:"seasons"`
}

type seasonItem struct {
	SeasonID               flexInt `json:"seasonId"`
	RegularSeasonStartDate string  `json:"regularSeasonStartDate"`
	RegularSeasonEndDate   string  `json:"regularSeasonEndDate"`
}

type skaterSummaryEnvelope struct {
	Data []skaterSummaryItem `json:"data"`
}

type skaterSummaryItem struct {
	PlayerID    flexInt `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	TeamID      flexInt `json:"teamId"`
	TeamAbbrevs string  `json:"teamAbbrevs"`
	Goals       flexInt `json:"goals"`
	GamesPlayed flexInt `json:"gamesPlayed"`
}

type gameLogEnvelope struct {
	Data []gameLogItem `json:"data"`
}

type gameLogItem struct {
	GameDate string  `json:"gameDate"`
	Goals    flexInt `json:"goals"`
}

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GameDate string        `json:"gameDate"`
	Teams    scheduleTeams `json:"teams"`
}

type scheduleTeams struct {
	Home *scheduleSide `json:"home"`
	Away *scheduleSide `json:"away"`
}

type scheduleSide struct {
	Team *teamRef `json:"team"`
}

type teamRef struct {
	ID   flexInt `json:"id"`
	Name string  `json:"name"`
}

// flexInt accepts a JSON number, a numeric string or null. Anything else decodes to zero.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := sonic.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*f = flexInt(parseLooseInt(raw))
		return nil
	}

	*f = flexInt(parseLooseInt(string(trimmed)))
	return nil
}

func (f flexInt) Int() int {
	return int(f)
}

func (f flexInt) Int64() int64 {
	return int64(f)
}

func parseLooseInt(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return parsed
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int64(parsed)
}
