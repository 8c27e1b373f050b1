package report

import (
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nhl-due-tracker/internal/domain/due"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
	"github.com/valyala/bytebufferpool"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

const (
	EmptyMessage = "No players are past due based on last season's scoring rate."
	titleLine    = "Past due goal scorers with games today:"
	headerLine   = "Player | Team | Days Since Last Goal | Expected Days | Opponent | Game Time"
	dividerLine  = "------ | ---- | -------------------- | ------------- | -------- | ---------"
)

// RenderText renders the pipe-delimited table printed by the CLI. Lines are
// joined by newlines with no trailing newline.
func RenderText(items []due.PlayerDueStatus) string {
	if len(items) == 0 {
		return EmptyMessage
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(titleLine)
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(headerLine)
	_ = buf.WriteByte('\n')
	_, _ = buf.WriteString(dividerLine)

	for _, item := range items {
		_ = buf.WriteByte('\n')
		writeRow(buf, item)
	}

	return buf.String()
}

func writeRow(buf *bytebufferpool.ByteBuffer, item due.PlayerDueStatus) {
	fields := []string{
		item.Player.Name,
		item.Player.TeamAbbrev,
		strconv.Itoa(item.DaysSinceLastGoal),
		strconv.FormatFloat(item.ExpectedDaysBetweenGoals, 'f', 1, 64),
		item.NextGameOpponent,
		item.NextGameStartTime,
	}
	_, _ = buf.WriteString(strings.Join(fields, " | "))
}

type jsonReport struct {
	Count   int        `json:"count"`
	Players []jsonItem `json:"players"`
}

type jsonItem struct {
	PlayerID                 int64   `json:"player_id"`
	Name                     string  `json:"name"`
	TeamID                   int64   `json:"team_id"`
	TeamAbbrev               string  `json:"team_abbrev"`
	Goals                    int     `json:"goals"`
	GamesPlayed              int     `json:"games_played"`
	LastGoalDate             string  `json:"last_goal_date"`
	DaysSinceLastGoal        int     `json:"days_since_last_goal"`
	ExpectedDaysBetweenGoals float64 `json:"expected_days_between_goals"`
	Opponent                 string  `json:"opponent"`
	GameTime                 string  `json:"game_time"`
}

// RenderJSON encodes the same records for machine consumers.
func RenderJSON(items []due.PlayerDueStatus) ([]byte, error) {
	out := jsonReport{Count: len(items), Players: make([]jsonItem, 0, len(items))}
	for _, item := range items {
		out.Players = append(out.Players, jsonItem{
			PlayerID:                 item.Player.PlayerID,
			Name:                     item.Player.Name,
			TeamID:                   item.Player.TeamID,
			TeamAbbrev:               item.Player.TeamAbbrev,
			Goals:                    item.Player.Goals,
			GamesPlayed:              item.Player.GamesPlayed,
			LastGoalDate:             calendar.Format(item.LastGoalDate),
			DaysSinceLastGoal:        item.DaysSinceLastGoal,
			ExpectedDaysBetweenGoals: item.ExpectedDaysBetweenGoals,
			Opponent:                 item.NextGameOpponent,
			GameTime:                 item.NextGameStartTime,
		})
	}

	raw, err := sonic.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return raw, nil
}

// Render picks the renderer for format. An unknown format is an error.
func Render(format string, items []due.PlayerDueStatus) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return RenderText(items), nil
	case FormatJSON:
		raw, err := RenderJSON(items)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}
