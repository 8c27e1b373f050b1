package skater

// PlayerBaseline is a skater's prior-season scoring profile.
type PlayerBaseline struct {
	PlayerID    int64
	Name        string
	TeamID      int64
	TeamAbbrev  string
	Goals       int
	GamesPlayed int
}

// GoalsPerGame is 0 when no games were played.
func (p PlayerBaseline) GoalsPerGame() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.Goals) / float64(p.GamesPlayed)
}

// FilterByTeams keeps baselines whose team is in teams, preserving order.
func FilterByTeams(items []PlayerBaseline, teams map[int64]struct{}) []PlayerBaseline {
	out := make([]PlayerBaseline, 0, len(items))
	for _, item := range items {
		if _, ok := teams[item.TeamID]; !ok {
			continue
		}
		out = append(out, item)
	}
	return out
}
