package match

import "time"

// Match is a scheduled or played fixture between two teams.
type Match struct {
	ID         string
	LeagueID   string
	HomeTeamID string
	AwayTeamID string
	MatchDay   int
	KickoffAt  time.Time
	HomeScore  int
	AwayScore  int
	IsPlayed   bool
}
