package team

// Team is one club squad registered in a league.
type Team struct {
	ID       string
	ClubID   string
	LeagueID string
	Name     string
	Rank     int
	Points   int
}
