package player

// Player is a club member who can be fielded in match lineups.
type Player struct {
	ID          string
	ClubID      string
	TeamID      string
	Name        string
	Age         int
	Strength    int
	Form        int
	IsAvailable bool
}
