package club

// Club is a bowling club with its teams, players and a home alley.
type Club struct {
	ID          string
	Name        string
	ShortName   string
	FoundedYear int
	Balance     int64
	LaneCount   int
	LogoURL     string
}
