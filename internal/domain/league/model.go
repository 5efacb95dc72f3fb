package league

// League is one division within a season.
type League struct {
	ID       string
	SeasonID string
	Name     string
	Tier     int
	TeamIDs  []string
}
