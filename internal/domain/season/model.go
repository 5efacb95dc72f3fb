package season

// Season is the top-level simulation context. Exactly one season is
// current at a time; a season transition replaces it.
type Season struct {
	ID        string
	Name      string
	Year      int
	IsCurrent bool
}
