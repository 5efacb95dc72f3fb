package lineup

import "fmt"

// Positions is the number of slots in one team's lineup. Every match
// lineup assigns exactly this many players to numbered positions.
const Positions = 6

// StrohPlayerName is the sentinel shown for a position that has no
// performance record in post-match views.
const StrohPlayerName = "Stroh"

// Slot binds one numbered position (1..Positions) to a player, or to
// nobody when PlayerID is empty.
type Slot struct {
	Position int
	PlayerID string
}

// IsFilled reports whether a player occupies the slot.
func (s Slot) IsFilled() bool {
	return s.PlayerID != ""
}

// EligiblePlayer is a player who may be assigned to a slot in the
// edited lineup. Position carries a pre-existing assignment (0 when the
// player is not part of a previously saved lineup).
type EligiblePlayer struct {
	ID          string
	Name        string
	Strength    int
	IsAvailable bool
	Position    int
}

// MatchLineup is the server's answer to opening the lineup editor for
// one side of one match.
type MatchLineup struct {
	MatchID       string
	TeamID        string
	IsHomeTeam    bool
	Eligible      []EligiblePlayer
	Opponent      []Slot
	HomeLineupSet bool
}

// Submission is the final assignment sent to the server. All slots must
// be filled with pairwise distinct players.
type Submission struct {
	MatchID    string
	TeamID     string
	IsHomeTeam bool
	Slots      [Positions]Slot
}

// Validate checks completeness and player exclusivity.
func (s Submission) Validate() error {
	seen := make(map[string]int, Positions)
	for i, slot := range s.Slots {
		wantPos := i + 1
		if slot.Position != wantPos {
			return fmt.Errorf("slot %d carries position %d", wantPos, slot.Position)
		}
		if !slot.IsFilled() {
			return fmt.Errorf("position %d is not filled", wantPos)
		}
		if prev, ok := seen[slot.PlayerID]; ok {
			return fmt.Errorf("player %s assigned to positions %d and %d", slot.PlayerID, prev, wantPos)
		}
		seen[slot.PlayerID] = wantPos
	}
	return nil
}

// ResultRow is one position's performance line in a played match.
type ResultRow struct {
	Position   int
	PlayerID   string
	PlayerName string
	Score      int
	IsStroh    bool
}

// ResultRows pads per-position performance records to the full slot
// count, substituting a zero-score Stroh row for every position that
// has no record. Rows come back ordered by position.
func ResultRows(recorded []ResultRow) []ResultRow {
	byPosition := make(map[int]ResultRow, Positions)
	for _, row := range recorded {
		if row.Position < 1 || row.Position > Positions {
			continue
		}
		byPosition[row.Position] = row
	}

	out := make([]ResultRow, 0, Positions)
	for pos := 1; pos <= Positions; pos++ {
		row, ok := byPosition[pos]
		if !ok {
			row = ResultRow{
				Position:   pos,
				PlayerName: StrohPlayerName,
				IsStroh:    true,
			}
		}
		out = append(out, row)
	}
	return out
}
