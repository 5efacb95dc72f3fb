package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/lineup"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/cache"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/pubsub"
)

// LineupGateway is the remote side of the lineup editor: one load when
// the editor opens, one save when it submits.
type LineupGateway interface {
	MatchLineup(ctx context.Context, matchID, managedClubID string) (lineup.MatchLineup, error)
	SaveLineup(ctx context.Context, submission lineup.Submission) error
}

// EditorState tracks one editor session. Saved, Failed and Cancelled
// are terminal; reopen the editor to start over.
type EditorState string

const (
	StateLoading    EditorState = "loading"
	StateEditing    EditorState = "editing"
	StateSubmitting EditorState = "submitting"
	StateSaved      EditorState = "saved"
	StateFailed     EditorState = "failed"
	StateCancelled  EditorState = "cancelled"
)

// LineupService opens editor sessions. Lineup data is never cached:
// every open is a fresh load, but a successful save joins the same
// invalidation broadcast the simulation triggers use.
type LineupService struct {
	gateway LineupGateway
	cache   *cache.Store
	bus     *pubsub.Bus
	logger  *logging.Logger
}

func NewLineupService(gateway LineupGateway, store *cache.Store, bus *pubsub.Bus, logger *logging.Logger) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		gateway: gateway,
		cache:   store,
		bus:     bus,
		logger:  logger,
	}
}

// OpenEditor loads eligible players, any previously saved assignment,
// and the opponent lineup when editing the away side. The returned
// editor is owned by a single caller; opening the same match twice
// yields two independent sessions.
func (s *LineupService) OpenEditor(ctx context.Context, matchID, managedClubID string) (*Editor, error) {
	matchID = strings.TrimSpace(matchID)
	managedClubID = strings.TrimSpace(managedClubID)
	if matchID == "" || managedClubID == "" {
		return nil, fmt.Errorf("%w: match_id and managed_club_id are required", ErrInvalidInput)
	}

	loaded, err := s.gateway.MatchLineup(ctx, matchID, managedClubID)
	if err != nil {
		return nil, fmt.Errorf("load match lineup: %w", err)
	}

	e := &Editor{
		svc:      s,
		state:    StateEditing,
		matchID:  loaded.MatchID,
		teamID:   loaded.TeamID,
		isHome:   loaded.IsHomeTeam,
		eligible: append([]lineup.EligiblePlayer(nil), loaded.Eligible...),
	}
	if e.matchID == "" {
		e.matchID = matchID
	}
	for i := range e.slots {
		e.slots[i].Position = i + 1
	}
	for _, p := range loaded.Eligible {
		if p.Position >= 1 && p.Position <= lineup.Positions {
			e.slots[p.Position-1].PlayerID = p.ID
		}
	}
	if !loaded.IsHomeTeam {
		if loaded.HomeLineupSet {
			e.opponent = append([]lineup.Slot(nil), loaded.Opponent...)
		} else {
			e.homeLineupRequired = true
		}
	}

	s.logger.DebugContext(ctx, "lineup editor opened",
		"match_id", e.matchID,
		"team_id", e.teamID,
		"is_home", e.isHome,
		"home_lineup_required", e.homeLineupRequired,
	)
	return e, nil
}

func (s *LineupService) afterLineupSaved(ctx context.Context, matchID string) {
	s.cache.Invalidate(cache.KeyMatch)
	s.bus.Publish(pubsub.TopicSimulationCompleted)
	s.logger.InfoContext(ctx, "lineup saved", "match_id", matchID)
}

// Editor is one open lineup editing session. It is not safe for
// concurrent use; each open editor has exactly one owner.
type Editor struct {
	svc   *LineupService
	state EditorState

	matchID string
	teamID  string
	isHome  bool

	eligible           []lineup.EligiblePlayer
	slots              [lineup.Positions]lineup.Slot
	opponent           []lineup.Slot
	homeLineupRequired bool
}

func (e *Editor) State() EditorState { return e.state }
func (e *Editor) MatchID() string    { return e.matchID }
func (e *Editor) TeamID() string     { return e.teamID }
func (e *Editor) IsHomeTeam() bool   { return e.isHome }

// HomeLineupRequired reports whether this away-side session is blocked
// on the home lineup existing. Always false for the home side.
func (e *Editor) HomeLineupRequired() bool { return e.homeLineupRequired }

// EligiblePlayers returns the players who may be assigned, in server
// order.
func (e *Editor) EligiblePlayers() []lineup.EligiblePlayer {
	return append([]lineup.EligiblePlayer(nil), e.eligible...)
}

// OpponentLineup returns the other side's submitted positions, empty
// when none has been submitted.
func (e *Editor) OpponentLineup() []lineup.Slot {
	return append([]lineup.Slot(nil), e.opponent...)
}

// Slots returns the current assignment, ordered by position.
func (e *Editor) Slots() []lineup.Slot {
	return append([]lineup.Slot(nil), e.slots[:]...)
}

// Slot returns the slot at a 1-based position.
func (e *Editor) Slot(position int) (lineup.Slot, error) {
	if position < 1 || position > lineup.Positions {
		return lineup.Slot{}, fmt.Errorf("%w: position %d out of range 1..%d", ErrInvalidInput, position, lineup.Positions)
	}
	return e.slots[position-1], nil
}

// IsComplete reports whether every position has a player.
func (e *Editor) IsComplete() bool {
	for _, s := range e.slots {
		if !s.IsFilled() {
			return false
		}
	}
	return true
}

// Assign places a player at a position. A player already occupying
// another slot is moved, not rejected: the old slot is cleared first.
// An empty playerID clears the position.
func (e *Editor) Assign(position int, playerID string) error {
	if err := e.requireEditing(); err != nil {
		return err
	}
	if position < 1 || position > lineup.Positions {
		return fmt.Errorf("%w: position %d out of range 1..%d", ErrInvalidInput, position, lineup.Positions)
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		e.slots[position-1].PlayerID = ""
		return nil
	}
	if !e.isEligible(playerID) {
		return fmt.Errorf("%w: player %s is not eligible for this match", ErrInvalidInput, playerID)
	}

	for i := range e.slots {
		if e.slots[i].PlayerID == playerID {
			e.slots[i].PlayerID = ""
		}
	}
	e.slots[position-1].PlayerID = playerID
	return nil
}

// Clear empties a position.
func (e *Editor) Clear(position int) error {
	return e.Assign(position, "")
}

// Submit sends the assignment to the server. Completeness and the
// home-before-away gate are checked locally first; a violation costs no
// network round-trip and leaves the session in Editing.
func (e *Editor) Submit(ctx context.Context) error {
	if err := e.requireEditing(); err != nil {
		return err
	}
	if !e.IsComplete() {
		return ErrLineupIncomplete
	}
	if e.homeLineupRequired {
		return ErrHomeLineupRequired
	}

	e.state = StateSubmitting
	submission := lineup.Submission{
		MatchID:    e.matchID,
		TeamID:     e.teamID,
		IsHomeTeam: e.isHome,
		Slots:      e.slots,
	}

	if err := e.svc.gateway.SaveLineup(ctx, submission); err != nil {
		if errors.Is(err, ErrHomeLineupRequired) {
			// The server could not produce a home lineup after all;
			// fall back into the gated editing state.
			e.state = StateEditing
			e.homeLineupRequired = true
			return fmt.Errorf("save lineup: %w", err)
		}
		e.state = StateFailed
		return fmt.Errorf("save lineup: %w", err)
	}

	e.state = StateSaved
	e.svc.afterLineupSaved(ctx, e.matchID)
	return nil
}

// Cancel discards the session with no server effect. A no-op once the
// session has already ended.
func (e *Editor) Cancel() {
	if e.state == StateEditing {
		e.state = StateCancelled
	}
}

func (e *Editor) requireEditing() error {
	switch e.state {
	case StateEditing:
		return nil
	case StateSubmitting:
		return fmt.Errorf("%w: submission in flight", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: state=%s", ErrEditorClosed, e.state)
	}
}

func (e *Editor) isEligible(playerID string) bool {
	for _, p := range e.eligible {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
