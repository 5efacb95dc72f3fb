package kegelapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/lineup"
	"github.com/robertKrusekopf/kegelsim-client/internal/usecase"
)

type availablePlayerPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Strength    int    `json:"strength"`
	IsAvailable bool   `json:"is_available"`
	Position    int    `json:"position"`
}

type lineupPositionPayload struct {
	PlayerID   int64  `json:"player_id" validate:"required,min=1"`
	Position   int    `json:"position" validate:"required,min=1,max=6"`
	PlayerName string `json:"player_name,omitempty" validate:"-"`
}

type opponentLineupPayload struct {
	IsSet     bool                    `json:"is_set"`
	Positions []lineupPositionPayload `json:"positions"`
}

type availablePlayersResponse struct {
	TeamID         int64                    `json:"team_id"`
	IsHomeTeam     bool                     `json:"is_home_team"`
	Players        []availablePlayerPayload `json:"players"`
	OpponentLineup *opponentLineupPayload   `json:"opponent_lineup"`
}

type saveLineupRequest struct {
	TeamID     int64                   `json:"team_id" validate:"required,min=1"`
	IsHomeTeam bool                    `json:"is_home_team"`
	Positions  []lineupPositionPayload `json:"positions" validate:"required,len=6,dive"`
}

// MatchLineup loads everything the lineup editor needs in one call:
// eligible players (with any previously saved positions), which side is
// being edited, and the opponent lineup or its absence.
func (c *Client) MatchLineup(ctx context.Context, matchID, managedClubID string) (lineup.MatchLineup, error) {
	query := url.Values{}
	query.Set("managed_club_id", managedClubID)

	var payload availablePlayersResponse
	path := "/matches/" + url.PathEscape(matchID) + "/available-players"
	if err := c.getJSON(ctx, path, query, &payload); err != nil {
		return lineup.MatchLineup{}, fmt.Errorf("fetch available players match_id=%s: %w", matchID, err)
	}

	out := lineup.MatchLineup{
		MatchID:    matchID,
		TeamID:     formatID(payload.TeamID),
		IsHomeTeam: payload.IsHomeTeam,
		Eligible:   make([]lineup.EligiblePlayer, 0, len(payload.Players)),
	}
	for _, item := range payload.Players {
		out.Eligible = append(out.Eligible, lineup.EligiblePlayer{
			ID:          formatID(item.ID),
			Name:        item.Name,
			Strength:    item.Strength,
			IsAvailable: item.IsAvailable,
			Position:    item.Position,
		})
	}

	if payload.IsHomeTeam {
		out.HomeLineupSet = true
	} else if payload.OpponentLineup != nil && payload.OpponentLineup.IsSet {
		out.HomeLineupSet = true
		out.Opponent = make([]lineup.Slot, 0, len(payload.OpponentLineup.Positions))
		for _, item := range payload.OpponentLineup.Positions {
			out.Opponent = append(out.Opponent, lineup.Slot{
				Position: item.Position,
				PlayerID: formatID(item.PlayerID),
			})
		}
	}

	return out, nil
}

// SaveLineup submits a complete six-position assignment. The request is
// validated before any network I/O; the server's distinguished
// HOME_TEAM_LINEUP_CREATION_FAILED code maps to ErrHomeLineupRequired.
func (c *Client) SaveLineup(ctx context.Context, submission lineup.Submission) error {
	if err := submission.Validate(); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	teamID, err := parseID(submission.TeamID)
	if err != nil {
		return fmt.Errorf("%w: team_id: %v", usecase.ErrInvalidInput, err)
	}

	req := saveLineupRequest{
		TeamID:     teamID,
		IsHomeTeam: submission.IsHomeTeam,
		Positions:  make([]lineupPositionPayload, 0, lineup.Positions),
	}
	for _, slot := range submission.Slots {
		playerID, err := parseID(slot.PlayerID)
		if err != nil {
			return fmt.Errorf("%w: position %d player_id: %v", usecase.ErrInvalidInput, slot.Position, err)
		}
		req.Positions = append(req.Positions, lineupPositionPayload{
			PlayerID: playerID,
			Position: slot.Position,
		})
	}
	if err := c.validate.StructCtx(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	path := "/matches/" + url.PathEscape(submission.MatchID) + "/lineup"
	if err := c.postJSON(ctx, path, req, nil); err != nil {
		var apiErr *APIError
		if crerr.As(err, &apiErr) && apiErr.Code == ErrorCodeHomeTeamLineupCreationFailed {
			return fmt.Errorf("%w: %s", usecase.ErrHomeLineupRequired, apiErr.Message)
		}
		return fmt.Errorf("save lineup match_id=%s: %w", submission.MatchID, err)
	}
	return nil
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}
