package kegelapi

import (
	"context"
	"fmt"

	"github.com/robertKrusekopf/kegelsim-client/internal/usecase"
)

type simulationResponse struct {
	MatchesSimulated int   `json:"matches_simulated"`
	MatchDay         int   `json:"match_day"`
	SeasonID         int64 `json:"season_id"`
}

func (c *Client) SimulateMatchDay(ctx context.Context) (usecase.SimulationResult, error) {
	var payload simulationResponse
	if err := c.postJSON(ctx, "/simulate/match_day", nil, &payload); err != nil {
		return usecase.SimulationResult{}, fmt.Errorf("simulate match day: %w", err)
	}
	return mapSimulationResult(payload), nil
}

func (c *Client) SimulateSeason(ctx context.Context) (usecase.SimulationResult, error) {
	var payload simulationResponse
	if err := c.postJSON(ctx, "/simulate/season", nil, &payload); err != nil {
		return usecase.SimulationResult{}, fmt.Errorf("simulate season: %w", err)
	}
	return mapSimulationResult(payload), nil
}

func (c *Client) TransitionSeason(ctx context.Context) error {
	if err := c.postJSON(ctx, "/season/transition", nil, nil); err != nil {
		return fmt.Errorf("transition season: %w", err)
	}
	return nil
}

func mapSimulationResult(payload simulationResponse) usecase.SimulationResult {
	return usecase.SimulationResult{
		MatchesSimulated: payload.MatchesSimulated,
		MatchDay:         payload.MatchDay,
		SeasonID:         formatID(payload.SeasonID),
	}
}
