package kegelapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/club"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/league"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/match"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/player"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/season"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/team"
)

type clubPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	FoundedYear int    `json:"founded_year"`
	Balance     int64  `json:"balance"`
	LaneCount   int    `json:"lane_count"`
	LogoURL     string `json:"logo_url"`
}

type teamPayload struct {
	ID       int64  `json:"id"`
	ClubID   int64  `json:"club_id"`
	LeagueID int64  `json:"league_id"`
	Name     string `json:"name"`
	Rank     int    `json:"rank"`
	Points   int    `json:"points"`
}

type leaguePayload struct {
	ID       int64   `json:"id"`
	SeasonID int64   `json:"season_id"`
	Name     string  `json:"name"`
	Tier     int     `json:"tier"`
	TeamIDs  []int64 `json:"team_ids"`
}

type playerPayload struct {
	ID          int64  `json:"id"`
	ClubID      int64  `json:"club_id"`
	TeamID      int64  `json:"team_id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Strength    int    `json:"strength"`
	Form        int    `json:"form"`
	IsAvailable bool   `json:"is_available"`
}

type matchPayload struct {
	ID         int64  `json:"id"`
	LeagueID   int64  `json:"league_id"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	MatchDay   int    `json:"match_day"`
	KickoffAt  string `json:"kickoff_at"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	IsPlayed   bool   `json:"is_played"`
}

type seasonPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	IsCurrent bool   `json:"is_current"`
}

func (c *Client) Clubs(ctx context.Context) ([]club.Club, error) {
	var payload []clubPayload
	if err := c.getJSON(ctx, "/clubs", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch clubs: %w", err)
	}

	out := make([]club.Club, 0, len(payload))
	for _, item := range payload {
		out = append(out, club.Club{
			ID:          formatID(item.ID),
			Name:        item.Name,
			ShortName:   item.ShortName,
			FoundedYear: item.FoundedYear,
			Balance:     item.Balance,
			LaneCount:   item.LaneCount,
			LogoURL:     item.LogoURL,
		})
	}
	return out, nil
}

func (c *Client) Teams(ctx context.Context) ([]team.Team, error) {
	var payload []teamPayload
	if err := c.getJSON(ctx, "/teams", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}

	out := make([]team.Team, 0, len(payload))
	for _, item := range payload {
		out = append(out, team.Team{
			ID:       formatID(item.ID),
			ClubID:   formatID(item.ClubID),
			LeagueID: formatID(item.LeagueID),
			Name:     item.Name,
			Rank:     item.Rank,
			Points:   item.Points,
		})
	}
	return out, nil
}

func (c *Client) Leagues(ctx context.Context) ([]league.League, error) {
	var payload []leaguePayload
	if err := c.getJSON(ctx, "/leagues", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}

	out := make([]league.League, 0, len(payload))
	for _, item := range payload {
		teamIDs := make([]string, 0, len(item.TeamIDs))
		for _, id := range item.TeamIDs {
			teamIDs = append(teamIDs, formatID(id))
		}
		out = append(out, league.League{
			ID:       formatID(item.ID),
			SeasonID: formatID(item.SeasonID),
			Name:     item.Name,
			Tier:     item.Tier,
			TeamIDs:  teamIDs,
		})
	}
	return out, nil
}

func (c *Client) Players(ctx context.Context) ([]player.Player, error) {
	var payload []playerPayload
	if err := c.getJSON(ctx, "/players", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	out := make([]player.Player, 0, len(payload))
	for _, item := range payload {
		out = append(out, player.Player{
			ID:          formatID(item.ID),
			ClubID:      formatID(item.ClubID),
			TeamID:      formatID(item.TeamID),
			Name:        item.Name,
			Age:         item.Age,
			Strength:    item.Strength,
			Form:        item.Form,
			IsAvailable: item.IsAvailable,
		})
	}
	return out, nil
}

func (c *Client) Matches(ctx context.Context) ([]match.Match, error) {
	var payload []matchPayload
	if err := c.getJSON(ctx, "/matches", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}

	out := make([]match.Match, 0, len(payload))
	for _, item := range payload {
		out = append(out, match.Match{
			ID:         formatID(item.ID),
			LeagueID:   formatID(item.LeagueID),
			HomeTeamID: formatID(item.HomeTeamID),
			AwayTeamID: formatID(item.AwayTeamID),
			MatchDay:   item.MatchDay,
			KickoffAt:  parseServerTime(item.KickoffAt),
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			IsPlayed:   item.IsPlayed,
		})
	}
	return out, nil
}

func (c *Client) CurrentSeason(ctx context.Context) (season.Season, error) {
	var payload seasonPayload
	if err := c.getJSON(ctx, "/seasons/current", nil, &payload); err != nil {
		return season.Season{}, fmt.Errorf("fetch current season: %w", err)
	}

	return season.Season{
		ID:        formatID(payload.ID),
		Name:      payload.Name,
		Year:      payload.Year,
		IsCurrent: payload.IsCurrent,
	}, nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func parseServerTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
