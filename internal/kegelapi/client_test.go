package kegelapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/lineup"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/resilience"
	"github.com/robertKrusekopf/kegelsim-client/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        5 * time.Second,
		MaxRetries:     maxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func completeSubmission() lineup.Submission {
	sub := lineup.Submission{MatchID: "42", TeamID: "7", IsHomeTeam: true}
	for i := range sub.Slots {
		sub.Slots[i] = lineup.Slot{Position: i + 1, PlayerID: []string{"11", "12", "13", "14", "15", "16"}[i]}
	}
	return sub
}

func TestClient_ClubsDecodesPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/clubs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":3,"name":"KSV Gut Holz","short_name":"KSV","founded_year":1952,"balance":120000,"lane_count":4}]`))
	}), 0)

	clubs, err := client.Clubs(t.Context())
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	require.Equal(t, "3", clubs[0].ID)
	require.Equal(t, "KSV Gut Holz", clubs[0].Name)
	require.Equal(t, 4, clubs[0].LaneCount)
}

func TestClient_GetRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}), 1)

	_, err := client.Teams(t.Context())
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestClient_GetDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such resource"}`))
	}), 3)

	_, err := client.Players(t.Context())
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())

	require.ErrorIs(t, err, usecase.ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "no such resource", apiErr.Message)
}

func TestClient_SimulateMatchDayPostsOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/simulate/match_day", r.URL.Path)
		_, _ = w.Write([]byte(`{"matches_simulated":5,"match_day":12,"season_id":2}`))
	}), 3)

	res, err := client.SimulateMatchDay(t.Context())
	require.NoError(t, err)
	require.Equal(t, 5, res.MatchesSimulated)
	require.Equal(t, "2", res.SeasonID)
	require.EqualValues(t, 1, calls.Load())
}

func TestClient_MutationsAreNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), 3)

	_, err := client.SimulateSeason(t.Context())
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}

func TestClient_MatchLineupAwayWithoutHomeLineup(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matches/42/available-players", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("managed_club_id"))
		_, _ = w.Write([]byte(`{
			"team_id": 9,
			"is_home_team": false,
			"players": [{"id":1,"name":"A","strength":55,"is_available":true,"position":0}],
			"opponent_lineup": {"is_set": false}
		}`))
	}), 0)

	loaded, err := client.MatchLineup(t.Context(), "42", "3")
	require.NoError(t, err)
	require.False(t, loaded.IsHomeTeam)
	require.False(t, loaded.HomeLineupSet)
	require.Empty(t, loaded.Opponent)
	require.Len(t, loaded.Eligible, 1)
}

func TestClient_MatchLineupAwayWithHomeLineup(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"team_id": 9,
			"is_home_team": false,
			"players": [],
			"opponent_lineup": {"is_set": true, "positions": [
				{"player_id":21,"position":1},{"player_id":22,"position":2},{"player_id":23,"position":3},
				{"player_id":24,"position":4},{"player_id":25,"position":5},{"player_id":26,"position":6}
			]}
		}`))
	}), 0)

	loaded, err := client.MatchLineup(t.Context(), "42", "3")
	require.NoError(t, err)
	require.True(t, loaded.HomeLineupSet)
	require.Len(t, loaded.Opponent, 6)
	require.Equal(t, "21", loaded.Opponent[0].PlayerID)
}

func TestClient_SaveLineupPostsBody(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/matches/42/lineup", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}), 0)

	require.NoError(t, client.SaveLineup(t.Context(), completeSubmission()))
	require.Contains(t, string(gotBody), `"team_id":7`)
	require.Contains(t, string(gotBody), `"position":6`)
}

func TestClient_SaveLineupRejectsInvalidSubmissionLocally(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}), 0)

	incomplete := completeSubmission()
	incomplete.Slots[3].PlayerID = ""
	err := client.SaveLineup(t.Context(), incomplete)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	duplicated := completeSubmission()
	duplicated.Slots[2].PlayerID = duplicated.Slots[0].PlayerID
	err = client.SaveLineup(t.Context(), duplicated)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	require.EqualValues(t, 0, calls.Load())
}

func TestClient_SaveLineupMapsHomeLineupCreationFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"home team has no lineup","error_code":"HOME_TEAM_LINEUP_CREATION_FAILED"}`))
	}), 0)

	err := client.SaveLineup(t.Context(), completeSubmission())
	require.ErrorIs(t, err, usecase.ErrHomeLineupRequired)
}

func TestClient_CircuitBreakerRejectsAfterThreshold(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    time.Second,
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.Matches(t.Context())
		require.Error(t, err)
		require.NotErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}

	_, err := client.Matches(t.Context())
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestClient_SequentialGetsAreNotDeduplicated(t *testing.T) {
	t.Parallel()

	// Dedup only coalesces concurrent requests for the same URL.
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}), 0)

	_, err := client.Leagues(t.Context())
	require.NoError(t, err)
	_, err = client.Leagues(t.Context())
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestClient_MessagesRoundTrip(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/messages":
			_, _ = w.Write([]byte(`[{"id":1,"subject":"Matchday results","is_read":false,"created_at":"2026-03-14T12:00:00Z"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/messages/1/read":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}), 0)

	items, err := client.Messages(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, items[0].IsRead)
	require.Equal(t, 2026, items[0].CreatedAt.Year())

	require.NoError(t, client.MarkMessageRead(t.Context(), "1"))
}
