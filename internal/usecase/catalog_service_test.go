package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/club"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/league"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/match"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/player"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/team"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/cache"
)

type fakeCatalogSource struct {
	clubCalls   atomic.Int32
	teamCalls   atomic.Int32
	leagueCalls atomic.Int32
	playerCalls atomic.Int32
	matchCalls  atomic.Int32

	clubs []club.Club
	err   error
}

func (f *fakeCatalogSource) Clubs(context.Context) ([]club.Club, error) {
	f.clubCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.clubs, nil
}

func (f *fakeCatalogSource) Teams(context.Context) ([]team.Team, error) {
	f.teamCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []team.Team{{ID: "t1"}}, nil
}

func (f *fakeCatalogSource) Leagues(context.Context) ([]league.League, error) {
	f.leagueCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []league.League{{ID: "l1"}}, nil
}

func (f *fakeCatalogSource) Players(context.Context) ([]player.Player, error) {
	f.playerCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []player.Player{{ID: "p1"}}, nil
}

func (f *fakeCatalogSource) Matches(context.Context) ([]match.Match, error) {
	f.matchCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []match.Match{{ID: "m1"}}, nil
}

func newCatalogFixture(ttl time.Duration) (*CatalogService, *fakeCatalogSource, *cache.Store) {
	source := &fakeCatalogSource{clubs: []club.Club{{ID: "c1", Name: "KSV Gut Holz"}}}
	store := cache.NewStore(ttl)
	svc := NewCatalogService(source, store, nil)
	return svc, source, store
}

func TestCatalogService_FreshHitSkipsNetwork(t *testing.T) {
	svc, source, _ := newCatalogFixture(5 * time.Minute)

	first, err := svc.Clubs(t.Context(), false)
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	second, err := svc.Clubs(t.Context(), false)
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if got := source.clubCalls.Load(); got != 1 {
		t.Fatalf("expected one fetch, got %d", got)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "c1" {
		t.Fatalf("unexpected payloads: %v %v", first, second)
	}
}

func TestCatalogService_ExpiryRefetchesOnce(t *testing.T) {
	svc, source, _ := newCatalogFixture(5 * time.Minute)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.Clubs(t.Context(), false); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	now = now.Add(5 * time.Minute)
	if _, err := svc.Clubs(t.Context(), false); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if got := source.clubCalls.Load(); got != 2 {
		t.Fatalf("expected exactly two fetches, got %d", got)
	}
}

func TestCatalogService_ForceRefreshBypassesFreshCache(t *testing.T) {
	svc, source, _ := newCatalogFixture(5 * time.Minute)

	if _, err := svc.Clubs(t.Context(), false); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := svc.Clubs(t.Context(), true); err != nil {
		t.Fatalf("forced load failed: %v", err)
	}

	if got := source.clubCalls.Load(); got != 2 {
		t.Fatalf("expected forced refetch, got %d fetches", got)
	}
}

func TestCatalogService_StaleFallbackOnFailure(t *testing.T) {
	svc, source, _ := newCatalogFixture(5 * time.Minute)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.Clubs(t.Context(), false); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	source.err = errors.New("connection refused")
	now = now.Add(10 * time.Minute)

	got, err := svc.Clubs(t.Context(), false)
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("expected last known payload, got %v", got)
	}
}

func TestCatalogService_FirstLoadFailurePropagates(t *testing.T) {
	svc, source, _ := newCatalogFixture(5 * time.Minute)
	source.err = errors.New("connection refused")

	if _, err := svc.Clubs(t.Context(), false); err == nil {
		t.Fatal("expected error when no payload has ever been fetched")
	}
}

func TestCatalogService_BulkInvalidationForcesRefetch(t *testing.T) {
	svc, source, store := newCatalogFixture(5 * time.Minute)

	load := func() {
		t.Helper()
		if _, err := svc.Clubs(t.Context(), false); err != nil {
			t.Fatalf("clubs: %v", err)
		}
		if _, err := svc.Teams(t.Context(), false); err != nil {
			t.Fatalf("teams: %v", err)
		}
		if _, err := svc.Leagues(t.Context(), false); err != nil {
			t.Fatalf("leagues: %v", err)
		}
		if _, err := svc.Players(t.Context(), false); err != nil {
			t.Fatalf("players: %v", err)
		}
		if _, err := svc.Matches(t.Context(), false); err != nil {
			t.Fatalf("matches: %v", err)
		}
	}

	load()
	store.InvalidateAll()
	load()

	for name, calls := range map[string]int32{
		"clubs":   source.clubCalls.Load(),
		"teams":   source.teamCalls.Load(),
		"leagues": source.leagueCalls.Load(),
		"players": source.playerCalls.Load(),
		"matches": source.matchCalls.Load(),
	} {
		if calls != 2 {
			t.Fatalf("%s fetched %d times, want 2", name, calls)
		}
	}
}

func TestCatalogService_RefreshAll(t *testing.T) {
	svc, source, _ := newCatalogFixture(5 * time.Minute)

	if err := svc.RefreshAll(t.Context()); err != nil {
		t.Fatalf("refresh all failed: %v", err)
	}

	if got := source.clubCalls.Load() + source.teamCalls.Load() + source.leagueCalls.Load() +
		source.playerCalls.Load() + source.matchCalls.Load(); got != 5 {
		t.Fatalf("expected one fetch per collection, got %d total", got)
	}

	// Everything is now warm; serial reads cost no further I/O.
	if _, err := svc.Players(t.Context(), false); err != nil {
		t.Fatalf("warm read failed: %v", err)
	}
	if got := source.playerCalls.Load(); got != 1 {
		t.Fatalf("warm read refetched, calls=%d", got)
	}
}
