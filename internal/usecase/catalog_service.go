package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/club"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/league"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/match"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/player"
	"github.com/robertKrusekopf/kegelsim-client/internal/domain/team"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/cache"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
)

// CatalogSource is the remote read side for the cached resource
// collections.
type CatalogSource interface {
	Clubs(ctx context.Context) ([]club.Club, error)
	Teams(ctx context.Context) ([]team.Team, error)
	Leagues(ctx context.Context) ([]league.League, error)
	Players(ctx context.Context) ([]player.Player, error)
	Matches(ctx context.Context) ([]match.Match, error)
}

// CatalogService is the read-through layer every listing view goes
// through: fresh cache hits cost no I/O, misses fetch and memoize, and
// fetch failures degrade to the last known payload instead of erroring
// once one exists.
type CatalogService struct {
	source CatalogSource
	cache  *cache.Store
	logger *logging.Logger
	now    func() time.Time
}

func NewCatalogService(source CatalogSource, store *cache.Store, logger *logging.Logger) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogService{
		source: source,
		cache:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *CatalogService) Clubs(ctx context.Context, forceRefresh bool) ([]club.Club, error) {
	return loadCollection(ctx, s, cache.KeyClub, forceRefresh, s.source.Clubs)
}

func (s *CatalogService) Teams(ctx context.Context, forceRefresh bool) ([]team.Team, error) {
	return loadCollection(ctx, s, cache.KeyTeam, forceRefresh, s.source.Teams)
}

func (s *CatalogService) Leagues(ctx context.Context, forceRefresh bool) ([]league.League, error) {
	return loadCollection(ctx, s, cache.KeyLeague, forceRefresh, s.source.Leagues)
}

func (s *CatalogService) Players(ctx context.Context, forceRefresh bool) ([]player.Player, error) {
	return loadCollection(ctx, s, cache.KeyPlayer, forceRefresh, s.source.Players)
}

func (s *CatalogService) Matches(ctx context.Context, forceRefresh bool) ([]match.Match, error) {
	return loadCollection(ctx, s, cache.KeyMatch, forceRefresh, s.source.Matches)
}

// RefreshAll force-loads every collection concurrently. Used to warm
// the cache after startup or bulk invalidation.
func (s *CatalogService) RefreshAll(ctx context.Context) error {
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error { _, err := s.Clubs(ctx, true); return err })
	p.Go(func(ctx context.Context) error { _, err := s.Teams(ctx, true); return err })
	p.Go(func(ctx context.Context) error { _, err := s.Leagues(ctx, true); return err })
	p.Go(func(ctx context.Context) error { _, err := s.Players(ctx, true); return err })
	p.Go(func(ctx context.Context) error { _, err := s.Matches(ctx, true); return err })
	return p.Wait()
}

// loadCollection implements the read-through contract for one key.
// There is deliberately no request sequencing: the last fetch to
// complete wins, matching the source's behavior. Callers that care must
// discard superseded results themselves.
func loadCollection[T any](
	ctx context.Context,
	s *CatalogService,
	key cache.Key,
	forceRefresh bool,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	now := s.now()
	if !forceRefresh && s.cache.IsFresh(key, now) {
		if entry, ok := s.cache.Get(key); ok {
			if items, ok := entry.Payload.([]T); ok {
				return items, nil
			}
		}
	}

	items, err := fetch(ctx)
	if err != nil {
		// Stale-but-available degradation: a collection that has been
		// seen once keeps serving its last payload through outages.
		if entry, ok := s.cache.Get(key); ok && !entry.FetchedAt.IsZero() {
			if prev, ok := entry.Payload.([]T); ok {
				s.logger.WarnContext(ctx, "serving stale payload after fetch failure",
					"resource", string(key),
					"fetched_at", entry.FetchedAt,
					"error", err,
				)
				return prev, nil
			}
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	s.cache.Set(key, items, s.now())
	return items, nil
}
