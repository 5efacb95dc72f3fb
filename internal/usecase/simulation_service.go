package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/season"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/cache"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/pubsub"
)

// SimulationResult is the success payload of a simulation call.
type SimulationResult struct {
	MatchesSimulated int
	MatchDay         int
	SeasonID         string
}

// SimulationGateway is the remote mutation side: calls that change
// server-side simulation state.
type SimulationGateway interface {
	SimulateMatchDay(ctx context.Context) (SimulationResult, error)
	SimulateSeason(ctx context.Context) (SimulationResult, error)
	TransitionSeason(ctx context.Context) error
	CurrentSeason(ctx context.Context) (season.Season, error)
}

// SimulationService wraps the mutating endpoints. Every success
// invalidates the whole cache and broadcasts exactly one signal; every
// failure leaves the cache untouched, because a failed simulation call
// cannot be assumed to have left any resource type consistent.
type SimulationService struct {
	gateway SimulationGateway
	cache   *cache.Store
	bus     *pubsub.Bus
	logger  *logging.Logger

	mu         sync.RWMutex
	current    season.Season
	haveSeason bool
}

func NewSimulationService(gateway SimulationGateway, store *cache.Store, bus *pubsub.Bus, logger *logging.Logger) *SimulationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SimulationService{
		gateway: gateway,
		cache:   store,
		bus:     bus,
		logger:  logger,
	}
}

func (s *SimulationService) SimulateMatchDay(ctx context.Context) (SimulationResult, error) {
	res, err := s.gateway.SimulateMatchDay(ctx)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("simulate match day: %w", err)
	}

	s.afterMutation(ctx, "match_day")
	return res, nil
}

func (s *SimulationService) SimulateSeason(ctx context.Context) (SimulationResult, error) {
	res, err := s.gateway.SimulateSeason(ctx)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("simulate season: %w", err)
	}

	s.afterMutation(ctx, "season")
	return res, nil
}

// TransitionSeason ends the current season and reloads the season
// context, since the definition of "current season" itself changes.
func (s *SimulationService) TransitionSeason(ctx context.Context) (season.Season, error) {
	if err := s.gateway.TransitionSeason(ctx); err != nil {
		return season.Season{}, fmt.Errorf("transition season: %w", err)
	}

	s.afterMutation(ctx, "season_transition")

	current, err := s.gateway.CurrentSeason(ctx)
	if err != nil {
		// The transition itself succeeded and the cache is already
		// invalidated; only the context reload is pending.
		return season.Season{}, fmt.Errorf("reload season context: %w", err)
	}
	s.setCurrent(current)
	return current, nil
}

// CurrentSeason returns the season context, fetching it on first use.
// It is held outside the resource cache: it anchors invalidation rather
// than being subject to it.
func (s *SimulationService) CurrentSeason(ctx context.Context) (season.Season, error) {
	s.mu.RLock()
	if s.haveSeason {
		current := s.current
		s.mu.RUnlock()
		return current, nil
	}
	s.mu.RUnlock()

	current, err := s.gateway.CurrentSeason(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("load current season: %w", err)
	}
	s.setCurrent(current)
	return current, nil
}

func (s *SimulationService) afterMutation(ctx context.Context, kind string) {
	s.cache.InvalidateAll()
	s.bus.Publish(pubsub.TopicSimulationCompleted)
	s.logger.InfoContext(ctx, "simulation completed, cache invalidated", "kind", kind)
}

func (s *SimulationService) setCurrent(current season.Season) {
	s.mu.Lock()
	s.current = current
	s.haveSeason = true
	s.mu.Unlock()
}
