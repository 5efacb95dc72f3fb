// Package cli implements the kegelctl command-line interface, the
// stand-in front end for the browser views.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robertKrusekopf/kegelsim-client/internal/config"
	"github.com/robertKrusekopf/kegelsim-client/internal/kegelapi"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/cache"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/pubsub"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/resilience"
	"github.com/robertKrusekopf/kegelsim-client/internal/usecase"
)

var forceRefresh bool

var rootCmd = &cobra.Command{
	Use:   "kegelctl",
	Short: "Client for the kegelsim management server",
	Long:  `Command-line client for the bowling club management simulation: cached resource listings, simulation triggers and match lineup editing.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&forceRefresh, "refresh", "r", false, "Bypass the cache and refetch from the server")
}

// app wires the usecase services over one API client, one cache store
// and one broadcast bus per process.
type app struct {
	cfg        config.Config
	logger     *logging.Logger
	store      *cache.Store
	bus        *pubsub.Bus
	catalog    *usecase.CatalogService
	simulation *usecase.SimulationService
	lineups    *usecase.LineupService
	messages   *usecase.MessageService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	client := kegelapi.NewClient(kegelapi.ClientConfig{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.APITimeout,
		MaxRetries: cfg.APIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
	})

	store := cache.NewStore(cfg.CacheTTL)
	bus := pubsub.NewBus()

	return &app{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		bus:        bus,
		catalog:    usecase.NewCatalogService(client, store, logger),
		simulation: usecase.NewSimulationService(client, store, bus, logger),
		lineups:    usecase.NewLineupService(client, store, bus, logger),
		messages:   usecase.NewMessageService(client, bus, logger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
