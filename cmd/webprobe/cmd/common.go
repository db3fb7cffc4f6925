package cmd

import (
	"github.com/webprobe-dev/webprobe/internal/adapters/executor"
	"github.com/webprobe-dev/webprobe/internal/adapters/planner"
	"github.com/webprobe-dev/webprobe/internal/adapters/ranker"
	"github.com/webprobe-dev/webprobe/internal/adapters/state"
	"github.com/webprobe-dev/webprobe/internal/analysis"
	"github.com/webprobe-dev/webprobe/internal/config"
	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/events"
	"github.com/webprobe-dev/webprobe/internal/service"
)

// stack bundles the wired pipeline components the commands drive.
type stack struct {
	manager *service.Manager
	store   core.ReportStore
	bus     *events.EventBus
	close   func() error
}

// buildStack wires the default adapters into a run manager.
func buildStack(cfg *config.Config) (*stack, error) {
	store, closer, err := state.NewStore(cfg.Reports.Store, cfg.Reports.Dir, cfg.Reports.Database)
	if err != nil {
		return nil, err
	}

	bus := events.New(256)
	analyzer := analysis.NewAnalyzer(thresholdsFromConfig(cfg),
		analysis.WithStore(store),
		analysis.WithLogger(logger),
	)
	controller := service.NewController(
		planner.NewCatalogGenerator(),
		ranker.NewPriorityRanker(),
		executor.NewSimExecutor(executor.WithLogger(logger)),
		analyzer,
		service.WithStore(store),
		service.WithBus(bus),
		service.WithLogger(logger),
	)
	manager := service.NewManager(controller, service.NewRegistry(), logger)

	return &stack{
		manager: manager,
		store:   store,
		bus:     bus,
		close: func() error {
			bus.Close()
			return closer()
		},
	}, nil
}

func thresholdsFromConfig(cfg *config.Config) analysis.Thresholds {
	return analysis.Thresholds{
		MaxExecutionTime: cfg.Thresholds.MaxExecutionTime,
		MinSuccessRate:   cfg.Thresholds.MinSuccessRate,
		MaxErrorRate:     cfg.Thresholds.MaxErrorRate,
		MinTestCount:     cfg.Thresholds.MinTestCount,
	}
}
