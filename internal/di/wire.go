//go:build wireinject
// +build wireinject

package di

import (
	drepo "EnergyOptimizer/internal/domain/repository"
	dservice "EnergyOptimizer/internal/domain/service"
	"EnergyOptimizer/internal/repository"
	"EnergyOptimizer/internal/service/status"
	"EnergyOptimizer/internal/services/savings"
	"EnergyOptimizer/pkg/config"
	"EnergyOptimizer/pkg/metrics"
	"EnergyOptimizer/pkg/server"

	"github.com/google/wire"
)

var coreSet = wire.NewSet(
	// Metrics
	ProvideRegistry,
	ProvideRecorder,
	wire.Bind(new(drepo.Metrics), new(*metrics.Recorder)),

	// Infrastructure clients
	ProvideRedis,
	ProvideCache,
	ProvideKafkaProducer,
	ProvideDiagnosticsPublisher,
	ProvideLogger,

	// Repositories
	ProvideSnapshotMirror,
	wire.Bind(new(drepo.SnapshotMirror), new(*repository.CacheSnapshotMirror)),
	ProvideStatusSource,
	wire.Bind(new(drepo.StatusSource), new(*status.Client)),

	// Use case
	ProvideFanout,
	ProvideDashboard,
	ProvideEstimator,
	wire.Bind(new(dservice.SavingsEstimator), new(*savings.Estimator)),
	ProvideViewOptions,
)

// InitializeApp wires the web host.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		coreSet,
		ProvideHandlerMetrics,
		ProvideHTMLRenderer,
		ProvideDashboardHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeTerminal wires the terminal host.
func InitializeTerminal(cfg *config.Config) (*server.Terminal, func(), error) {
	wire.Build(
		coreSet,
		ProvideTerminal,
	)
	return nil, nil, nil
}
