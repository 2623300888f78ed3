//go:build wireinject
// +build wireinject

package di

import (
	"FundPulse/pkg/config"
	"FundPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideRateLimiter,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Providers and repositories
		ProvideMFAPIClient,
		ProvideFundUniverse,
		ProvideNavSource,
		ProvideSyntheticIndex,
		ProvideBenchmarkSource,
		ProvideResultStore,
		ProvideResultPublisher,

		// Analysis
		ProvideComparator,

		// Use cases
		ProvideResultProcessor,
		ProvideAnalyzer,
		ProvideAdvisor,

		// HTTP
		ProvideFundsHandler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
