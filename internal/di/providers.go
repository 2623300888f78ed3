package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"FundPulse/internal/analysis"
	drepo "FundPulse/internal/domain/repository"
	"FundPulse/internal/handler/api"
	internalrepo "FundPulse/internal/repository"
	"FundPulse/internal/service/benchmark"
	"FundPulse/internal/service/mfapi"
	"FundPulse/internal/service/ratelimit"
	"FundPulse/internal/usecase"
	"FundPulse/pkg/cache"
	pkgch "FundPulse/pkg/clickhouse"
	"FundPulse/pkg/config"
	xhttp "FundPulse/pkg/http"
	pkgkafka "FundPulse/pkg/kafka"
	applogger "FundPulse/pkg/logger"
	"FundPulse/pkg/metrics"
	"FundPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the NAV cache: Redis-backed with an in-memory L1
// when configured, plain in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideRateLimiter creates the shared provider rate limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMFAPIClient creates the fund data provider client.
func ProvideMFAPIClient(
	c cache.Service,
	limiter *ratelimit.Limiter,
	logger *applogger.Logger,
	cfg *config.Config,
) *mfapi.Client {
	return mfapi.New(c, limiter, logger, mfapi.Config{
		BaseURL:      cfg.Provider.BaseURL,
		Timeout:      cfg.Provider.Timeout,
		CacheTTL:     cfg.Provider.CacheTTL,
		MaxFunds:     cfg.Provider.MaxFunds,
		IncludeTerms: cfg.Provider.IncludeTerms,
		ExcludeTerms: cfg.Provider.ExcludeTerms,
		RateCapacity: cfg.Provider.RateCapacity,
		RateRefill:   cfg.Provider.RateRefill,
	})
}

// ProvideFundUniverse binds the provider client as the fund universe.
func ProvideFundUniverse(c *mfapi.Client) drepo.FundUniverse { return c }

// ProvideNavSource binds the provider client as the NAV source.
func ProvideNavSource(c *mfapi.Client) drepo.NavSource { return c }

// ProvideSyntheticIndex creates the deterministic benchmark generator.
func ProvideSyntheticIndex(cfg *config.Config) *benchmark.SyntheticIndex {
	return benchmark.NewSyntheticIndex(cfg.Benchmark.Seed)
}

// ProvideBenchmarkSource creates the benchmark source: live feed with a
// synthetic fallback.
func ProvideBenchmarkSource(
	synth *benchmark.SyntheticIndex,
	logger *applogger.Logger,
	cfg *config.Config,
) drepo.BenchmarkSource {
	return benchmark.NewHTTPSource(synth, logger, benchmark.HTTPSourceConfig{
		URL:     cfg.Benchmark.URL,
		Timeout: cfg.Benchmark.Timeout,
	})
}

// ProvideComparator creates the benchmark comparator with the synthetic
// generator as its thin-overlap fallback.
func ProvideComparator(synth *benchmark.SyntheticIndex, cfg *config.Config) *analysis.Comparator {
	tradingDays := cfg.Analysis.TradingDays
	if tradingDays <= 0 {
		tradingDays = analysis.DefaultTradingDays
	}
	return analysis.NewComparator(tradingDays, synth)
}

// ProvideClickHouseClient creates a ClickHouse client when the clickhouse
// backend is configured, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != usecase.BackendClickHouse {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideResultStore creates the ClickHouse result store and initializes
// its schema. Nil when the clickhouse backend is not in use.
func ProvideResultStore(chClient *pkgch.Client, cfg *config.Config) (drepo.ResultStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseResultStore(chClient.DB(), cfg.ClickHouse.Table)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend is
// configured, nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != usecase.BackendKafka {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideResultPublisher creates the Kafka result publisher. Nil when the
// kafka backend is not in use.
func ProvideResultPublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.ResultPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.Topic)
}

// ProvideResultProcessor creates the result dispatch use case.
func ProvideResultProcessor(
	pub drepo.ResultPublisher,
	store drepo.ResultStore,
	m drepo.Metrics,
	cfg *config.Config,
) *usecase.ResultProcessor {
	return usecase.NewResultProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideAnalyzer creates the fund ranking pipeline.
func ProvideAnalyzer(
	universe drepo.FundUniverse,
	navs drepo.NavSource,
	bench drepo.BenchmarkSource,
	comparator *analysis.Comparator,
	m drepo.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.FundAnalyzer {
	return usecase.NewFundAnalyzer(universe, navs, bench, comparator, m, logger, usecase.AnalyzerConfig{
		RiskFreeRate: cfg.Analysis.RiskFreeRate,
		TradingDays:  cfg.Analysis.TradingDays,
		LookbackDays: cfg.Analysis.LookbackDays,
		Workers:      cfg.Analysis.Workers,
	})
}

// ProvideAdvisor creates the recommendation advisor.
func ProvideAdvisor(analyzer *usecase.FundAnalyzer) *usecase.Advisor {
	return usecase.NewAdvisor(analyzer)
}

// ProvideFundsHandler creates the HTTP handler.
func ProvideFundsHandler(
	logger *applogger.Logger,
	analyzer *usecase.FundAnalyzer,
	advisor *usecase.Advisor,
	processor *usecase.ResultProcessor,
) *api.FundsHandler {
	return api.NewFundsHandler(logger, analyzer, advisor, processor)
}

// ProvideHTTPHandler binds the funds handler as the server route registrar.
func ProvideHTTPHandler(h *api.FundsHandler) xhttp.Handler { return h }

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	processor *usecase.ResultProcessor,
) *server.App {
	return server.New(cfg, logger, handler, chClient, processor)
}
