package di

import (
	"context"
	"fmt"
	"time"

	drepo "EnergyOptimizer/internal/domain/repository"
	dservice "EnergyOptimizer/internal/domain/service"
	"EnergyOptimizer/internal/handler/api"
	"EnergyOptimizer/internal/middleware"
	"EnergyOptimizer/internal/repository"
	icache "EnergyOptimizer/internal/service/cache"
	imetrics "EnergyOptimizer/internal/service/metrics"
	"EnergyOptimizer/internal/service/ratelimit"
	"EnergyOptimizer/internal/service/status"
	"EnergyOptimizer/internal/services/savings"
	"EnergyOptimizer/internal/usecase"
	"EnergyOptimizer/internal/view"
	"EnergyOptimizer/pkg/cache"
	"EnergyOptimizer/pkg/config"
	xhttp "EnergyOptimizer/pkg/http"
	pkgkafka "EnergyOptimizer/pkg/kafka"
	applogger "EnergyOptimizer/pkg/logger"
	"EnergyOptimizer/pkg/metrics"
	"EnergyOptimizer/pkg/queue"
	"EnergyOptimizer/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideRegistry creates the registry behind /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideRedis connects to Redis when it is enabled, otherwise returns nil.
func ProvideRedis(cfg *config.Config) (*cache.RedisCache, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	r := cfg.Cache.Redis
	rc, err := cache.NewRedisCache(context.Background(),
		cache.WithRedisAddr(r.Host, r.Port),
		cache.WithRedisAuth(r.Password, r.DB),
		cache.WithRedisPrefix(r.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideCache layers memory over Redis, or uses memory alone.
func ProvideCache(cfg *config.Config, redis *cache.RedisCache) (cache.Service, func()) {
	mem := cache.NewMemoryCache(
		cache.WithMemoryMaxSize(cfg.Cache.MemoryMax),
		cache.WithMemoryCleanup(time.Minute),
	)
	cleanup := func() { _ = mem.Close() }
	if redis == nil {
		return mem, cleanup
	}
	// Redis is closed by its own provider.
	return cache.NewLayeredCache(mem, redis, cfg.Cache.SnapshotTTL), cleanup
}

// ProvideKafkaProducer creates the diagnostics producer when Kafka is enabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	p, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.KafkaRequiredAcks()),
		pkgkafka.WithMetrics(reg),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return p, func() { _ = p.Close() }, nil
}

// ProvideDiagnosticsPublisher picks where aggregated error logs go: Kafka
// first, then a capped Redis list, otherwise nowhere.
func ProvideDiagnosticsPublisher(cfg *config.Config, producer *pkgkafka.Producer, redis *cache.RedisCache) applogger.Publisher {
	switch {
	case producer != nil:
		return producer
	case redis != nil:
		return queue.NewRedisQueue(redis.Client(),
			queue.WithKeyPrefix(cfg.Cache.Redis.Prefix+":diagnostics"),
			queue.WithMaxLen(cfg.Diagnostics.RedisMaxLen),
		)
	default:
		return nil
	}
}

// ProvideLogger builds the app logger and attaches the error collector
// when a publisher exists. The cleanup flushes it.
func ProvideLogger(cfg *config.Config, pub applogger.Publisher) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if pub == nil {
		return l, func() {}, nil
	}
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   cfg.Diagnostics.FlushInterval,
		CountThreshold: cfg.Diagnostics.CountThreshold,
		Topic:          cfg.Kafka.DiagnosticsTopic,
		Publisher:      pub,
	})
	return l, l.RemoveCollector, nil
}

func ProvideRecorder(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.New(reg)
}

func ProvideHandlerMetrics(reg *prometheus.Registry) *imetrics.HandlerMetrics {
	return imetrics.NewHandlerMetrics(reg)
}

func ProvideStatusSource(cfg *config.Config, m drepo.Metrics) *status.Client {
	return status.NewClient(cfg.Status.URL, cfg.Status.Timeout, m)
}

func ProvideFanout(m drepo.Metrics) (*middleware.ViewFanout, func()) {
	f := middleware.NewViewFanout(m)
	return f, f.Close
}

func ProvideSnapshotMirror(cfg *config.Config, c cache.Service) *repository.CacheSnapshotMirror {
	return repository.NewCacheSnapshotMirror(c, cfg.Cache.SnapshotTTL)
}

func ProvideDashboard(
	cfg *config.Config,
	src drepo.StatusSource,
	fan *middleware.ViewFanout,
	m drepo.Metrics,
	log *applogger.Logger,
	mirror drepo.SnapshotMirror,
) *usecase.Dashboard {
	return usecase.NewDashboard(src, fan, m, log,
		usecase.WithPollInterval(cfg.Status.PollInterval),
		usecase.WithFetchTimeout(cfg.Status.Timeout),
		usecase.WithSnapshotMirror(mirror),
	)
}

func ProvideEstimator() *savings.Estimator {
	return savings.NewEstimator()
}

func ProvideViewOptions(cfg *config.Config) view.Options {
	return view.Options{Title: cfg.Dashboard.Title, Currency: cfg.Dashboard.Currency}
}

func ProvideHTMLRenderer(cfg *config.Config) (*view.HTMLRenderer, error) {
	return view.NewHTMLRenderer(
		view.WithLiveUpdates(cfg.Live.Path),
		view.WithDocumentTitle(cfg.Dashboard.Title),
	)
}

func ProvideDashboardHandler(
	cfg *config.Config,
	log *applogger.Logger,
	dash *usecase.Dashboard,
	est dservice.SavingsEstimator,
	opts view.Options,
	html *view.HTMLRenderer,
	hm *imetrics.HandlerMetrics,
	mirror drepo.SnapshotMirror,
	fan *middleware.ViewFanout,
) *api.DashboardHandler {
	lv := cfg.Live
	return api.NewDashboardHandler(log, dash, est, opts, html, hm,
		api.WithSnapshots(mirror),
		api.WithRenderCache(icache.NewRenderCache(), lv.RenderTTL),
		api.WithLive(lv.Path, fan, ratelimit.New(lv.UpgradeBurst, lv.UpgradeRate), lv.PingInterval, lv.WriteTimeout),
	)
}

func ProvideHTTPServer(cfg *config.Config, h *api.DashboardHandler, log *applogger.Logger, reg *prometheus.Registry) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithRegistry(reg),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path))
	}
	return xhttp.NewServer(h, log, opts...)
}

func ProvideApp(cfg *config.Config, log *applogger.Logger, dash *usecase.Dashboard, srv *xhttp.Server, h *api.DashboardHandler) *server.App {
	return server.New(cfg, log, dash, srv, h)
}

func ProvideTerminal(
	cfg *config.Config,
	log *applogger.Logger,
	dash *usecase.Dashboard,
	fan *middleware.ViewFanout,
	est dservice.SavingsEstimator,
	opts view.Options,
) *server.Terminal {
	return server.NewTerminal(cfg, log, dash, fan, est, opts)
}
