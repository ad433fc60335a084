package di

import (
	"context"
	"fmt"
	"net/http"

	"ordbok-backend/application/ports"
	querybus "ordbok-backend/application/queries/bus"
	queryhandlers "ordbok-backend/application/queries/handlers"
	"ordbok-backend/application/services"
	"ordbok-backend/infrastructure/cache"
	"ordbok-backend/infrastructure/config"
	"ordbok-backend/infrastructure/persistence/decorators"
	"ordbok-backend/infrastructure/persistence/dynamodb"
	"ordbok-backend/infrastructure/persistence/memory"
	"ordbok-backend/infrastructure/persistence/seed"
	"ordbok-backend/interfaces/http/rest"
	"ordbok-backend/interfaces/http/rest/handlers"
	"ordbok-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// ServiceName identifies the service in metrics and traces
const ServiceName = "ordbok-backend"

// DocumentStore is a store of article documents and concept tables
type DocumentStore interface {
	ports.EntryRepository
	ports.ConceptRepository
	ports.HealthChecker
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zapCfg.Level = level
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", ServiceName)), nil
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("ordbok")
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(ServiceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideDocumentStore creates the configured document store. The memory
// store is seeded from SeedDir when one is set.
func ProvideDocumentStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (DocumentStore, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		store := memory.NewStore(logger)
		if cfg.SeedDir != "" {
			if _, err := seed.LoadDirectory(ctx, cfg.SeedDir, store, logger); err != nil {
				return nil, fmt.Errorf("failed to seed memory store: %w", err)
			}
		}
		return store, nil
	default:
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client := ProvideDynamoDBClient(awsCfg, cfg)
		return dynamodb.NewEntryRepository(client, cfg.DynamoDBTable, logger), nil
	}
}

// ProvideRedisCache creates the shared cache tier, or nil when REDIS_ADDR is
// not set
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}
	redisCache := cache.NewRedisCache(cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL(),
	})
	return redisCache, func() { _ = redisCache.Close() }
}

// ProvideCache creates the tiered document cache
func ProvideCache(cfg *config.Config, redisCache *cache.RedisCache, metrics *observability.Collector, logger *zap.Logger) (ports.Cache, func()) {
	local := cache.NewMemoryCache(cfg.MemoryCacheTTL(), cfg.MemoryCacheMaxItems)

	var shared ports.Cache
	if redisCache != nil {
		shared = redisCache
	}
	return cache.NewTieredCache(local, shared, cfg.MemoryCacheTTL(), metrics, logger), func() { _ = local.Close() }
}

// ProvideEntryReader stacks the cache and the circuit breaker on the store
func ProvideEntryReader(
	store DocumentStore,
	documentCache ports.Cache,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) ports.EntryReader {
	guarded := decorators.NewBreakerEntryStore(store, decorators.BreakerOptions{
		Name:                "entry-store",
		MaxRequests:         cfg.BreakerMaxRequests,
		Interval:            cfg.BreakerInterval(),
		Timeout:             cfg.BreakerTimeout(),
		ConsecutiveFailures: cfg.BreakerFailureThreshold,
	}, metrics, logger)

	return decorators.NewCachedEntryStore(guarded, documentCache, cfg.CacheTTL(), logger)
}

// ProvideConceptRegistry creates the concept registry and starts loading it
func ProvideConceptRegistry(ctx context.Context, store DocumentStore, cfg *config.Config, logger *zap.Logger) *services.ConceptRegistry {
	registry := services.NewConceptRegistry(store, cfg.Domain.ConceptRetryInterval, logger)
	registry.Start(ctx)
	return registry
}

// ProvideElementFormatter creates the element formatter
func ProvideElementFormatter(registry *services.ConceptRegistry, metrics *observability.Collector, logger *zap.Logger) *services.ElementFormatter {
	return services.NewElementFormatter(registry, metrics, logger)
}

// ProvideGraphWalker creates the graph walker with the configured limits
func ProvideGraphWalker(entries *services.EntryService, cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) *services.GraphWalker {
	return services.NewGraphWalker(entries, metrics, logger,
		services.WithMaxDepth(cfg.Domain.MaxGraphDepth),
		services.WithConcurrency(cfg.Domain.GraphConcurrency),
	)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	entries *services.EntryService,
	walker *services.GraphWalker,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.TracingMiddleware(tracer),
		querybus.MetricsMiddleware(metrics),
		querybus.LoggingMiddleware(logger),
	)

	if err := queryhandlers.Register(queryBus,
		queryhandlers.NewGetEntryHandler(entries, logger),
		queryhandlers.NewGetEntryGraphHandler(walker, logger),
	); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideHealthCheckers lists the dependencies probed by /ready
func ProvideHealthCheckers(store DocumentStore, registry *services.ConceptRegistry, redisCache *cache.RedisCache) []ports.HealthChecker {
	checkers := []ports.HealthChecker{store, registry}
	if redisCache != nil {
		checkers = append(checkers, redisCache)
	}
	return checkers
}

// ProvideHTTPHandler builds the HTTP router
func ProvideHTTPHandler(
	queryBus *querybus.QueryBus,
	checkers []ports.HealthChecker,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	router := rest.NewRouter(queryBus, checkers, metrics, rest.RouterConfig{
		EnableCORS:     cfg.EnableCORS,
		AllowedOrigins: cfg.AllowedOrigins,
		EnableMetrics:  cfg.EnableMetrics,
		Debug:          cfg.IsDevelopment(),
		Graph: handlers.GraphLimits{
			DefaultDepth: cfg.Domain.DefaultGraphDepth,
			MaxDepth:     cfg.Domain.MaxGraphDepth,
		},
	}, logger)
	return router.Setup()
}
