// Injector for the SuperSet in wire.go, kept in wire's output form.
// Running go generate in this package replaces it with wire's own output.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"context"
	"ordbok-backend/application/services"
	"ordbok-backend/infrastructure/config"
)

// Injectors from wire.go:

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	collector := ProvideMetrics()
	tracer := ProvideTracer(cfg)
	documentStore, err := ProvideDocumentStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	conceptRegistry := ProvideConceptRegistry(ctx, documentStore, cfg, logger)
	elementFormatter := ProvideElementFormatter(conceptRegistry, collector, logger)
	redisCache, cleanup := ProvideRedisCache(cfg)
	cache, cleanup2 := ProvideCache(cfg, redisCache, collector, logger)
	entryReader := ProvideEntryReader(documentStore, cache, cfg, collector, logger)
	relationshipClassifier := services.NewRelationshipClassifier()
	definitionAssembler := services.NewDefinitionAssembler(elementFormatter, relationshipClassifier)
	entryTransformer := services.NewEntryTransformer(elementFormatter, definitionAssembler, logger)
	entryService := services.NewEntryService(entryReader, entryTransformer, collector, logger)
	graphWalker := ProvideGraphWalker(entryService, cfg, collector, logger)
	queryBus, err := ProvideQueryBus(entryService, graphWalker, collector, tracer, logger)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	v := ProvideHealthCheckers(documentStore, conceptRegistry, redisCache)
	handler := ProvideHTTPHandler(queryBus, v, collector, cfg, logger)
	container := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  collector,
		Tracer:   tracer,
		Store:    documentStore,
		Concepts: conceptRegistry,
		Entries:  entryService,
		Walker:   graphWalker,
		QueryBus: queryBus,
		Handler:  handler,
	}
	return container, func() {
		cleanup2()
		cleanup()
	}, nil
}
