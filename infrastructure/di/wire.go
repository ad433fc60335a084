//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"ordbok-backend/application/services"
	"ordbok-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideTracer,
	ProvideDocumentStore,
	ProvideRedisCache,
	ProvideCache,
	ProvideEntryReader,
	ProvideConceptRegistry,
	ProvideElementFormatter,
	services.NewRelationshipClassifier,
	services.NewDefinitionAssembler,
	services.NewEntryTransformer,
	services.NewEntryService,
	ProvideGraphWalker,
	ProvideQueryBus,
	ProvideHealthCheckers,
	ProvideHTTPHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
