package di

import (
	"net/http"

	"go.uber.org/zap"

	querybus "ordbok-backend/application/queries/bus"
	"ordbok-backend/application/services"
	"ordbok-backend/infrastructure/config"
	"ordbok-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *observability.Collector
	Tracer   *observability.Tracer
	Store    DocumentStore
	Concepts *services.ConceptRegistry
	Entries  *services.EntryService
	Walker   *services.GraphWalker
	QueryBus *querybus.QueryBus
	Handler  http.Handler
}
