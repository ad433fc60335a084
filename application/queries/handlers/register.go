package handlers

import (
	"context"

	"ordbok-backend/application/queries"
	"ordbok-backend/application/queries/bus"
)

// Register adds the entry query handlers to b
func Register(b *bus.QueryBus, entries *GetEntryHandler, graphs *GetEntryGraphHandler) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandlerFunc
	}{
		{
			query: queries.GetEntryQuery{},
			handler: func(ctx context.Context, q bus.Query) (interface{}, error) {
				return entries.Handle(ctx, q.(queries.GetEntryQuery))
			},
		},
		{
			query: queries.GetEntryRelationshipsQuery{},
			handler: func(ctx context.Context, q bus.Query) (interface{}, error) {
				return entries.HandleRelationships(ctx, q.(queries.GetEntryRelationshipsQuery))
			},
		},
		{
			query: queries.GetEntryGraphQuery{},
			handler: func(ctx context.Context, q bus.Query) (interface{}, error) {
				return graphs.Handle(ctx, q.(queries.GetEntryGraphQuery))
			},
		},
	}

	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
