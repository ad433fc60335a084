package queries

import (
	"ordbok-backend/domain/core/aggregates"
	"ordbok-backend/domain/core/entities"
	"ordbok-backend/pkg/utils"
)

// DefaultGraphDepth is used when a graph query does not name a depth
const DefaultGraphDepth = 1

// GetEntryGraphQuery represents a query for the relationship graph around an
// entry. Depth is clamped by the walker, never rejected. Fields selects the
// edge attributes that distinguish edges between the same pair of entries.
type GetEntryGraphQuery struct {
	EntryRef
	Depth  int      `json:"depth"`
	Fields []string `json:"fields" validate:"dive,oneof=sourceId targetId type sourceDefinitionId sourceDefinitionIndex"`
}

// Validate validates the GetEntryGraphQuery
func (q GetEntryGraphQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// EdgeFields converts Fields; call after validation
func (q GetEntryGraphQuery) EdgeFields() ([]aggregates.EdgeField, error) {
	fields := make([]aggregates.EdgeField, 0, len(q.Fields))
	for _, f := range q.Fields {
		field, err := aggregates.ParseEdgeField(f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// GetEntryGraphResult is the graph around an entry
type GetEntryGraphResult struct {
	Nodes []*entities.Entry `json:"nodes"`
	Edges []aggregates.Edge `json:"edges"`
	Stats GraphStats        `json:"stats"`
}

// GraphStats contains graph statistics
type GraphStats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
	Depth     int `json:"depth"`
}
