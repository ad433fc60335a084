package aggregates

import (
	"encoding/json"
	"sync"

	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
)

// Graph is the result of a relationship walk: a set of entries and the
// deduplicated edges between them. It is safe for concurrent use by the
// goroutines of a single walk.
type Graph struct {
	mu         sync.Mutex
	edgeFields []EdgeField
	nodes      []*entities.Entry
	nodeIDs    map[valueobjects.EntryID]struct{}
	edges      []Edge
	edgeKeys   map[string]struct{}
}

// NewGraph creates an empty graph whose edges are deduplicated by the given
// field projection.
func NewGraph(edgeFields []EdgeField) *Graph {
	fields := make([]EdgeField, len(edgeFields))
	copy(fields, edgeFields)
	return &Graph{
		edgeFields: fields,
		nodes:      []*entities.Entry{},
		nodeIDs:    make(map[valueobjects.EntryID]struct{}),
		edges:      []Edge{},
		edgeKeys:   make(map[string]struct{}),
	}
}

// AddNode appends an entry unless one with the same id is already present.
// It reports whether the entry was added.
func (g *Graph) AddNode(entry *entities.Entry) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodeIDs[entry.ID()]; exists {
		return false
	}
	g.nodeIDs[entry.ID()] = struct{}{}
	g.nodes = append(g.nodes, entry)
	return true
}

// AddEdge appends an edge unless an edge with the same projected key is
// already present. It reports whether the edge was added.
func (g *Graph) AddEdge(edge Edge) bool {
	key := edge.Key(g.edgeFields)

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.edgeKeys[key]; exists {
		return false
	}
	g.edgeKeys[key] = struct{}{}
	g.edges = append(g.edges, edge)
	return true
}

// HasNode checks whether an entry is part of the graph
func (g *Graph) HasNode(id valueobjects.EntryID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.nodeIDs[id]
	return ok
}

// Nodes returns the entries in insertion order
func (g *Graph) Nodes() []*entities.Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	nodes := make([]*entities.Entry, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Edges returns the edges in insertion order
func (g *Graph) Edges() []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// NodeCount returns the number of entries
func (g *Graph) NodeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.edges)
}

// MarshalJSON implements json.Marshaler
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Nodes []*entities.Entry `json:"nodes"`
		Edges []Edge            `json:"edges"`
	}{
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	})
}
