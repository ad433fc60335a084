package aggregates

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
)

func intPtr(i int) *int { return &i }

var (
	src = valueobjects.MustEntryID(valueobjects.Bokmaal, 1)
	dst = valueobjects.MustEntryID(valueobjects.Bokmaal, 2)
)

func TestEdgeKey(t *testing.T) {
	edge := Edge{
		SourceID:              src,
		TargetID:              dst,
		Type:                  entities.RelationshipSynonym,
		SourceDefinitionID:    intPtr(7),
		SourceDefinitionIndex: intPtr(0),
	}

	tests := []struct {
		name   string
		fields []EdgeField
		want   string
	}{
		{
			name:   "source and target only",
			fields: nil,
			want:   "sourceId:bm:1-targetId:bm:2",
		},
		{
			name:   "field order does not matter",
			fields: []EdgeField{EdgeFieldSourceDefinitionIndex, EdgeFieldType},
			want:   "sourceId:bm:1-targetId:bm:2-type:synonym-sourceDefinitionIndex:0",
		},
		{
			name:   "all fields",
			fields: []EdgeField{EdgeFieldType, EdgeFieldSourceDefinitionID, EdgeFieldSourceDefinitionIndex},
			want:   "sourceId:bm:1-targetId:bm:2-type:synonym-sourceDefinitionId:7-sourceDefinitionIndex:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, edge.Key(tt.fields))
		})
	}
}

func TestEdgeKeyDistinguishesMissingDefinition(t *testing.T) {
	phrase := Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipPhrase}
	defined := Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipPhrase, SourceDefinitionID: intPtr(0)}

	fields := []EdgeField{EdgeFieldSourceDefinitionID}
	assert.NotEqual(t, phrase.Key(fields), defined.Key(fields))
}

func TestParseEdgeFields(t *testing.T) {
	fields, err := ParseEdgeFields("type, sourceDefinitionId,,")
	require.NoError(t, err)
	assert.Equal(t, []EdgeField{EdgeFieldType, EdgeFieldSourceDefinitionID}, fields)

	fields, err = ParseEdgeFields("")
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = ParseEdgeFields("type,weight")
	assert.Error(t, err)
}

func TestGraphDeduplicatesByProjection(t *testing.T) {
	t.Run("empty projection collapses pair", func(t *testing.T) {
		g := NewGraph([]EdgeField{})
		assert.True(t, g.AddEdge(Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipSynonym, SourceDefinitionIndex: intPtr(0)}))
		assert.False(t, g.AddEdge(Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipRelated, SourceDefinitionIndex: intPtr(1)}))
		assert.True(t, g.AddEdge(Edge{SourceID: dst, TargetID: src, Type: entities.RelationshipRelated}))
		assert.Equal(t, 2, g.EdgeCount())
	})

	t.Run("type projection keeps distinct types", func(t *testing.T) {
		g := NewGraph([]EdgeField{EdgeFieldType})
		assert.True(t, g.AddEdge(Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipSynonym}))
		assert.True(t, g.AddEdge(Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipRelated}))
		assert.False(t, g.AddEdge(Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipRelated, SourceDefinitionIndex: intPtr(4)}))
		assert.Equal(t, 2, g.EdgeCount())
	})
}

func TestGraphNodesAreUnique(t *testing.T) {
	g := NewGraph(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.AddNode(entities.NewEntry(src, nil, nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, g.NodeCount())
	assert.True(t, g.HasNode(src))
	assert.False(t, g.HasNode(dst))
}

func TestGraphJSON(t *testing.T) {
	g := NewGraph(nil)
	g.AddNode(entities.NewEntry(src, nil, nil))
	g.AddEdge(Edge{SourceID: src, TargetID: dst, Type: entities.RelationshipPhrase})

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []struct {
			Type               string `json:"type"`
			SourceDefinitionID *int   `json:"sourceDefinitionId"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Nodes, 1)
	require.Len(t, decoded.Edges, 1)
	assert.Equal(t, "phrase", decoded.Edges[0].Type)
	assert.Nil(t, decoded.Edges[0].SourceDefinitionID)
}
