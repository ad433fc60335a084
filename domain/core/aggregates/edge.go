package aggregates

import (
	"fmt"
	"strconv"
	"strings"

	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
)

// EdgeField names an edge attribute that can take part in edge identity
type EdgeField string

const (
	EdgeFieldSourceID              EdgeField = "sourceId"
	EdgeFieldTargetID              EdgeField = "targetId"
	EdgeFieldType                  EdgeField = "type"
	EdgeFieldSourceDefinitionID    EdgeField = "sourceDefinitionId"
	EdgeFieldSourceDefinitionIndex EdgeField = "sourceDefinitionIndex"
)

// keyOrder fixes the order fields appear in an edge key
var keyOrder = []EdgeField{
	EdgeFieldSourceID,
	EdgeFieldTargetID,
	EdgeFieldType,
	EdgeFieldSourceDefinitionID,
	EdgeFieldSourceDefinitionIndex,
}

// ParseEdgeField validates an edge field name
func ParseEdgeField(s string) (EdgeField, error) {
	for _, f := range keyOrder {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown edge field %q", s)
}

// ParseEdgeFields parses a comma separated field list. Blank items are skipped.
func ParseEdgeFields(s string) ([]EdgeField, error) {
	fields := []EdgeField{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := ParseEdgeField(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Edge is a directed, typed relationship between two entries in a graph.
// Definition attributes are nil for phrase edges.
type Edge struct {
	SourceID              valueobjects.EntryID      `json:"sourceId"`
	TargetID              valueobjects.EntryID      `json:"targetId"`
	Type                  entities.RelationshipType `json:"type"`
	SourceDefinitionID    *int                      `json:"sourceDefinitionId,omitempty"`
	SourceDefinitionIndex *int                      `json:"sourceDefinitionIndex,omitempty"`
}

// Key computes the identity of the edge under a field projection. Source and
// target are always part of the key.
func (e Edge) Key(fields []EdgeField) string {
	selected := map[EdgeField]bool{
		EdgeFieldSourceID: true,
		EdgeFieldTargetID: true,
	}
	for _, f := range fields {
		selected[f] = true
	}

	parts := make([]string, 0, len(keyOrder))
	for _, f := range keyOrder {
		if selected[f] {
			parts = append(parts, string(f)+":"+e.fieldValue(f))
		}
	}
	return strings.Join(parts, "-")
}

func (e Edge) fieldValue(f EdgeField) string {
	switch f {
	case EdgeFieldSourceID:
		return e.SourceID.String()
	case EdgeFieldTargetID:
		return e.TargetID.String()
	case EdgeFieldType:
		return string(e.Type)
	case EdgeFieldSourceDefinitionID:
		return optionalInt(e.SourceDefinitionID)
	case EdgeFieldSourceDefinitionIndex:
		return optionalInt(e.SourceDefinitionIndex)
	}
	return ""
}

func optionalInt(i *int) string {
	if i == nil {
		return "none"
	}
	return strconv.Itoa(*i)
}
