package entities

import (
	"fmt"

	"ordbok-backend/domain/core/valueobjects"
)

// RelationshipType classifies a cross-reference between entries
type RelationshipType string

const (
	RelationshipRelated RelationshipType = "related"
	RelationshipSeeAlso RelationshipType = "see_also"
	RelationshipUsage   RelationshipType = "usage"
	RelationshipSynonym RelationshipType = "synonym"
	RelationshipAntonym RelationshipType = "antonym"
	RelationshipPhrase  RelationshipType = "phrase"
)

// AllRelationshipTypes returns every relationship type
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelationshipRelated,
		RelationshipSeeAlso,
		RelationshipUsage,
		RelationshipSynonym,
		RelationshipAntonym,
		RelationshipPhrase,
	}
}

// ParseRelationshipType validates a relationship type string
func ParseRelationshipType(s string) (RelationshipType, error) {
	for _, t := range AllRelationshipTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown relationship type %q", s)
}

// Relationship is a typed, directed reference to another entry
type Relationship struct {
	Target valueobjects.EntryID `json:"target"`
	Type   RelationshipType     `json:"type"`
}
