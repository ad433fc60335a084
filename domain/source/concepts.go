package source

import (
	"encoding/json"
	"fmt"
)

// Concept is one entry of a concept table
type Concept struct {
	Class     *string `json:"class"`
	Expansion string  `json:"expansion"`
}

// ConceptTable maps concept ids (abbreviations, domains, grammatical terms)
// to display text for one dictionary.
type ConceptTable struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Concepts map[string]Concept `json:"concepts"`
}

// ParseConceptTable decodes an upstream concept table document
func ParseConceptTable(data []byte) (*ConceptTable, error) {
	var table ConceptTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode concept table: %w", err)
	}
	if table.Concepts == nil {
		table.Concepts = map[string]Concept{}
	}
	return &table, nil
}

// Lookup returns the expansion of a concept id
func (t *ConceptTable) Lookup(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	c, ok := t.Concepts[id]
	if !ok {
		return "", false
	}
	return c.Expansion, true
}
