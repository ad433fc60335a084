package entities

import "ordbok-backend/domain/core/valueobjects"

// Definition is one sense of an entry. Definitions nest; relationships found
// in a definition's explanations are recorded on that definition.
type Definition struct {
	ID             *int                       `json:"id,omitempty"`
	Content        []valueobjects.RichContent `json:"content"`
	Examples       []valueobjects.RichContent `json:"examples"`
	Relationships  []Relationship             `json:"relationships"`
	SubDefinitions []*Definition              `json:"subDefinitions"`
}

// NewDefinition creates an empty definition with the given source id
func NewDefinition(id *int) *Definition {
	return &Definition{
		ID:             id,
		Content:        []valueobjects.RichContent{},
		Examples:       []valueobjects.RichContent{},
		Relationships:  []Relationship{},
		SubDefinitions: []*Definition{},
	}
}

// Walk visits d and all of its sub-definitions depth first, parents before
// children.
func (d *Definition) Walk(fn func(def *Definition)) {
	fn(d)
	for _, sub := range d.SubDefinitions {
		sub.Walk(fn)
	}
}
