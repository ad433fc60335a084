package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/tests/fixtures"
)

func relationshipTypes(rels []entities.Relationship) []entities.RelationshipType {
	types := make([]entities.RelationshipType, 0, len(rels))
	for _, r := range rels {
		types = append(types, r.Type)
	}
	return types
}

func TestRelationshipClassifier(t *testing.T) {
	f := newTestFormatter()
	c := NewRelationshipClassifier()
	self := nn(100)

	tests := []struct {
		name     string
		element  fixtures.Element
		expected []entities.RelationshipType
	}{
		{
			name:     "leading references are synonyms",
			element:  fixtures.Explanation("$, $: forklaring", fixtures.Ref(1, "a"), fixtures.Ref(2, "b")),
			expected: []entities.RelationshipType{entities.RelationshipSynonym, entities.RelationshipSynonym},
		},
		{
			name: "references after the synonym run are related",
			element: fixtures.Explanation("$; $ eller liknande $",
				fixtures.Ref(1, "a"), fixtures.Ref(2, "b"), fixtures.Ref(3, "c")),
			expected: []entities.RelationshipType{
				entities.RelationshipSynonym,
				entities.RelationshipSynonym,
				entities.RelationshipRelated,
			},
		},
		{
			name:     "negation marks an antonym",
			element:  fixtures.Explanation("ikkje $", fixtures.Ref(1, "a")),
			expected: []entities.RelationshipType{entities.RelationshipAntonym},
		},
		{
			name:     "bokmål negation",
			element:  fixtures.Explanation("ikke $", fixtures.Ref(1, "a")),
			expected: []entities.RelationshipType{entities.RelationshipAntonym},
		},
		{
			name:     "negation followed by more text is not an antonym",
			element:  fixtures.Explanation("ikkje $, men $", fixtures.Ref(1, "a"), fixtures.Ref(2, "b")),
			expected: []entities.RelationshipType{entities.RelationshipRelated, entities.RelationshipRelated},
		},
		{
			name:     "see also",
			element:  fixtures.Explanation("Se: $", fixtures.Ref(1, "a")),
			expected: []entities.RelationshipType{entities.RelationshipSeeAlso},
		},
		{
			name:     "nynorsk see also covers every reference",
			element:  fixtures.Explanation("Sjå: $ og $", fixtures.Ref(1, "a"), fixtures.Ref(2, "b")),
			expected: []entities.RelationshipType{entities.RelationshipSeeAlso, entities.RelationshipSeeAlso},
		},
		{
			name:     "compound lists are usages",
			element:  fixtures.CompoundList("$ i", []fixtures.Element{fixtures.Usage("brukt")}, fixtures.Ref(1, "a"), fixtures.Ref(2, "b")),
			expected: []entities.RelationshipType{entities.RelationshipUsage, entities.RelationshipUsage},
		},
		{
			name:     "anything else is related",
			element:  fixtures.Explanation("brukt om $ og $", fixtures.Ref(1, "a"), fixtures.Ref(2, "b")),
			expected: []entities.RelationshipType{entities.RelationshipRelated, entities.RelationshipRelated},
		},
		{
			name:     "no references",
			element:  fixtures.Explanation("berre tekst"),
			expected: []entities.RelationshipType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := decodeElement(t, tt.element)
			rels := c.Classify(self, el, f.Format(valueobjects.Nynorsk, el))
			assert.Equal(t, tt.expected, relationshipTypes(rels))
		})
	}
}

func TestRelationshipClassifierSkipsSelfReferences(t *testing.T) {
	f := newTestFormatter()
	c := NewRelationshipClassifier()
	self := nn(100)

	// the self reference occupies position 0 of the synonym run
	el := decodeElement(t, fixtures.Explanation("$, $: og $",
		fixtures.Ref(100, "seg sjølv"),
		fixtures.Ref(1, "a"),
		fixtures.Ref(2, "b"),
	))
	rels := c.Classify(self, el, f.Format(valueobjects.Nynorsk, el))

	assert.Equal(t, []entities.Relationship{
		{Target: nn(1), Type: entities.RelationshipSynonym},
		{Target: nn(2), Type: entities.RelationshipRelated},
	}, rels)

	el = decodeElement(t, fixtures.Explanation("ikkje $", fixtures.Ref(100, "seg sjølv")))
	rels = c.Classify(self, el, f.Format(valueobjects.Nynorsk, el))
	assert.Empty(t, rels)
}

func TestRelationshipClassifierIsDeterministic(t *testing.T) {
	f := newTestFormatter()
	c := NewRelationshipClassifier()

	el := decodeElement(t, fixtures.Explanation("$, $: jamfør $",
		fixtures.Ref(1, "a"), fixtures.Ref(2, "b"), fixtures.Ref(3, "c")))

	first := c.Classify(nn(100), el, f.Format(valueobjects.Nynorsk, el))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(nn(100), el, f.Format(valueobjects.Nynorsk, el)))
	}
}
