package services

import (
	"regexp"
	"strings"

	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

// relationshipRange assigns a relationship type to the references at
// positions [from, to). Unbounded ranges extend to the last reference.
type relationshipRange struct {
	from    int
	to      int
	bounded bool
	kind    entities.RelationshipType
}

func (r relationshipRange) contains(index int) bool {
	return index >= r.from && (!r.bounded || index < r.to)
}

func openRange(from int, kind entities.RelationshipType) relationshipRange {
	return relationshipRange{from: from, kind: kind}
}

func boundedRange(from, to int, kind entities.RelationshipType) relationshipRange {
	return relationshipRange{from: from, to: to, bounded: true, kind: kind}
}

// classificationRule inspects an explanation or compound list and, when it
// applies, returns the ranges to classify its references with.
type classificationRule struct {
	name  string
	match func(element source.Element, template string) ([]relationshipRange, bool)
}

var (
	seeAlsoPattern = regexp.MustCompile(`^(S(?:e|jå): )\$`)
	synonymPattern = regexp.MustCompile(`^(\s*\$\s*[,:;]?\s*)+`)
	antonymPattern = regexp.MustCompile(`^\s*ikkj?e \$(?:\b|$)`)
)

// classificationRules are evaluated in order; the first match wins
var classificationRules = []classificationRule{
	{
		name: "compound list",
		match: func(element source.Element, _ string) ([]relationshipRange, bool) {
			if _, ok := element.(*source.CompoundListElement); !ok {
				return nil, false
			}
			return []relationshipRange{openRange(0, entities.RelationshipUsage)}, true
		},
	},
	{
		name: "see also",
		match: func(_ source.Element, template string) ([]relationshipRange, bool) {
			if !seeAlsoPattern.MatchString(template) {
				return nil, false
			}
			return []relationshipRange{openRange(0, entities.RelationshipSeeAlso)}, true
		},
	},
	{
		// a leading run of references separated only by punctuation, as in
		// "$, $: forklaring", lists synonyms
		name: "synonyms",
		match: func(_ source.Element, template string) ([]relationshipRange, bool) {
			run := synonymPattern.FindString(template)
			if run == "" {
				return nil, false
			}
			count := strings.Count(run, "$")
			return []relationshipRange{boundedRange(0, count, entities.RelationshipSynonym)}, true
		},
	},
	{
		name: "antonym",
		match: func(_ source.Element, template string) ([]relationshipRange, bool) {
			if !antonymPattern.MatchString(template) {
				return nil, false
			}
			return []relationshipRange{
				boundedRange(0, 1, entities.RelationshipAntonym),
				openRange(1, entities.RelationshipRelated),
			}, true
		},
	},
	{
		name: "related",
		match: func(source.Element, string) ([]relationshipRange, bool) {
			return []relationshipRange{openRange(0, entities.RelationshipRelated)}, true
		},
	},
}

// RelationshipClassifier types the references found in explanations and
// compound lists. It holds no state between calls.
type RelationshipClassifier struct {
	rules []classificationRule
}

// NewRelationshipClassifier creates a classifier with the standard rules
func NewRelationshipClassifier() *RelationshipClassifier {
	return &RelationshipClassifier{rules: classificationRules}
}

func (c *RelationshipClassifier) ranges(element source.Element) []relationshipRange {
	var template string
	if text, ok := element.(*source.TextElement); ok {
		template = text.Text()
	}

	for _, rule := range c.rules {
		if ranges, ok := rule.match(element, template); ok {
			return ranges
		}
	}
	return nil
}

// Classify returns one relationship per reference in content, except for
// references to the entry itself. Self references still count towards the
// reference positions the ranges are defined over.
func (c *RelationshipClassifier) Classify(
	entryID valueobjects.EntryID,
	element source.Element,
	content *valueobjects.RichContentBuilder,
) []entities.Relationship {
	ranges := c.ranges(element)
	relationships := []entities.Relationship{}

	index := 0
	current := 0
	content.ForEachReference(func(segment valueobjects.Segment, _ int) {
		target := *segment.Entry
		if target == entryID {
			index++
			return
		}

		for current < len(ranges) && !ranges[current].contains(index) {
			current++
		}

		kind := entities.RelationshipRelated
		if current < len(ranges) {
			kind = ranges[current].kind
		}

		relationships = append(relationships, entities.Relationship{Target: target, Type: kind})
		index++
	})

	return relationships
}
