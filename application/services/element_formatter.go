package services

import (
	"strings"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
	"ordbok-backend/pkg/observability"
)

// UnresolvedPlaceholder is rendered in place of elements that cannot be
// formatted (unknown concepts and unknown element types).
const UnresolvedPlaceholder = "(?)"

// ElementFormatter renders source element trees as rich content
type ElementFormatter struct {
	concepts ports.ConceptLookup
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewElementFormatter creates a new element formatter
func NewElementFormatter(concepts ports.ConceptLookup, metrics *observability.Collector, logger *zap.Logger) *ElementFormatter {
	return &ElementFormatter{
		concepts: concepts,
		metrics:  metrics,
		logger:   logger,
	}
}

// FormatText fills the "$" placeholders of a template with its formatted
// items, in order. A placeholder without a matching item renders as nothing
// and surplus items are ignored.
func (f *ElementFormatter) FormatText(dictionary valueobjects.Dictionary, body source.TextBody) *valueobjects.RichContentBuilder {
	content := valueobjects.NewRichContentBuilder()

	text := body.Text()
	if text == "" {
		return content
	}

	slices := strings.Split(text, "$")
	placeholders := len(slices) - 1
	if placeholders != len(body.Items) {
		f.logger.Debug("Template placeholder count does not match items",
			zap.String("dictionary", dictionary.String()),
			zap.String("template", text),
			zap.Int("placeholders", placeholders),
			zap.Int("items", len(body.Items)),
		)
	}

	for i, slice := range slices {
		content.AppendText(slice)
		if i >= placeholders || i >= len(body.Items) {
			continue
		}
		content.AppendBuilder(f.Format(dictionary, body.Items[i]))
	}

	return content
}

// Format renders one element
func (f *ElementFormatter) Format(dictionary valueobjects.Dictionary, element source.Element) *valueobjects.RichContentBuilder {
	content := valueobjects.NewRichContentBuilder()

	switch el := element.(type) {
	case *source.ConceptElement:
		expansion, ok := f.concepts.Concept(dictionary, el.ID)
		if !ok {
			f.logger.Warn("Concept not found",
				zap.String("dictionary", dictionary.String()),
				zap.String("conceptID", el.ID),
				zap.String("elementType", string(el.Type)),
			)
			f.metrics.RecordConceptMiss(dictionary.String())
			content.AppendText(UnresolvedPlaceholder)
			break
		}
		content.AppendText(expansion)

	case *source.CompoundListElement:
		content.AppendBuilder(f.FormatText(dictionary, el.Intro)).AppendText(" ")
		for i, item := range el.Elements {
			content.AppendBuilder(f.Format(dictionary, item))
			if i < len(el.Elements)-1 {
				content.AppendText(", ")
			}
		}

	case *source.ArticleRefElement:
		var definitionIndex *int
		if el.DefinitionOrder != nil {
			idx := *el.DefinitionOrder - 1
			definitionIndex = &idx
		}
		f.appendReference(content, dictionary, el.ArticleID, el.PrimaryLemma(), el.DefinitionID, definitionIndex)

	case *source.SubArticleElement:
		f.appendReference(content, dictionary, el.TargetID(), el.PrimaryLemma(), nil, nil)

	case *source.UsageElement:
		content.AppendText(el.Text)

	case *source.TextElement:
		content.AppendBuilder(f.FormatText(dictionary, el.TextBody))

	case *source.DefinitionElement:
		for _, item := range el.Elements {
			content.AppendBuilder(f.Format(dictionary, item))
		}

	case *source.ExampleElement:
		content.AppendBuilder(f.FormatText(dictionary, el.Quote))

	default:
		elementType := "<nil>"
		if element != nil {
			elementType = string(element.ElementType())
		}
		f.logger.Warn("Cannot format element",
			zap.String("dictionary", dictionary.String()),
			zap.String("elementType", elementType),
		)
		content.AppendText(UnresolvedPlaceholder)
	}

	return content
}

func (f *ElementFormatter) appendReference(
	content *valueobjects.RichContentBuilder,
	dictionary valueobjects.Dictionary,
	articleID int,
	lemma string,
	definitionID, definitionIndex *int,
) {
	target, err := valueobjects.NewEntryID(dictionary, articleID)
	if err != nil {
		f.logger.Warn("Reference with invalid target",
			zap.String("dictionary", dictionary.String()),
			zap.Int("articleID", articleID),
			zap.Error(err),
		)
		content.AppendText(lemma)
		return
	}
	content.AppendSegment(valueobjects.EntrySegment(lemma, target, definitionID, definitionIndex))
}
