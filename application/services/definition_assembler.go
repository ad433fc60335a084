package services

import (
	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

// DefinitionAssembler builds the definition tree of an entry from its
// top-level definition elements.
type DefinitionAssembler struct {
	formatter  *ElementFormatter
	classifier *RelationshipClassifier
}

// NewDefinitionAssembler creates a new definition assembler
func NewDefinitionAssembler(formatter *ElementFormatter, classifier *RelationshipClassifier) *DefinitionAssembler {
	return &DefinitionAssembler{
		formatter:  formatter,
		classifier: classifier,
	}
}

// Assemble converts top-level elements into definitions. Definitions made up
// only of sub articles are phrases and are skipped. An example directly
// following a definition belongs to that definition.
func (a *DefinitionAssembler) Assemble(entryID valueobjects.EntryID, elements source.ElementList) []*entities.Definition {
	definitions := []*entities.Definition{}

	for _, el := range elements {
		if isPhraseDefinition(el) {
			continue
		}

		if example, ok := el.(*source.ExampleElement); ok && len(definitions) > 0 {
			last := definitions[len(definitions)-1]
			a.appendExample(entryID, last, example)
			continue
		}

		definitions = append(definitions, a.buildDefinition(entryID, el))
	}

	return definitions
}

func (a *DefinitionAssembler) buildDefinition(entryID valueobjects.EntryID, el source.Element) *entities.Definition {
	def, ok := el.(*source.DefinitionElement)
	if !ok {
		definition := entities.NewDefinition(nil)
		a.transformDefinitionElement(entryID, definition, el)
		return definition
	}

	definition := entities.NewDefinition(def.ID)
	for _, child := range def.Elements {
		a.transformDefinitionElement(entryID, definition, child)
	}
	return definition
}

func (a *DefinitionAssembler) transformDefinitionElement(
	entryID valueobjects.EntryID,
	definition *entities.Definition,
	el source.Element,
) {
	dictionary := entryID.Dictionary()

	switch e := el.(type) {
	case *source.TextElement:
		if e.Type != source.TypeExplanation {
			return
		}
		a.appendClassified(entryID, definition, el, a.formatter.Format(dictionary, e))

	case *source.CompoundListElement:
		a.appendClassified(entryID, definition, el, a.formatter.Format(dictionary, e))

	case *source.ExampleElement:
		a.appendExample(entryID, definition, e)

	case *source.DefinitionElement:
		definition.SubDefinitions = append(definition.SubDefinitions, a.buildDefinition(entryID, e))
	}
}

func (a *DefinitionAssembler) appendClassified(
	entryID valueobjects.EntryID,
	definition *entities.Definition,
	el source.Element,
	content *valueobjects.RichContentBuilder,
) {
	definition.Content = append(definition.Content, content.Build())
	definition.Relationships = append(definition.Relationships, a.classifier.Classify(entryID, el, content)...)
}

func (a *DefinitionAssembler) appendExample(entryID valueobjects.EntryID, definition *entities.Definition, example *source.ExampleElement) {
	content := a.formatter.Format(entryID.Dictionary(), example)
	definition.Examples = append(definition.Examples, content.Build())
}

// isPhraseDefinition reports whether el is a definition whose children are
// all sub articles. An empty child list counts; a missing one does not.
func isPhraseDefinition(el source.Element) bool {
	def, ok := el.(*source.DefinitionElement)
	if !ok || def.Elements == nil {
		return false
	}
	for _, child := range def.Elements {
		if _, isSub := child.(*source.SubArticleElement); !isSub {
			return false
		}
	}
	return true
}
