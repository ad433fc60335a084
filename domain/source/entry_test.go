package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordbok-backend/domain/source"
	"ordbok-backend/tests/fixtures"
)

func TestParseEntrySkule(t *testing.T) {
	entry, err := source.ParseEntry(fixtures.Skule())
	require.NoError(t, err)

	assert.Equal(t, 100431, entry.ArticleID)
	require.Len(t, entry.Lemmas, 2)
	assert.Equal(t, "skule", entry.Lemmas[0].Lemma)
	assert.Equal(t, []string{"NOUN", "Masc"}, entry.Lemmas[0].ParadigmInfo[0].Tags)
	require.NotNil(t, entry.Lemmas[0].ParadigmInfo[0].Inflection[1].WordForm)
	assert.Equal(t, "skulen", *entry.Lemmas[0].ParadigmInfo[0].Inflection[1].WordForm)

	require.Len(t, entry.Body.Etymology, 4)
	etym, ok := entry.Body.Etymology[0].(*source.TextElement)
	require.True(t, ok)
	assert.Equal(t, source.TypeEtymologyReference, etym.ElementType())
	assert.Equal(t, "$ $ i $", etym.Text())
	require.Len(t, etym.Items, 3)
	concept, ok := etym.Items[0].(*source.ConceptElement)
	require.True(t, ok)
	assert.Equal(t, "norr.", concept.ID)
	assert.Equal(t, source.TypeEntity, concept.ElementType())

	assert.Equal(t, fixtures.Skule(), entry.Bytes())
}

func TestRawEntryDefinitionRoot(t *testing.T) {
	t.Run("wrapped definitions are unwrapped", func(t *testing.T) {
		entry := fixtures.MustParse(fixtures.Skule())
		root := entry.DefinitionRoot()
		require.Len(t, root, 4)
		for _, el := range root {
			def, ok := el.(*source.DefinitionElement)
			require.True(t, ok)
			require.NotNil(t, def.ID)
		}
		assert.Equal(t, 2, *root[0].(*source.DefinitionElement).ID)
	})

	t.Run("flat definitions are used as is", func(t *testing.T) {
		entry := fixtures.NewEntryBuilder(7).
			WithDefinitions(fixtures.Definition(2, fixtures.Explanation("ei forklaring"))).
			Flat().
			Parsed()
		root := entry.DefinitionRoot()
		require.Len(t, root, 1)
		assert.Equal(t, source.TypeDefinition, root[0].ElementType())
	})

	t.Run("outer definition without nested definitions", func(t *testing.T) {
		entry := fixtures.NewEntryBuilder(7).
			WithDefinitions(fixtures.Explanation("berre tekst")).
			Parsed()
		root := entry.DefinitionRoot()
		require.Len(t, root, 1)
		assert.Equal(t, source.TypeDefinition, root[0].ElementType())
	})

	t.Run("no definitions", func(t *testing.T) {
		entry := fixtures.NewEntryBuilder(7).Flat().Parsed()
		assert.Nil(t, entry.DefinitionRoot())
	})
}

func TestRawEntryPhraseElements(t *testing.T) {
	entry := fixtures.MustParse(fixtures.Skule())

	var ids []int
	for _, p := range entry.PhraseElements() {
		ids = append(ids, p.TargetID())
	}
	assert.Equal(t, []int{110535, 117034, 110536}, ids)
	assert.Equal(t, "halde skule", entry.PhraseElements()[0].PrimaryLemma())
}

func TestSubArticleWithoutEmbeddedID(t *testing.T) {
	// the Bokmål sample embeds the sub-article without an article_id
	entry := fixtures.MustParse(fixtures.Tekst())
	phrases := entry.PhraseElements()
	require.Len(t, phrases, 1)
	assert.Equal(t, 105762, phrases[0].TargetID())
	assert.Equal(t, "lese en teksten", phrases[0].PrimaryLemma())
}

func TestElementListKeepsNilAndEmptyApart(t *testing.T) {
	data := []byte(`{"article_id": 1, "lemmas": [], "body": {"definitions": [
		{"type_": "definition", "id": 1},
		{"type_": "definition", "id": 2, "elements": []},
		{"type_": "definition", "id": 3, "elements": null}
	]}}`)
	entry, err := source.ParseEntry(data)
	require.NoError(t, err)

	defs := entry.Body.Definitions
	require.Len(t, defs, 3)
	assert.Nil(t, defs[0].(*source.DefinitionElement).Elements)
	assert.NotNil(t, defs[1].(*source.DefinitionElement).Elements)
	assert.Empty(t, defs[1].(*source.DefinitionElement).Elements)
	assert.Nil(t, defs[2].(*source.DefinitionElement).Elements)
}

func TestUnknownElementIsPreserved(t *testing.T) {
	data := []byte(`{"article_id": 1, "body": {"definitions": [{"type_": "hologram", "x": 1}]}}`)
	entry, err := source.ParseEntry(data)
	require.NoError(t, err)

	unknown, ok := entry.Body.Definitions[0].(*source.UnknownElement)
	require.True(t, ok)
	assert.Equal(t, source.ElementType("hologram"), unknown.ElementType())
	assert.JSONEq(t, `{"type_": "hologram", "x": 1}`, string(unknown.Raw))
}

func TestArticleRefDefinitionFields(t *testing.T) {
	entry := fixtures.MustParse(fixtures.Skule())
	root := entry.DefinitionRoot()

	// definition 6: "bygning der ein held $" referencing skule definition 2
	def := root[1].(*source.DefinitionElement)
	explanation := def.Elements[0].(*source.TextElement)
	ref := explanation.Items[0].(*source.ArticleRefElement)
	assert.Equal(t, 100431, ref.ArticleID)
	assert.Equal(t, "skule", ref.PrimaryLemma())
	require.NotNil(t, ref.DefinitionID)
	assert.Equal(t, 2, *ref.DefinitionID)
	require.NotNil(t, ref.DefinitionOrder)
	assert.Equal(t, 1, *ref.DefinitionOrder)

	// definition 3 references "lærebok" without a definition
	sub := root[0].(*source.DefinitionElement).Elements[7].(*source.DefinitionElement)
	ref = sub.Elements[0].(*source.TextElement).Items[0].(*source.ArticleRefElement)
	assert.Equal(t, 47366, ref.ArticleID)
	assert.Nil(t, ref.DefinitionID)
	assert.Nil(t, ref.DefinitionOrder)
}

func TestParseEntryRejectsInvalidDocuments(t *testing.T) {
	_, err := source.ParseEntry(nil)
	assert.Error(t, err)
	_, err = source.ParseEntry([]byte(`{"article_id": "x"}`))
	assert.Error(t, err)
	_, err = source.ParseEntry([]byte(`{"lemmas": []}`))
	assert.Error(t, err)
}

func TestConceptTable(t *testing.T) {
	table, err := source.ParseConceptTable([]byte(`{"id": "nn", "name": "Nynorskordboka", "concepts": {"el": {"class": "relation", "expansion": "eller"}}}`))
	require.NoError(t, err)

	expansion, ok := table.Lookup("el")
	assert.True(t, ok)
	assert.Equal(t, "eller", expansion)

	_, ok = table.Lookup("ukjent")
	assert.False(t, ok)

	var missing *source.ConceptTable
	_, ok = missing.Lookup("el")
	assert.False(t, ok)
}
