package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

//go:embed testdata/*.json
var documents embed.FS

// Skule is the Nynorsk article "skule" (nn:100431) as served upstream
func Skule() []byte {
	return mustRead("testdata/nn_100431_skule.json")
}

// Tekst is the Bokmål article "tekst" (bm:60110) as served upstream
func Tekst() []byte {
	return mustRead("testdata/bm_60110_tekst.json")
}

func mustRead(name string) []byte {
	data, err := documents.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("fixture %s: %v", name, err))
	}
	return data
}

// MustParse decodes an article document and panics on failure
func MustParse(data []byte) *source.RawEntry {
	entry, err := source.ParseEntry(data)
	if err != nil {
		panic(err)
	}
	return entry
}

// Element is a source element under construction
type Element map[string]interface{}

func textBody(content string, items []Element) map[string]interface{} {
	if items == nil {
		items = []Element{}
	}
	return map[string]interface{}{"content": content, "items": items}
}

// Explanation creates an explanation element
func Explanation(content string, items ...Element) Element {
	el := Element{"type_": "explanation"}
	for k, v := range textBody(content, items) {
		el[k] = v
	}
	return el
}

// Usage creates a literal text element
func Usage(text string) Element {
	return Element{"type_": "usage", "text": text, "items": []Element{}}
}

// Concept creates a concept reference such as {"type_": "entity", "id": "el"}
func Concept(kind, id string) Element {
	return Element{"type_": kind, "id": id}
}

// Ref creates an article_ref to a whole entry
func Ref(id int, lemma string) Element {
	return Element{
		"type_":         "article_ref",
		"article_id":    id,
		"lemmas":        []map[string]interface{}{{"type_": "lemma", "hgno": 0, "id": id * 10, "lemma": lemma}},
		"definition_id": nil,
	}
}

// RefToDefinition creates an article_ref to one definition of an entry.
// order is one-based.
func RefToDefinition(id int, lemma string, definitionID, order int) Element {
	el := Ref(id, lemma)
	el["definition_id"] = definitionID
	el["definition_order"] = order
	return el
}

// Example creates an example element
func Example(quote string, items ...Element) Element {
	return Element{
		"type_":       "example",
		"quote":       textBody(quote, items),
		"explanation": textBody("", nil),
	}
}

// CompoundList creates a compound list with the given intro
func CompoundList(intro string, introItems []Element, refs ...Element) Element {
	if refs == nil {
		refs = []Element{}
	}
	return Element{
		"type_":    "compound_list",
		"intro":    textBody(intro, introItems),
		"elements": refs,
	}
}

// SubArticle creates an embedded phrase entry
func SubArticle(id int, lemma string) Element {
	return Element{
		"type_":      "sub_article",
		"article_id": id,
		"lemmas":     []string{lemma},
		"article": map[string]interface{}{
			"type_":      "article",
			"article_id": id,
			"lemmas":     []map[string]interface{}{{"type_": "lemma", "hgno": 0, "id": id * 10, "lemma": lemma}},
			"body":       map[string]interface{}{"definitions": []Element{}},
		},
		"intro": textBody("", nil),
	}
}

// Definition creates a definition element
func Definition(id int, elements ...Element) Element {
	if elements == nil {
		elements = []Element{}
	}
	return Element{"type_": "definition", "id": id, "sub_definition": false, "elements": elements}
}

// EntryBuilder builds upstream article documents for tests
type EntryBuilder struct {
	id          int
	lemma       string
	tags        []string
	definitions []Element
	etymology   []Element
	flat        bool
}

// NewEntryBuilder creates a builder for an article with the given id
func NewEntryBuilder(id int) *EntryBuilder {
	return &EntryBuilder{
		id:    id,
		lemma: fmt.Sprintf("ord%d", id),
		tags:  []string{"NOUN", "Masc"},
	}
}

func (b *EntryBuilder) WithLemma(lemma string) *EntryBuilder {
	b.lemma = lemma
	return b
}

func (b *EntryBuilder) WithTags(tags ...string) *EntryBuilder {
	b.tags = tags
	return b
}

func (b *EntryBuilder) WithDefinitions(defs ...Element) *EntryBuilder {
	b.definitions = append(b.definitions, defs...)
	return b
}

func (b *EntryBuilder) WithEtymology(els ...Element) *EntryBuilder {
	b.etymology = append(b.etymology, els...)
	return b
}

// Flat stores the definitions directly in the body instead of wrapping them
// in an outer definition.
func (b *EntryBuilder) Flat() *EntryBuilder {
	b.flat = true
	return b
}

// Build returns the document bytes
func (b *EntryBuilder) Build() []byte {
	defs := b.definitions
	if defs == nil {
		defs = []Element{}
	}
	if !b.flat {
		defs = []Element{Definition(1, defs...)}
	}
	etymology := b.etymology
	if etymology == nil {
		etymology = []Element{}
	}

	doc := map[string]interface{}{
		"article_id": b.id,
		"suggest":    []string{b.lemma},
		"lemmas": []map[string]interface{}{{
			"id":    b.id * 10,
			"hgno":  0,
			"lemma": b.lemma,
			"paradigm_info": []map[string]interface{}{{
				"paradigm_id": 1,
				"tags":        b.tags,
				"inflection":  []map[string]interface{}{{"tags": []string{"Sing", "Ind"}, "word_form": b.lemma}},
			}},
			"split_inf": nil,
		}},
		"body": map[string]interface{}{
			"pronunciation": []Element{},
			"etymology":     etymology,
			"definitions":   defs,
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

// Parsed returns the built document decoded
func (b *EntryBuilder) Parsed() *source.RawEntry {
	return MustParse(b.Build())
}

// ConceptTable builds a concept table document for a dictionary
func ConceptTable(dictionary valueobjects.Dictionary, expansions map[string]string) []byte {
	concepts := make(map[string]interface{}, len(expansions))
	for id, expansion := range expansions {
		concepts[id] = map[string]interface{}{"class": "entity", "expansion": expansion}
	}
	data, err := json.Marshal(map[string]interface{}{
		"id":       string(dictionary),
		"name":     dictionary.Name(),
		"concepts": concepts,
	})
	if err != nil {
		panic(err)
	}
	return data
}
