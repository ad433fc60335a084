// Package source models the documents served by the upstream dictionary
// service. Types mirror the upstream JSON and are decoded without
// interpretation; normalization happens in the application services.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RawInflection is one inflected word form
type RawInflection struct {
	Tags     []string `json:"tags"`
	WordForm *string  `json:"word_form"`
}

// RawParadigm is one inflection paradigm of a lemma
type RawParadigm struct {
	ParadigmID      int             `json:"paradigm_id"`
	InflectionGroup string          `json:"inflection_group"`
	Tags            []string        `json:"tags"`
	Inflection      []RawInflection `json:"inflection"`
}

// RawLemma is a headword with its paradigms
type RawLemma struct {
	ID           int           `json:"id"`
	HGNo         int           `json:"hgno"`
	Lemma        string        `json:"lemma"`
	SplitInf     *bool         `json:"split_inf"`
	ParadigmInfo []RawParadigm `json:"paradigm_info"`
}

// Body holds the element trees of an article
type Body struct {
	Pronunciation ElementList `json:"pronunciation"`
	Etymology     ElementList `json:"etymology"`
	Definitions   ElementList `json:"definitions"`
}

// RawEntry is an article as stored upstream
type RawEntry struct {
	ArticleID int        `json:"article_id"`
	Submitted string     `json:"submitted,omitempty"`
	Suggest   []string   `json:"suggest"`
	Lemmas    []RawLemma `json:"lemmas"`
	Body      Body       `json:"body"`

	raw json.RawMessage
}

// ParseEntry decodes an upstream article document. The original bytes are
// retained so the document can be cached or stored unchanged.
func ParseEntry(data []byte) (*RawEntry, error) {
	if len(data) == 0 {
		return nil, errors.New("empty entry document")
	}

	var entry RawEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry: %w", err)
	}
	if entry.ArticleID <= 0 {
		return nil, errors.New("entry document has no article_id")
	}

	entry.raw = make(json.RawMessage, len(data))
	copy(entry.raw, data)
	return &entry, nil
}

// Bytes returns the document the entry was decoded from
func (e *RawEntry) Bytes() []byte {
	return e.raw
}

// ParadigmTags returns the tag lists of every paradigm of every lemma
func (e *RawEntry) ParadigmTags() [][]string {
	var tags [][]string
	for _, lemma := range e.Lemmas {
		for _, p := range lemma.ParadigmInfo {
			tags = append(tags, p.Tags)
		}
	}
	return tags
}

// DefinitionRoot returns the list of top-level definition elements. Most
// articles wrap their definitions in a single outer definition; in that case
// the wrapped list is returned.
func (e *RawEntry) DefinitionRoot() ElementList {
	if len(e.Body.Definitions) == 0 {
		return nil
	}
	outer, ok := e.Body.Definitions[0].(*DefinitionElement)
	if !ok || len(outer.Elements) == 0 {
		return nil
	}
	for _, el := range outer.Elements {
		if _, isDef := el.(*DefinitionElement); isDef {
			return outer.Elements
		}
	}
	return e.Body.Definitions
}

// PhraseElements returns the sub_article children of the definitions inside
// the first body definition, in document order.
func (e *RawEntry) PhraseElements() []*SubArticleElement {
	if len(e.Body.Definitions) == 0 {
		return nil
	}
	outer, ok := e.Body.Definitions[0].(*DefinitionElement)
	if !ok {
		return nil
	}

	var phrases []*SubArticleElement
	for _, el := range outer.Elements {
		def, ok := el.(*DefinitionElement)
		if !ok {
			continue
		}
		for _, child := range def.Elements {
			if sub, ok := child.(*SubArticleElement); ok {
				phrases = append(phrases, sub)
			}
		}
	}
	return phrases
}
