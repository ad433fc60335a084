package source

import (
	"encoding/json"
	"fmt"
)

// ElementType is the discriminator of a source element ("type_" in the
// upstream documents)
type ElementType string

const (
	TypeDomain             ElementType = "domain"
	TypeEntity             ElementType = "entity"
	TypeGrammar            ElementType = "grammar"
	TypeLanguage           ElementType = "language"
	TypeRelation           ElementType = "relation"
	TypeRhetoric           ElementType = "rhetoric"
	TypeTemporal           ElementType = "temporal"
	TypeUsage              ElementType = "usage"
	TypeQuoteInset         ElementType = "quote_inset"
	TypeExplanation        ElementType = "explanation"
	TypeEtymologyLanguage  ElementType = "etymology_language"
	TypeEtymologyReference ElementType = "etymology_reference"
	TypeDefinition         ElementType = "definition"
	TypeExample            ElementType = "example"
	TypeCompoundList       ElementType = "compound_list"
	TypeArticleRef         ElementType = "article_ref"
	TypeSubArticle         ElementType = "sub_article"
)

// IsConcept reports whether elements of this type reference a concept table
// entry by id.
func (t ElementType) IsConcept() bool {
	switch t {
	case TypeDomain, TypeEntity, TypeGrammar, TypeLanguage, TypeRelation, TypeRhetoric, TypeTemporal:
		return true
	}
	return false
}

// IsTemplate reports whether elements of this type carry a "$" template
// with positional items.
func (t ElementType) IsTemplate() bool {
	switch t {
	case TypeQuoteInset, TypeExplanation, TypeEtymologyLanguage, TypeEtymologyReference:
		return true
	}
	return false
}

// Element is one node of the upstream article tree. The set of
// implementations is closed; switch on the concrete type to dispatch.
type Element interface {
	ElementType() ElementType
	element()
}

// TextBody is a "$" template together with the items filling its
// placeholders, in order.
type TextBody struct {
	Content *string     `json:"content"`
	Items   ElementList `json:"items"`
}

// Text returns the template, or "" when absent
func (b TextBody) Text() string {
	if b.Content == nil {
		return ""
	}
	return *b.Content
}

// ConceptElement references a concept table entry
type ConceptElement struct {
	Type ElementType `json:"type_"`
	ID   string      `json:"id"`
}

// UsageElement is literal text
type UsageElement struct {
	Text string `json:"text"`
}

// TextElement is a templated text element (explanations, quote insets and
// etymology lines)
type TextElement struct {
	Type ElementType `json:"type_"`
	TextBody
}

// DefinitionElement is a definition, possibly nested. Elements is nil when
// the source omits the list and empty when the source has an empty list.
type DefinitionElement struct {
	ID            *int        `json:"id"`
	SubDefinition bool        `json:"sub_definition"`
	Elements      ElementList `json:"elements"`
}

// ExampleElement is a usage example
type ExampleElement struct {
	Quote       TextBody `json:"quote"`
	Explanation TextBody `json:"explanation"`
}

// CompoundListElement lists compounds of the entry
type CompoundListElement struct {
	Intro    TextBody    `json:"intro"`
	Elements ElementList `json:"elements"`
}

// LemmaRef is the short lemma form used inside references
type LemmaRef struct {
	ID    int    `json:"id"`
	HGNo  int    `json:"hgno"`
	Lemma string `json:"lemma"`
}

// ArticleRefElement references another entry, optionally a specific
// definition of it. DefinitionOrder is one-based.
type ArticleRefElement struct {
	ArticleID       int        `json:"article_id"`
	Lemmas          []LemmaRef `json:"lemmas"`
	DefinitionID    *int       `json:"definition_id"`
	DefinitionOrder *int       `json:"definition_order"`
}

// PrimaryLemma returns the first lemma of the referenced entry
func (e *ArticleRefElement) PrimaryLemma() string {
	if len(e.Lemmas) == 0 {
		return ""
	}
	return e.Lemmas[0].Lemma
}

// SubArticle is the embedded entry of a sub_article element
type SubArticle struct {
	ArticleID int        `json:"article_id"`
	Lemmas    []LemmaRef `json:"lemmas"`
	Body      Body       `json:"body"`
}

// SubArticleElement embeds a complete nested entry, typically a phrase
type SubArticleElement struct {
	ArticleID int        `json:"article_id"`
	Lemmas    []string   `json:"lemmas"`
	Article   SubArticle `json:"article"`
	Intro     TextBody   `json:"intro"`
}

// TargetID returns the id of the embedded entry
func (e *SubArticleElement) TargetID() int {
	if e.Article.ArticleID != 0 {
		return e.Article.ArticleID
	}
	return e.ArticleID
}

// PrimaryLemma returns the first lemma of the embedded entry
func (e *SubArticleElement) PrimaryLemma() string {
	if len(e.Article.Lemmas) > 0 {
		return e.Article.Lemmas[0].Lemma
	}
	if len(e.Lemmas) > 0 {
		return e.Lemmas[0]
	}
	return ""
}

// UnknownElement keeps elements of types this service does not know about
type UnknownElement struct {
	Type ElementType
	Raw  json.RawMessage
}

func (e *ConceptElement) ElementType() ElementType      { return e.Type }
func (e *UsageElement) ElementType() ElementType        { return TypeUsage }
func (e *TextElement) ElementType() ElementType         { return e.Type }
func (e *DefinitionElement) ElementType() ElementType   { return TypeDefinition }
func (e *ExampleElement) ElementType() ElementType      { return TypeExample }
func (e *CompoundListElement) ElementType() ElementType { return TypeCompoundList }
func (e *ArticleRefElement) ElementType() ElementType   { return TypeArticleRef }
func (e *SubArticleElement) ElementType() ElementType   { return TypeSubArticle }
func (e *UnknownElement) ElementType() ElementType      { return e.Type }

func (*ConceptElement) element()      {}
func (*UsageElement) element()        {}
func (*TextElement) element()         {}
func (*DefinitionElement) element()   {}
func (*ExampleElement) element()      {}
func (*CompoundListElement) element() {}
func (*ArticleRefElement) element()   {}
func (*SubArticleElement) element()   {}
func (*UnknownElement) element()      {}

// ElementList decodes a JSON array of heterogeneous elements
type ElementList []Element

// UnmarshalJSON implements json.Unmarshaler
func (l *ElementList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("element list: %w", err)
	}

	list := make(ElementList, 0, len(raws))
	for i, raw := range raws {
		el, err := decodeElement(raw)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		list = append(list, el)
	}
	*l = list
	return nil
}

func decodeElement(raw json.RawMessage) (Element, error) {
	var head struct {
		Type ElementType `json:"type_"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var el Element
	switch {
	case head.Type.IsConcept():
		el = &ConceptElement{}
	case head.Type.IsTemplate():
		el = &TextElement{}
	case head.Type == TypeUsage:
		el = &UsageElement{}
	case head.Type == TypeDefinition:
		el = &DefinitionElement{}
	case head.Type == TypeExample:
		el = &ExampleElement{}
	case head.Type == TypeCompoundList:
		el = &CompoundListElement{}
	case head.Type == TypeArticleRef:
		el = &ArticleRefElement{}
	case head.Type == TypeSubArticle:
		el = &SubArticleElement{}
	default:
		return &UnknownElement{Type: head.Type, Raw: raw}, nil
	}

	if err := json.Unmarshal(raw, el); err != nil {
		return nil, fmt.Errorf("%s: %w", head.Type, err)
	}
	return el, nil
}
