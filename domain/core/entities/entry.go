package entities

import (
	"encoding/json"

	"ordbok-backend/domain/core/valueobjects"
)

// Entry is a normalized dictionary article. Entries are rebuilt from source
// data on every fetch and are not mutated after construction.
type Entry struct {
	id          valueobjects.EntryID
	wordClass   *WordClass
	gender      *Gender
	lemmas      []Lemma
	definitions []*Definition
	phrases     []valueobjects.EntryID
	etymology   []valueobjects.RichContent
}

// EntryOption sets an optional attribute during construction
type EntryOption func(*Entry)

// WithWordClass sets the word class
func WithWordClass(wc WordClass) EntryOption {
	return func(e *Entry) { e.wordClass = &wc }
}

// WithGender sets the grammatical gender
func WithGender(g Gender) EntryOption {
	return func(e *Entry) { e.gender = &g }
}

// WithLemmas sets the headwords
func WithLemmas(lemmas []Lemma) EntryOption {
	return func(e *Entry) { e.lemmas = lemmas }
}

// WithEtymology sets the formatted etymology
func WithEtymology(etymology []valueobjects.RichContent) EntryOption {
	return func(e *Entry) { e.etymology = etymology }
}

// NewEntry creates an entry
func NewEntry(id valueobjects.EntryID, definitions []*Definition, phrases []valueobjects.EntryID, opts ...EntryOption) *Entry {
	if definitions == nil {
		definitions = []*Definition{}
	}
	if phrases == nil {
		phrases = []valueobjects.EntryID{}
	}
	e := &Entry{
		id:          id,
		definitions: definitions,
		phrases:     phrases,
		lemmas:      []Lemma{},
		etymology:   []valueobjects.RichContent{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Getters

func (e *Entry) ID() valueobjects.EntryID              { return e.id }
func (e *Entry) WordClass() *WordClass                 { return e.wordClass }
func (e *Entry) Gender() *Gender                       { return e.gender }
func (e *Entry) Lemmas() []Lemma                       { return e.lemmas }
func (e *Entry) Definitions() []*Definition            { return e.definitions }
func (e *Entry) Phrases() []valueobjects.EntryID       { return e.phrases }
func (e *Entry) Etymology() []valueobjects.RichContent { return e.etymology }

// PrimaryLemma returns the first headword, or "" when the entry has none
func (e *Entry) PrimaryLemma() string {
	if len(e.lemmas) == 0 {
		return ""
	}
	return e.lemmas[0].Lemma
}

// Relationships flattens the relationships of all definitions and their
// direct sub-definitions, keeping the first occurrence of every target, and
// appends a phrase relationship for every phrase not already referenced.
// The entry itself is never a target.
func (e *Entry) Relationships() []Relationship {
	seen := map[valueobjects.EntryID]bool{e.id: true}
	out := []Relationship{}

	add := func(rels []Relationship) {
		for _, rel := range rels {
			if seen[rel.Target] {
				continue
			}
			seen[rel.Target] = true
			out = append(out, rel)
		}
	}

	for _, def := range e.definitions {
		add(def.Relationships)
		for _, sub := range def.SubDefinitions {
			add(sub.Relationships)
		}
	}

	for _, phrase := range e.phrases {
		add([]Relationship{{Target: phrase, Type: RelationshipPhrase}})
	}

	return out
}

type entryJSON struct {
	ID          valueobjects.EntryID       `json:"id"`
	Lemma       string                     `json:"lemma"`
	WordClass   *WordClass                 `json:"wordClass,omitempty"`
	Gender      *Gender                    `json:"gender,omitempty"`
	Lemmas      []Lemma                    `json:"lemmas"`
	Definitions []*Definition              `json:"definitions"`
	Phrases     []valueobjects.EntryID     `json:"phrases"`
	Etymology   []valueobjects.RichContent `json:"etymology"`
}

// MarshalJSON implements json.Marshaler
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:          e.id,
		Lemma:       e.PrimaryLemma(),
		WordClass:   e.wordClass,
		Gender:      e.gender,
		Lemmas:      e.lemmas,
		Definitions: e.definitions,
		Phrases:     e.phrases,
		Etymology:   e.etymology,
	})
}
