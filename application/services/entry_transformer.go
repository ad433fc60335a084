package services

import (
	"go.uber.org/zap"

	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
	appErrors "ordbok-backend/pkg/errors"
)

// EntryTransformer normalizes upstream articles into entries. Transforming
// is a pure function of the document and the loaded concept tables.
type EntryTransformer struct {
	formatter *ElementFormatter
	assembler *DefinitionAssembler
	logger    *zap.Logger
}

// NewEntryTransformer creates a new entry transformer
func NewEntryTransformer(formatter *ElementFormatter, assembler *DefinitionAssembler, logger *zap.Logger) *EntryTransformer {
	return &EntryTransformer{
		formatter: formatter,
		assembler: assembler,
		logger:    logger,
	}
}

// TransformEntry builds the entry for a document of the given dictionary
func (t *EntryTransformer) TransformEntry(dictionary valueobjects.Dictionary, raw *source.RawEntry) (*entities.Entry, error) {
	if raw == nil {
		return nil, appErrors.NewValidationError("entry document is required")
	}

	id, err := valueobjects.NewEntryID(dictionary, raw.ArticleID)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid entry document").WithCause(err)
	}

	definitions := t.assembler.Assemble(id, raw.DefinitionRoot())
	phrases := t.phrases(id, raw)

	opts := []entities.EntryOption{
		entities.WithLemmas(t.lemmas(raw)),
		entities.WithEtymology(t.etymology(dictionary, raw)),
	}
	if wc, ok := t.wordClass(id, raw); ok {
		opts = append(opts, entities.WithWordClass(wc))
	}
	if gender, ok := entities.GenderFromParadigmTags(raw.ParadigmTags()); ok {
		opts = append(opts, entities.WithGender(gender))
	}

	return entities.NewEntry(id, definitions, phrases, opts...), nil
}

func (t *EntryTransformer) phrases(id valueobjects.EntryID, raw *source.RawEntry) []valueobjects.EntryID {
	seen := make(map[int]bool)
	phrases := []valueobjects.EntryID{}

	for _, sub := range raw.PhraseElements() {
		target := sub.TargetID()
		if target <= 0 || seen[target] {
			continue
		}
		seen[target] = true
		phrases = append(phrases, id.WithID(target))
	}
	return phrases
}

// wordClass reads the class from the first paradigm of the first lemma
func (t *EntryTransformer) wordClass(id valueobjects.EntryID, raw *source.RawEntry) (entities.WordClass, bool) {
	if len(raw.Lemmas) == 0 || len(raw.Lemmas[0].ParadigmInfo) == 0 {
		return "", false
	}

	lemma := raw.Lemmas[0]
	tags := lemma.ParadigmInfo[0].Tags
	if len(tags) == 0 {
		return "", false
	}

	wc, ok := entities.WordClassFromTags(tags)
	if !ok {
		t.logger.Warn("No word class for paradigm tags",
			zap.String("entryID", id.String()),
			zap.String("lemma", lemma.Lemma),
			zap.Strings("tags", tags),
		)
	}
	return wc, ok
}

func (t *EntryTransformer) lemmas(raw *source.RawEntry) []entities.Lemma {
	lemmas := make([]entities.Lemma, 0, len(raw.Lemmas))

	for _, rl := range raw.Lemmas {
		lemma := entities.Lemma{
			ID:              rl.ID,
			Lemma:           rl.Lemma,
			Meaning:         rl.HGNo,
			SplitInfinitive: rl.SplitInf != nil && *rl.SplitInf,
			Paradigms:       make([]entities.Paradigm, 0, len(rl.ParadigmInfo)),
		}

		for _, rp := range rl.ParadigmInfo {
			paradigm := entities.Paradigm{
				ID:          rp.ParadigmID,
				Tags:        entities.InflectionTagsFromSource(rp.Tags),
				Inflections: make([]entities.Inflection, 0, len(rp.Inflection)),
			}
			for _, ri := range rp.Inflection {
				if len(ri.Tags) == 0 && ri.WordForm == nil {
					continue
				}
				paradigm.Inflections = append(paradigm.Inflections, entities.Inflection{
					Tags:     entities.InflectionTagsFromSource(ri.Tags),
					WordForm: ri.WordForm,
				})
			}
			lemma.Paradigms = append(lemma.Paradigms, paradigm)
		}

		lemmas = append(lemmas, lemma)
	}

	return lemmas
}

func (t *EntryTransformer) etymology(dictionary valueobjects.Dictionary, raw *source.RawEntry) []valueobjects.RichContent {
	etymology := []valueobjects.RichContent{}
	for _, el := range raw.Body.Etymology {
		content := t.formatter.Format(dictionary, el)
		if content.Len() == 0 {
			continue
		}
		etymology = append(etymology, content.Build())
	}
	return etymology
}
