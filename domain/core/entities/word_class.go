package entities

// WordClass is the grammatical class of an entry
type WordClass string

const (
	WordClassNoun         WordClass = "Substantiv"
	WordClassAdjective    WordClass = "Adjektiv"
	WordClassAdverb       WordClass = "Adverb"
	WordClassVerb         WordClass = "Verb"
	WordClassPronoun      WordClass = "Pronomen"
	WordClassPreposition  WordClass = "Preposisjon"
	WordClassConjunction  WordClass = "Konjunksjon"
	WordClassInterjection WordClass = "Interjeksjon"
	WordClassDeterminer   WordClass = "Determinativ"
	WordClassSubjunction  WordClass = "Subjunksjon"
	WordClassSymbol       WordClass = "Symbol"
	WordClassAbbreviation WordClass = "Forkorting"
	WordClassExpression   WordClass = "Uttrykk"
)

var wordClassTags = map[string]WordClass{
	"NOUN":  WordClassNoun,
	"ADJ":   WordClassAdjective,
	"ADV":   WordClassAdverb,
	"VERB":  WordClassVerb,
	"PRON":  WordClassPronoun,
	"ADP":   WordClassPreposition,
	"CCONJ": WordClassConjunction,
	"INTJ":  WordClassInterjection,
	"DET":   WordClassDeterminer,
	"SCONJ": WordClassSubjunction,
	"SYM":   WordClassSymbol,
	"ABBR":  WordClassAbbreviation,
	"EXPR":  WordClassExpression,
}

// WordClassFromTags returns the word class named by the first recognised
// paradigm tag.
func WordClassFromTags(tags []string) (WordClass, bool) {
	for _, tag := range tags {
		if wc, ok := wordClassTags[tag]; ok {
			return wc, true
		}
	}
	return "", false
}
