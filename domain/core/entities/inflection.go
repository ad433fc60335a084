package entities

// Gender is the grammatical gender of a noun
type Gender string

const (
	GenderMasculineFeminine Gender = "HankjoennHokjoenn"
	GenderMasculine         Gender = "Hankjoenn"
	GenderFeminine          Gender = "Hokjoenn"
	GenderNeuter            Gender = "Inkjekjoenn"
)

// InflectionTag describes one grammatical property of an inflected form
type InflectionTag string

const (
	TagInfinitive        InflectionTag = "Infinitiv"
	TagPresent           InflectionTag = "Presens"
	TagPast              InflectionTag = "Preteritum"
	TagPerfectParticiple InflectionTag = "PerfektPartisipp"
	TagPresentParticiple InflectionTag = "PresensPartisipp"
	TagSPassive          InflectionTag = "SPassiv"
	TagImperative        InflectionTag = "Imperativ"
	TagPassive           InflectionTag = "Passiv"
	TagAdjective         InflectionTag = "Adjektiv"
	TagAdverb            InflectionTag = "Adverb"
	TagNeuter            InflectionTag = "Inkjekjoenn"
	TagIndefinite        InflectionTag = "Ubestemt"
	TagSingular          InflectionTag = "Eintal"
	TagMasculineFeminine InflectionTag = "HankjoennHokjoenn"
	TagMasculine         InflectionTag = "Hankjoenn"
	TagFeminine          InflectionTag = "Hokjoenn"
	TagDefinite          InflectionTag = "Bestemt"
	TagPlural            InflectionTag = "Fleirtal"
	TagPositive          InflectionTag = "Positiv"
	TagComparative       InflectionTag = "Komparativ"
	TagSuperlative       InflectionTag = "Superlativ"
	TagNominative        InflectionTag = "Nominativ"
	TagAccusative        InflectionTag = "Akkusativ"
)

var inflectionTags = map[string]InflectionTag{
	"Inf":        TagInfinitive,
	"Pres":       TagPresent,
	"Past":       TagPast,
	"<PerfPart>": TagPerfectParticiple,
	"<PresPart>": TagPresentParticiple,
	"<SPass>":    TagSPassive,
	"Imp":        TagImperative,
	"Pass":       TagPassive,
	"Adj":        TagAdjective,
	"Adv":        TagAdverb,
	"Neuter":     TagNeuter,
	"Ind":        TagIndefinite,
	"Sing":       TagSingular,
	"Masc/Fem":   TagMasculineFeminine,
	"Masc":       TagMasculine,
	"Fem":        TagFeminine,
	"Def":        TagDefinite,
	"Plur":       TagPlural,
	"Pos":        TagPositive,
	"Cmp":        TagComparative,
	"Sup":        TagSuperlative,
	"Nom":        TagNominative,
	"Acc":        TagAccusative,
}

// InflectionTagsFromSource maps source tags, dropping the ones without a
// counterpart (word class tags among them).
func InflectionTagsFromSource(tags []string) []InflectionTag {
	out := make([]InflectionTag, 0, len(tags))
	for _, tag := range tags {
		if mapped, ok := inflectionTags[tag]; ok {
			out = append(out, mapped)
		}
	}
	return out
}

// GenderFromParadigmTags derives gender from the tags of all paradigms of an
// entry. Neuter wins outright; masculine and feminine together give the
// combined gender.
func GenderFromParadigmTags(paradigmTags [][]string) (Gender, bool) {
	var masc, fem bool
	for _, tags := range paradigmTags {
		for _, tag := range tags {
			switch tag {
			case "Neuter":
				return GenderNeuter, true
			case "Masc":
				masc = true
			case "Fem":
				fem = true
			}
		}
	}

	switch {
	case masc && fem:
		return GenderMasculineFeminine, true
	case masc:
		return GenderMasculine, true
	case fem:
		return GenderFeminine, true
	default:
		return "", false
	}
}

// Inflection is one inflected form of a lemma
type Inflection struct {
	Tags     []InflectionTag `json:"tags"`
	WordForm *string         `json:"wordForm,omitempty"`
}

// Paradigm is one inflection pattern of a lemma
type Paradigm struct {
	ID          int             `json:"id"`
	Tags        []InflectionTag `json:"tags"`
	Inflections []Inflection    `json:"inflections"`
}

// Lemma is a headword of an entry
type Lemma struct {
	ID              int        `json:"id"`
	Lemma           string     `json:"lemma"`
	Meaning         int        `json:"meaning"`
	SplitInfinitive bool       `json:"splitInfinitive"`
	Paradigms       []Paradigm `json:"paradigms"`
}
