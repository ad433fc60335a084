package valueobjects

import (
	"fmt"
	"strings"
)

// Dictionary identifies one of the supported lexicons. Entry ids are only
// unique within a dictionary.
type Dictionary string

const (
	Bokmaal     Dictionary = "bm"
	Nynorsk     Dictionary = "nn"
	NorskOrdbok Dictionary = "no"
)

var dictionaryNames = map[Dictionary]string{
	Bokmaal:     "Bokmålsordboka",
	Nynorsk:     "Nynorskordboka",
	NorskOrdbok: "Norsk Ordbok",
}

// AllDictionaries returns every supported dictionary in a stable order
func AllDictionaries() []Dictionary {
	return []Dictionary{Bokmaal, Nynorsk, NorskOrdbok}
}

// ParseDictionary accepts either the short code ("bm") or the display name
// ("Bokmålsordboka"), case-insensitively.
func ParseDictionary(s string) (Dictionary, error) {
	s = strings.TrimSpace(s)
	for _, d := range AllDictionaries() {
		if strings.EqualFold(s, string(d)) || strings.EqualFold(s, dictionaryNames[d]) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dictionary %q", s)
}

// IsValid reports whether d is a supported dictionary
func (d Dictionary) IsValid() bool {
	_, ok := dictionaryNames[d]
	return ok
}

// Name returns the display name of the dictionary
func (d Dictionary) Name() string {
	return dictionaryNames[d]
}

func (d Dictionary) String() string {
	return string(d)
}
