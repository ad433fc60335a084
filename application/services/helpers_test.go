package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
	"ordbok-backend/tests/fixtures"
)

type staticConcepts map[valueobjects.Dictionary]map[string]string

func (c staticConcepts) Concept(dictionary valueobjects.Dictionary, id string) (string, bool) {
	expansion, ok := c[dictionary][id]
	return expansion, ok
}

var testConcepts = staticConcepts{
	valueobjects.Nynorsk: {
		"norr":  "norrønt",
		"norr.": "norrønt",
		"lat":   "latin",
		"m":     "hankjønn",
		"sms":   "samansetningar",
	},
	valueobjects.Bokmaal: {
		"jf":    "jamfør",
		"m":     "hankjønn",
		"norr.": "norrønt",
		"lat.":  "latin",
		"el":    "eller",
	},
}

func newTestFormatter() *ElementFormatter {
	return NewElementFormatter(testConcepts, nil, zap.NewNop())
}

func decodeElements(t *testing.T, elements ...fixtures.Element) source.ElementList {
	t.Helper()
	if elements == nil {
		elements = []fixtures.Element{}
	}
	data, err := json.Marshal(elements)
	require.NoError(t, err)

	var list source.ElementList
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func decodeElement(t *testing.T, element fixtures.Element) source.Element {
	t.Helper()
	return decodeElements(t, element)[0]
}

func nn(id int) valueobjects.EntryID {
	return valueobjects.MustEntryID(valueobjects.Nynorsk, id)
}

func bm(id int) valueobjects.EntryID {
	return valueobjects.MustEntryID(valueobjects.Bokmaal, id)
}

func intPtr(i int) *int { return &i }
