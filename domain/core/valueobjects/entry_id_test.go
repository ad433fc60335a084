package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dictionary
		wantErr bool
	}{
		{name: "bokmål code", input: "bm", want: Bokmaal},
		{name: "nynorsk code upper case", input: "NN", want: Nynorsk},
		{name: "norsk ordbok name", input: "Norsk Ordbok", want: NorskOrdbok},
		{name: "display name with whitespace", input: "  bokmålsordboka ", want: Bokmaal},
		{name: "unknown", input: "sv", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDictionary(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEntryID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := NewEntryID(Nynorsk, 60110)
		require.NoError(t, err)
		assert.Equal(t, Nynorsk, id.Dictionary())
		assert.Equal(t, 60110, id.ID())
		assert.Equal(t, "nn:60110", id.String())
		assert.False(t, id.IsZero())
	})

	t.Run("unknown dictionary", func(t *testing.T) {
		_, err := NewEntryID("xx", 1)
		assert.Error(t, err)
	})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := NewEntryID(Bokmaal, 0)
		assert.Error(t, err)
	})

	t.Run("zero value", func(t *testing.T) {
		assert.True(t, EntryID{}.IsZero())
	})
}

func TestEntryIDIsComparable(t *testing.T) {
	a := MustEntryID(Bokmaal, 1)
	b := MustEntryID(Bokmaal, 1)
	c := MustEntryID(Nynorsk, 1)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	seen := map[EntryID]bool{a: true}
	assert.True(t, seen[b])
	assert.False(t, seen[c])
}

func TestEntryIDWithIDKeepsDictionary(t *testing.T) {
	id := MustEntryID(NorskOrdbok, 5).WithID(7)
	assert.Equal(t, NorskOrdbok, id.Dictionary())
	assert.Equal(t, 7, id.ID())
}

func TestParseEntryID(t *testing.T) {
	id, err := ParseEntryID("bm:123")
	require.NoError(t, err)
	assert.Equal(t, MustEntryID(Bokmaal, 123), id)

	_, err = ParseEntryID("bm-123")
	assert.Error(t, err)
	_, err = ParseEntryID("bm:abc")
	assert.Error(t, err)
}

func TestEntryIDJSON(t *testing.T) {
	id := MustEntryID(Bokmaal, 42)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dictionary":"bm","id":42}`, string(data))

	var decoded EntryID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"dictionary":"xx","id":1}`), &decoded))
}
