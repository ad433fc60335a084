package valueobjects

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EntryID is a value object identifying an entry within a dictionary.
// It is comparable and safe to use as a map key.
type EntryID struct {
	dictionary Dictionary
	id         int
}

// NewEntryID creates an EntryID after validating both parts
func NewEntryID(dictionary Dictionary, id int) (EntryID, error) {
	if !dictionary.IsValid() {
		return EntryID{}, fmt.Errorf("unknown dictionary %q", dictionary)
	}
	if id <= 0 {
		return EntryID{}, errors.New("entry ID must be a positive integer")
	}
	return EntryID{dictionary: dictionary, id: id}, nil
}

// MustEntryID is like NewEntryID but panics on invalid input.
// Intended for constants and tests.
func MustEntryID(dictionary Dictionary, id int) EntryID {
	entryID, err := NewEntryID(dictionary, id)
	if err != nil {
		panic(err)
	}
	return entryID
}

// ParseEntryID parses the "<dictionary>:<id>" form produced by String
func ParseEntryID(s string) (EntryID, error) {
	dict, num, ok := strings.Cut(s, ":")
	if !ok {
		return EntryID{}, fmt.Errorf("malformed entry ID %q", s)
	}
	d, err := ParseDictionary(dict)
	if err != nil {
		return EntryID{}, err
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return EntryID{}, fmt.Errorf("malformed entry ID %q: %w", s, err)
	}
	return NewEntryID(d, n)
}

// WithID returns an EntryID in the same dictionary. References inside an
// entry always point into the dictionary of the entry itself.
func (e EntryID) WithID(id int) EntryID {
	return EntryID{dictionary: e.dictionary, id: id}
}

// Dictionary returns the dictionary part
func (e EntryID) Dictionary() Dictionary {
	return e.dictionary
}

// ID returns the numeric part
func (e EntryID) ID() int {
	return e.id
}

// IsZero checks if the EntryID is the zero value
func (e EntryID) IsZero() bool {
	return e.dictionary == "" && e.id == 0
}

// String returns the "<dictionary>:<id>" form
func (e EntryID) String() string {
	return fmt.Sprintf("%s:%d", e.dictionary, e.id)
}

type entryIDJSON struct {
	Dictionary Dictionary `json:"dictionary"`
	ID         int        `json:"id"`
}

// MarshalJSON implements json.Marshaler
func (e EntryID) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryIDJSON{Dictionary: e.dictionary, ID: e.id})
}

// UnmarshalJSON implements json.Unmarshaler
func (e *EntryID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw entryIDJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("EntryID must be an object: %w", err)
	}
	parsed, err := NewEntryID(raw.Dictionary, raw.ID)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
