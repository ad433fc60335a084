package queries

import (
	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/pkg/utils"
)

// EntryRef identifies an entry in a query
type EntryRef struct {
	Dictionary string `json:"dictionary" validate:"required,oneof=bm nn no"`
	ID         int    `json:"id" validate:"gt=0"`
}

// EntryID converts the reference; call after validation
func (r EntryRef) EntryID() (valueobjects.EntryID, error) {
	return valueobjects.NewEntryID(valueobjects.Dictionary(r.Dictionary), r.ID)
}

// GetEntryQuery represents a query to get a single entry
type GetEntryQuery struct {
	EntryRef
}

// Validate validates the GetEntryQuery
func (q GetEntryQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetEntryResult is the transformed entry
type GetEntryResult struct {
	Entry *entities.Entry `json:"entry"`
}

// GetEntryRelationshipsQuery represents a query for the flattened
// relationships of an entry
type GetEntryRelationshipsQuery struct {
	EntryRef
}

// Validate validates the GetEntryRelationshipsQuery
func (q GetEntryRelationshipsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetEntryRelationshipsResult lists the relationships of one entry
type GetEntryRelationshipsResult struct {
	Entry         valueobjects.EntryID    `json:"entry"`
	Lemma         string                  `json:"lemma"`
	Relationships []entities.Relationship `json:"relationships"`
}
