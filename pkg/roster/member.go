// Package roster holds the member records, the list state with its
// mutate-then-persist contract, the age calculator, and the pure
// search/filter/sort pipeline that produces the visible rows.
package roster

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"kintrack/pkg/storage"
)

// ErrInvalid signals that submitted form values failed validation. The UI
// treats it as "form not yet complete" and silently drops the submission.
var ErrInvalid = errors.New("invalid member input")

// ErrNotFound signals that no member with the given ID exists.
var ErrNotFound = errors.New("member not found")

// Member is one tracked person. The ID is assigned at creation time and is
// the identity every edit/delete action binds to, so bindings survive
// filtering and sorting of the visible rows.
type Member struct {
	ID           uuid.UUID
	Name         string
	DOB          time.Time
	Relationship string
}

// memberJSON is the persisted shape of a member record.
type memberJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DOB          string `json:"dob"`
	Relationship string `json:"relationship"`
}

// Input carries raw form values prior to validation.
type Input struct {
	Name         string
	DOB          string
	Relationship string
}

// dob input from the form is a plain calendar date; persisted records carry
// a full timestamp like the original data did.
var dobLayouts = []string{"2006-01-02", time.RFC3339}

// parseDOB parses a date-of-birth string in either form layout.
func parseDOB(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dobLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// validate turns raw form input into a member, without an ID. It returns
// ErrInvalid when the name or relationship is empty after trimming or the
// date of birth does not parse.
func validate(in Input) (Member, error) {
	name := strings.TrimSpace(in.Name)
	relationship := strings.TrimSpace(in.Relationship)
	if name == "" || relationship == "" {
		return Member{}, ErrInvalid
	}

	dob, err := parseDOB(in.DOB)
	if err != nil {
		return Member{}, ErrInvalid
	}

	return Member{
		Name:         name,
		DOB:          dob,
		Relationship: relationship,
	}, nil
}

// MarshalJSON encodes the member in the persisted record shape.
func (m Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(memberJSON{
		ID:           m.ID.String(),
		Name:         m.Name,
		DOB:          m.DOB.Format(time.RFC3339),
		Relationship: m.Relationship,
	})
}

// UnmarshalJSON decodes a persisted record. A record whose dob does not
// parse fails the whole decode; the caller treats that as "no data".
func (m *Member) UnmarshalJSON(data []byte) error {
	var rec memberJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	dob, err := parseDOB(rec.DOB)
	if err != nil {
		return err
	}

	// Records persisted before stable IDs existed get one assigned on load.
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		id = uuid.New()
	}

	m.ID = id
	m.Name = rec.Name
	m.DOB = dob
	m.Relationship = rec.Relationship
	return nil
}

// decodeMembers parses the persisted member array. Any parse failure yields
// an empty list rather than an error.
func decodeMembers(data []byte) []Member {
	var members []Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil
	}
	return members
}

// loadMembers hydrates the member list from a store.
func loadMembers(store storage.Store) []Member {
	data, ok := store.Get(storage.KeyMembers)
	if !ok {
		return nil
	}
	return decodeMembers(data)
}
