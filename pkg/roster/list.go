package roster

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"kintrack/pkg/storage"
)

// List is the in-memory member list plus the transient edit marker. Every
// mutation runs through mutate, which applies the change and then writes the
// full list back to the store, so persistence is a single well-defined side
// effect rather than scattered save calls.
//
// List is not safe for concurrent use; the UI drives it from a single event
// loop and there is exactly one writer per store.
type List struct {
	store   storage.Store
	members []Member

	editing bool
	editID  uuid.UUID
}

// NewList hydrates a list from the store. Missing or corrupt persisted data
// yields an empty list, never an error.
func NewList(store storage.Store) *List {
	return &List{
		store:   store,
		members: loadMembers(store),
	}
}

// Members returns a copy of the current member list in insertion order.
func (l *List) Members() []Member {
	members := make([]Member, len(l.members))
	copy(members, l.members)
	return members
}

// Len returns the unfiltered member count.
func (l *List) Len() int {
	return len(l.members)
}

// Get returns the member with the given ID.
func (l *List) Get(id uuid.UUID) (Member, error) {
	for _, m := range l.members {
		if m.ID == id {
			return m, nil
		}
	}
	return Member{}, ErrNotFound
}

// mutate applies fn to the list and persists the full snapshot. When fn
// fails nothing is persisted and the list is left as fn left it, which for
// every mutation below means untouched.
func (l *List) mutate(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return l.persist()
}

// persist serializes the whole list and overwrites the persisted slot.
func (l *List) persist() error {
	data, err := json.Marshal(l.members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}
	if err := l.store.Set(storage.KeyMembers, data); err != nil {
		return fmt.Errorf("failed to persist members: %w", err)
	}
	return nil
}

// Add validates the input and appends a new member with a fresh ID.
// Returns ErrInvalid without mutating when validation fails.
func (l *List) Add(in Input) error {
	return l.mutate(func() error {
		member, err := validate(in)
		if err != nil {
			return err
		}
		member.ID = uuid.New()
		l.members = append(l.members, member)
		return nil
	})
}

// StartEdit marks the member with the given ID as being edited and returns
// it so the form can be populated. It does not mutate the list. Starting an
// edit while another is in progress reassigns the marker.
func (l *List) StartEdit(id uuid.UUID) (Member, error) {
	member, err := l.Get(id)
	if err != nil {
		return Member{}, err
	}
	l.editing = true
	l.editID = id
	return member, nil
}

// Editing returns the ID of the member currently being edited, if any.
func (l *List) Editing() (uuid.UUID, bool) {
	return l.editID, l.editing
}

// CancelEdit clears the edit marker without mutating the list.
func (l *List) CancelEdit() {
	l.editing = false
	l.editID = uuid.UUID{}
}

// CommitEdit replaces the record under the edit marker with the validated
// input, keeping the member's ID, then clears the marker. Validation
// failure leaves the list and the marker untouched.
func (l *List) CommitEdit(in Input) error {
	if !l.editing {
		return ErrNotFound
	}
	return l.mutate(func() error {
		member, err := validate(in)
		if err != nil {
			return err
		}
		for i := range l.members {
			if l.members[i].ID == l.editID {
				member.ID = l.editID
				l.members[i] = member
				l.CancelEdit()
				return nil
			}
		}
		// Marker points at a record that no longer exists
		l.CancelEdit()
		return ErrNotFound
	})
}

// Submit routes form input to CommitEdit when an edit is in progress and to
// Add otherwise.
func (l *List) Submit(in Input) error {
	if l.editing {
		return l.CommitEdit(in)
	}
	return l.Add(in)
}

// Delete removes the member with the given ID. The caller is responsible
// for having confirmed the action with the user first. Deleting the member
// under the edit marker clears the marker.
func (l *List) Delete(id uuid.UUID) error {
	return l.mutate(func() error {
		for i := range l.members {
			if l.members[i].ID == id {
				l.members = append(l.members[:i], l.members[i+1:]...)
				if l.editing && l.editID == id {
					l.CancelEdit()
				}
				return nil
			}
		}
		return ErrNotFound
	})
}
