// Package collection reads and writes the notes of a flashcard collection.
package collection

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotetypeNotFound = errors.New("note type not found")
	ErrFieldNotFound    = errors.New("field not found")
)

// Collection is a store of notes grouped by note type.
type Collection interface {
	// FindNotes returns the notes of a note type in ascending id order.
	FindNotes(ctx context.Context, notetype string) ([]*Note, error)
	// UpdateNotes writes back the field values of notes.
	UpdateNotes(ctx context.Context, notes []*Note) error
	Close() error
}

// Note is a single note. Its fields are addressed by the names its note
// type declares.
type Note struct {
	ID     int64
	names  []string
	values []string
	// index of the field the collection sorts and searches duplicates by
	sortIdx int
}

// NewNote makes a note with a value for every name. Missing values are
// empty and extra ones are dropped.
func NewNote(id int64, names []string, values []string) *Note {
	v := make([]string, len(names))
	copy(v, values)
	return &Note{ID: id, names: names, values: v}
}

func (n *Note) index(name string) int {
	for i, fn := range n.names {
		if fn == name {
			return i
		}
	}
	return -1
}

func (n *Note) Has(name string) bool {
	return n.index(name) >= 0
}

func (n *Note) Field(name string) (string, error) {
	i := n.index(name)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	return n.values[i], nil
}

func (n *Note) SetField(name, value string) error {
	i := n.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	n.values[i] = value
	return nil
}

// SortField is the sort field value with markup removed, as the collection
// stores it for searching.
func (n *Note) SortField() string {
	if n.sortIdx >= len(n.values) {
		return ""
	}
	return StripHTML(n.values[n.sortIdx])
}

func (n *Note) FieldNames() []string {
	return n.names
}

// Values returns a copy of the field values in field order.
func (n *Note) Values() []string {
	ret := make([]string, len(n.values))
	copy(ret, n.values)
	return ret
}
