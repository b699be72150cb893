package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

type memoryNote struct {
	notetype string
	values   []string
}

// Memory is a Collection kept in memory.
type Memory struct {
	mu        sync.Mutex
	notetypes map[string][]string
	notes     *treemap.Map // int64 -> *memoryNote
}

func NewMemory() *Memory {
	return &Memory{
		notetypes: map[string][]string{},
		notes:     treemap.NewWith(utils.Int64Comparator),
	}
}

// AddNotetype declares a note type and its field names.
func (m *Memory) AddNotetype(name string, fields ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notetypes[name] = fields
}

func (m *Memory) AddNote(notetype string, id int64, values ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	names, ok := m.notetypes[notetype]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotetypeNotFound, notetype)
	}
	v := make([]string, len(names))
	copy(v, values)
	m.notes.Put(id, &memoryNote{notetype: notetype, values: v})
	return nil
}

func (m *Memory) FindNotes(ctx context.Context, notetype string) ([]*Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names, ok := m.notetypes[notetype]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotetypeNotFound, notetype)
	}
	var notes []*Note
	it := m.notes.Iterator()
	for it.Next() {
		mn := it.Value().(*memoryNote)
		if mn.notetype != notetype {
			continue
		}
		notes = append(notes, NewNote(it.Key().(int64), names, mn.values))
	}
	return notes, nil
}

func (m *Memory) UpdateNotes(ctx context.Context, notes []*Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range notes {
		if _, ok := m.notes.Get(n.ID); !ok {
			return fmt.Errorf("note %d: no such note", n.ID)
		}
	}
	for _, n := range notes {
		v, _ := m.notes.Get(n.ID)
		v.(*memoryNote).values = n.Values()
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
