package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory RecordStore used by tests and the CLI service.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string][]Record
}

var _ RecordStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string][]Record)}
}

// Append adds the document at the end of the collection.
func (m *MemoryStore) Append(collection string, doc json.RawMessage) (RowRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref := RowRef(uuid.NewString())
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	m.rows[collection] = append(m.rows[collection], Record{Ref: ref, Doc: cp})
	return ref, nil
}

// ListAll returns a copy of the collection's row slots in order.
func (m *MemoryStore) ListAll(collection string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.rows[collection]
	out := make([]Record, len(src))
	copy(out, src)
	return out, nil
}

// Clear empties the referenced row in place.
func (m *MemoryStore) Clear(collection string, ref RowRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows[collection] {
		if r.Ref == ref {
			m.rows[collection][i].Doc = nil
			return nil
		}
	}
	return fmt.Errorf("row %s not found in %s", ref, collection)
}

// Compact drops cleared slots, keeping the remaining rows in order.
func (m *MemoryStore) Compact(collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.rows[collection]
	kept := src[:0]
	for _, r := range src {
		if !r.Empty() {
			kept = append(kept, r)
		}
	}
	m.rows[collection] = kept
	return nil
}
