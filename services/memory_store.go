package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemoryStore keeps records in a map.  Records are copied in and out so
// callers cannot alias stored state.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*ScenarioRecord, error) {
	m.mu.RLock()
	data, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSuchEntity
	}
	return decodeRecord(data)
}

func (m *MemoryStore) Save(ctx context.Context, rec *ScenarioRecord) error {
	if err := ValidateID(rec.Id); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[rec.Id] = data
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*ScenarioRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ScenarioRecord, 0, len(m.byID))
	for _, data := range m.byID {
		rec, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNoSuchEntity
	}
	delete(m.byID, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func decodeRecord(data []byte) (*ScenarioRecord, error) {
	var rec ScenarioRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
