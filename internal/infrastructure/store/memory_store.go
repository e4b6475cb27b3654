package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

// MemoryStore keeps encoded values in process memory. Values are stored
// as JSON so reads behave exactly like the database-backed store.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return decode(key, data, dst), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// SetRaw stores bytes verbatim, bypassing encoding
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), data...)
	s.mu.Unlock()
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx domainRepo.KeyValueStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &memoryTx{parent: s, writes: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	for k, v := range tx.writes {
		if v == nil {
			delete(s.data, k)
			continue
		}
		s.data[k] = v
	}
	s.mu.Unlock()
	return nil
}

// memoryTx buffers writes until the transaction function returns. A nil
// value marks a deletion.
type memoryTx struct {
	parent *MemoryStore
	writes map[string][]byte
}

func (t *memoryTx) Get(ctx context.Context, key string, dst any) (bool, error) {
	if data, ok := t.writes[key]; ok {
		if data == nil {
			return false, nil
		}
		return decode(key, data, dst), nil
	}
	return t.parent.Get(ctx, key, dst)
}

func (t *memoryTx) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	t.writes[key] = data
	return nil
}

func (t *memoryTx) Delete(_ context.Context, key string) error {
	t.writes[key] = nil
	return nil
}

func (t *memoryTx) Transaction(ctx context.Context, fn func(tx domainRepo.KeyValueStore) error) error {
	return fn(t)
}
