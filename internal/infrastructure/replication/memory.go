package replication

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
)

// MemoryDocumentStore is an in-process document store. Fail makes every
// call return the given error.
type MemoryDocumentStore struct {
	mu       sync.Mutex
	items    map[string]entity.CatalogItem
	settings *entity.Settings
	sales    []entity.Sale
	calls    []string
	Fail     error
}

// NewMemoryDocumentStore creates an empty in-process document store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{items: make(map[string]entity.CatalogItem)}
}

var _ domainRepo.DocumentStore = (*MemoryDocumentStore)(nil)

func (m *MemoryDocumentStore) Name() string { return "memory" }

func (m *MemoryDocumentStore) record(call string) error {
	m.calls = append(m.calls, call)
	return m.Fail
}

// Calls returns the operations received so far
func (m *MemoryDocumentStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Sales returns the mirrored sales
func (m *MemoryDocumentStore) Sales() []entity.Sale {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.Sale(nil), m.sales...)
}

func (m *MemoryDocumentStore) ListItems(context.Context) ([]entity.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListItems"); err != nil {
		return nil, err
	}
	items := make([]entity.CatalogItem, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryDocumentStore) GetItem(_ context.Context, id string) (*entity.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetItem " + id); err != nil {
		return nil, err
	}
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (m *MemoryDocumentStore) PutItem(_ context.Context, item *entity.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("PutItem " + item.ID); err != nil {
		return err
	}
	m.items[item.ID] = *item
	return nil
}

func (m *MemoryDocumentStore) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteItem " + id); err != nil {
		return err
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryDocumentStore) UpdateItemStock(_ context.Context, id string, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("UpdateItemStock %s %d", id, stock)); err != nil {
		return err
	}
	it, ok := m.items[id]
	if !ok {
		return fmt.Errorf("item %s not found", id)
	}
	it.Stock = entity.IntPtr(stock)
	m.items[id] = it
	return nil
}

func (m *MemoryDocumentStore) GetSettings(context.Context) (*entity.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetSettings"); err != nil {
		return nil, err
	}
	if m.settings == nil {
		return nil, nil
	}
	s := *m.settings
	return &s, nil
}

func (m *MemoryDocumentStore) PutSettings(_ context.Context, settings entity.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("PutSettings"); err != nil {
		return err
	}
	m.settings = &settings
	return nil
}

func (m *MemoryDocumentStore) AppendSale(_ context.Context, sale *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("AppendSale " + sale.ID); err != nil {
		return err
	}
	m.sales = append(m.sales, *sale)
	return nil
}
