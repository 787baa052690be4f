package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Store is a read view over the product inventory.
type Store interface {
	// List returns every product in no particular order.
	List(ctx context.Context) ([]Product, error)
	// Get finds a product by name, case-insensitively.
	Get(ctx context.Context, name string) (Product, error)
}

// MemoryStore keeps products in a map. It is the default store and is what
// the tools use when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]Product
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store over products, validating each one like Put
// does. Later duplicates replace earlier ones.
func NewMemoryStore(products []Product) (*MemoryStore, error) {
	s := &MemoryStore{products: make(map[string]Product, len(products))}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		s.products[key(p.Name)] = p
	}
	return s, nil
}

// NewSeedStore returns a store over the built-in seed products.
func NewSeedStore() *MemoryStore {
	s, err := NewMemoryStore(SeedProducts())
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid seed product: %v", err))
	}
	return s
}

// Put adds or replaces a product.
func (s *MemoryStore) Put(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[key(p.Name)] = p
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, name string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[key(name)]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	return p, nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
