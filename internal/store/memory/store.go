package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/davidbz/chargeflow/internal/charge"
	"github.com/davidbz/chargeflow/internal/domain"
)

// Store keeps charges in memory.
type Store struct {
	mu      sync.RWMutex
	charges map[string]*domain.Charge
}

// NewStore creates a new in-memory charge store.
func NewStore() *Store {
	return &Store{
		mu:      sync.RWMutex{},
		charges: make(map[string]*domain.Charge),
	}
}

// Save inserts or replaces a charge.
func (s *Store) Save(_ context.Context, charge *domain.Charge) error {
	if charge == nil || charge.ID == "" {
		return domain.ErrEmptyChargeID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.charges[charge.ID] = clone(charge)
	return nil
}

// Get retrieves a charge by ID.
func (s *Store) Get(_ context.Context, id string) (*domain.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	charge, exists := s.charges[id]
	if !exists {
		return nil, domain.ErrChargeNotFound
	}

	return clone(charge), nil
}

// Delete removes a charge.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.charges[id]; !exists {
		return domain.ErrChargeNotFound
	}

	delete(s.charges, id)
	return nil
}

// List returns all charges ordered by creation time, then ID.
func (s *Store) List(_ context.Context) ([]*domain.Charge, error) {
	s.mu.RLock()
	charges := make([]*domain.Charge, 0, len(s.charges))
	for _, charge := range s.charges {
		charges = append(charges, clone(charge))
	}
	s.mu.RUnlock()

	slices.SortFunc(charges, func(a, b *domain.Charge) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return charges, nil
}

// clone detaches the stored copy from the caller, including nested tier
// maps and slices inside the properties.
func clone(src *domain.Charge) *domain.Charge {
	c := *src
	if src.Properties != nil {
		c.Properties = cloneMap(src.Properties)
	}
	return &c
}

func cloneMap[M ~map[string]any](m M) M {
	out := make(M, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return cloneMap(value)
	case charge.Properties:
		return cloneMap(value)
	case map[any]any:
		out := make(map[any]any, len(value))
		for k, item := range value {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(value))
		for i, item := range value {
			out[i] = cloneMap(item)
		}
		return out
	default:
		return v
	}
}
