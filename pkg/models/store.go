package models

import (
	"fmt"
	"slices"
)

// Store maps shape names to bodies and remembers registration order.
// It is not safe for concurrent use.
type Store struct {
	bodies map[string]*Body
	order  []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{bodies: make(map[string]*Body)}
}

// Register adds or replaces a shape. Replacing keeps the name's original
// position in Names.
func (s *Store) Register(name string, body *Body) error {
	if name == "" {
		return fmt.Errorf("register: empty name: %w", ErrInvalidShape)
	}
	if body == nil {
		return fmt.Errorf("register %q: nil body: %w", name, ErrInvalidShape)
	}
	if _, ok := s.bodies[name]; !ok {
		s.order = append(s.order, name)
	}
	s.bodies[name] = body
	return nil
}

func (s *Store) mustRegister(name string, body *Body) {
	if err := s.Register(name, body); err != nil {
		panic(err)
	}
}

// Get returns the body registered under name.
func (s *Store) Get(name string) (*Body, error) {
	b, ok := s.bodies[name]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", name, ErrNotFound)
	}
	return b, nil
}

// Has reports whether name is registered.
func (s *Store) Has(name string) bool {
	_, ok := s.bodies[name]
	return ok
}

// Names returns the registered names in registration order.
func (s *Store) Names() []string {
	return slices.Clone(s.order)
}

// Len returns the number of registered shapes.
func (s *Store) Len() int {
	return len(s.order)
}

// NameAt returns the i-th registered name.
func (s *Store) NameAt(i int) (string, bool) {
	if i < 0 || i >= len(s.order) {
		return "", false
	}
	return s.order[i], true
}
