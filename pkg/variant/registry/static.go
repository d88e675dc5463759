// Package registry provides an in-memory variant registry.
package registry

import (
	"os"
	"sort"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Static is a registry of variants with fixed activations. It is safe for
// concurrent use.
type Static struct {
	mu       sync.RWMutex
	variants map[string]bool
}

// NewStatic returns a registry holding the variants of activations, keyed
// by path.
func NewStatic(activations map[string]bool) *Static {
	s := &Static{variants: make(map[string]bool, len(activations))}
	for path, active := range activations {
		s.variants[path] = active
	}
	return s
}

// LoadFile reads a YAML mapping of variant paths to activations.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	activations := map[string]bool{}
	if err := yaml.Unmarshal(data, &activations); err != nil {
		return nil, errors.Wrapf(err, "cannot decode variant activations from %s", path)
	}
	return NewStatic(activations), nil
}

// Set adds the variant at path or changes its activation.
func (s *Static) Set(path string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variants[path] = active
}

// Remove forgets the variant at path.
func (s *Static) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.variants, path)
}

func (s *Static) HasVariant(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.variants[path]
	return ok
}

func (s *Static) IsActiveVariant(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variants[path]
}

// Variants returns the known variant paths, sorted.
func (s *Static) Variants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.variants))
	for path := range s.variants {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
