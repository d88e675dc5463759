package logic

import (
	"sort"
	"sync"
)

// Constructor creates a gate bound to owner.
type Constructor func(owner Owner) Node

type baser interface {
	base() *Base
}

// Factory maps gate GUIDs to constructors. Registration is expected to
// happen before the factory is shared; lookups are safe for concurrent
// use.
type Factory struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewFactory returns a factory holding the built-in gate kinds.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[string]Constructor)}
	f.Register(SlotGUID, func(owner Owner) Node { return NewSlot(owner) })
	f.Register(NotGUID, func(owner Owner) Node { return NewNot(owner) })
	f.Register(AndGUID, func(owner Owner) Node { return NewAnd(owner) })
	f.Register(OrGUID, func(owner Owner) Node { return NewOr(owner) })
	f.Register(XorGUID, func(owner Owner) Node { return NewXor(owner) })
	return f
}

var (
	defaultFactory     *Factory
	defaultFactoryOnce sync.Once
)

// DefaultFactory returns the process-wide factory, creating it with the
// built-in gate kinds on first use.
func DefaultFactory() *Factory {
	defaultFactoryOnce.Do(func() {
		defaultFactory = NewFactory()
	})
	return defaultFactory
}

// Register installs ctor under guid. A later registration for the same
// guid replaces the earlier one.
func (f *Factory) Register(guid string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[guid] = ctor
}

// Create instantiates the gate registered under guid. Gates embedding a
// *Base remember the factory so that ConnectDependee uses it too.
func (f *Factory) Create(guid string, owner Owner) (Node, bool) {
	f.mu.RLock()
	ctor, ok := f.constructors[guid]
	f.mu.RUnlock()
	if !ok {
		return nil, false
	}
	n := ctor(owner)
	if n == nil {
		return nil, false
	}
	if b, ok := n.(baser); ok && b.base() != nil {
		b.base().factory = f
	}
	return n, true
}

func (f *Factory) Has(guid string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.constructors[guid]
	return ok
}

// GUIDs returns the registered gate kinds, sorted.
func (f *Factory) GUIDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	guids := make([]string, 0, len(f.constructors))
	for guid := range f.constructors {
		guids = append(guids, guid)
	}
	sort.Strings(guids)
	return guids
}
