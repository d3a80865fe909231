package timeline

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Behavior is the insertion policy used when registering an observer.
type Behavior string

const (
	// Add appends the observer to the end of the moment's list.
	Add Behavior = "add"
	// Prepend inserts the observer before every existing observer.
	Prepend Behavior = "prepend"
	// Replace discards the existing list and keeps only the new observer.
	Replace Behavior = "replace"
)

// ParseBehavior maps a behavior name to a Behavior. An empty string means Add.
func ParseBehavior(s string) (Behavior, error) {
	b := Behavior(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return Add, nil
	}
	if !b.valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBehavior, s)
	}
	return b, nil
}

func (b Behavior) valid() bool {
	switch b {
	case Add, Prepend, Replace:
		return true
	}
	return false
}

// registry maps moment names to ordered observer lists.
// A name has no entry until its first registration; entries are never removed.
type registry struct {
	mu        sync.RWMutex
	observers map[string][]Observer
}

func newRegistry() *registry {
	return &registry{observers: make(map[string][]Observer)}
}

// register validates before touching the map, so a rejected call leaves the registry unchanged.
// The returned slice is the registry's current list, not a copy.
func (r *registry) register(name string, obs Observer, behavior Behavior) ([]Observer, error) {
	if obs == nil {
		return nil, fmt.Errorf("%w: moment %q", ErrInvalidObserver, name)
	}
	if !behavior.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBehavior, behavior)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, exists := r.observers[name]
	if !exists {
		list = []Observer{obs}
	} else {
		switch behavior {
		case Add:
			list = append(list, obs)
		case Prepend:
			list = append([]Observer{obs}, list...)
		case Replace:
			list = []Observer{obs}
		}
	}

	r.observers[name] = list
	return list, nil
}

// snapshot copies the list so dispatch is unaffected by registrations made while observers run.
func (r *registry) snapshot(name string) []Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.observers[name])
}

func (r *registry) has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.observers[name]
	return ok
}
