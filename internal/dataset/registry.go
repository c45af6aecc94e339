package dataset

import "sync"

// Registry stores the benchmark variants known to the driver, preserving
// registration order so runs are deterministic.
type Registry struct {
	variants map[string]Variant
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates an empty variant registry.
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string]Variant),
	}
}

// DefaultRegistry returns a registry with every variant the eval_codes
// package ships modules for.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []Name{Davis, Set8} {
		for _, mode := range []Mode{Blind, NonBlind} {
			// Ignoring the error: the combinations above are distinct.
			_ = r.Register(Variant{Name: name, Mode: mode})
		}
	}
	return r
}

// Register adds a variant to the registry.
func (r *Registry) Register(v Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.ID()
	if _, ok := r.variants[id]; ok {
		return ErrAlreadyRegistered
	}

	r.variants[id] = v
	r.order = append(r.order, id)
	return nil
}

// Get retrieves a variant by id.
func (r *Registry) Get(id string) (Variant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.variants[id]
	return v, ok
}

// List returns all variants in registration order.
func (r *Registry) List() []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variants := make([]Variant, 0, len(r.order))
	for _, id := range r.order {
		variants = append(variants, r.variants[id])
	}

	return variants
}
