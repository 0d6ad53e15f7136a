package identity

import "sort"

// Record pairs a created identity's name with its principal.
type Record struct {
	Name      string
	Principal string
}

// Registry is the side table of identities this run created.
type Registry struct {
	principals map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{principals: make(map[string]string)}
}

// Add registers a created identity.
func (r *Registry) Add(name, principal string) {
	r.principals[name] = principal
}

// Remove drops an identity from the table.
func (r *Registry) Remove(name string) {
	delete(r.principals, name)
}

// Principal looks up the principal recorded for name.
func (r *Registry) Principal(name string) (string, bool) {
	p, ok := r.principals[name]
	return p, ok
}

// Names returns the tracked identity names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.principals))
	for name := range r.principals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many identities are tracked.
func (r *Registry) Len() int {
	return len(r.principals)
}
