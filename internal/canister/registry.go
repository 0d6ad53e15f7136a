package canister

import "sort"

// Record pairs a deployed canister's name with the id the replica assigned.
type Record struct {
	Name       string
	CanisterID string
}

// Registry is the side table of canisters this run deployed.
type Registry struct {
	ids map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]string)}
}

// Add registers a deployed canister.
func (r *Registry) Add(name, canisterID string) {
	r.ids[name] = canisterID
}

// Remove drops a canister from the table.
func (r *Registry) Remove(name string) {
	delete(r.ids, name)
}

// ID looks up the canister id recorded for name.
func (r *Registry) ID(name string) (string, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Names returns the tracked canister names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ids))
	for name := range r.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many canisters are tracked.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Clear forcibly empties the table.
func (r *Registry) Clear() {
	r.ids = make(map[string]string)
}
