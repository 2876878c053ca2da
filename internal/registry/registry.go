package registry

import (
	"fmt"
	"slices"
	"sync"
)

// Registry is an immutable catalogue of actions with its resolver index.
// A Registry is safe for concurrent use: nothing writes to it after New.
type Registry struct {
	actions map[ID]Action
	order   []ID // ascending
	index   *Index
}

// New validates actions and builds a registry from them.
// Returns ValidationErrors listing every problem found.
func New(actions []Action) (*Registry, error) {
	var errs ValidationErrors

	sorted := make([]Action, len(actions))
	for i, a := range actions {
		sorted[i] = a.Clone()
	}
	slices.SortStableFunc(sorted, func(a, b Action) int { return int(a.ID) - int(b.ID) })

	r := &Registry{
		actions: make(map[ID]Action, len(sorted)),
		order:   make([]ID, 0, len(sorted)),
	}
	for _, a := range sorted {
		errs = append(errs, validateAction(a)...)
		if _, dup := r.actions[a.ID]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("actions.%d", a.ID),
				Message: fmt.Sprintf("identifier %d is used by more than one action", a.ID),
				Code:    ErrDuplicateID,
			})
			continue
		}
		r.actions[a.ID] = a
		r.order = append(r.order, a.ID)
	}

	idx, indexErrs := BuildIndex(r.list())
	errs = append(errs, indexErrs...)
	if len(errs) > 0 {
		return nil, errs
	}
	r.index = idx
	return r, nil
}

func (r *Registry) list() []Action {
	out := make([]Action, len(r.order))
	for i, id := range r.order {
		out[i] = r.actions[id]
	}
	return out
}

// Get returns a copy of the record for id.
func (r *Registry) Get(id ID) (Action, bool) {
	a, ok := r.actions[id]
	if !ok {
		return Action{}, false
	}
	return a.Clone(), true
}

// All returns copies of every record in ascending ID order.
func (r *Registry) All() []Action {
	out := r.list()
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.order)
}

// MaxID returns the largest canonical identifier, or 0 for an empty registry.
func (r *Registry) MaxID() ID {
	if len(r.order) == 0 {
		return 0
	}
	return r.order[len(r.order)-1]
}

// Index returns the resolver index.
func (r *Registry) Index() *Index {
	return r.index
}

var defaultRegistry = sync.OnceValues(Embedded)

// Default returns the process-wide registry built from the embedded
// catalogue. It panics if the embedded catalogue is invalid.
func Default() *Registry {
	r, err := defaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("registry: embedded catalogue: %v", err))
	}
	return r
}
