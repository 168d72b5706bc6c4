package schema

import (
	"fmt"
	"sort"
)

// Registry is the immutable event catalogue for one communicating pair. It
// owns the event name to validator mapping and offers read-only lookup and
// enumeration; nothing can be added or removed after construction.
type Registry struct {
	validators map[string]PayloadValidator
}

// New builds a Registry from event definitions. The input map is copied, so
// later mutation of it does not leak into the registry. A nil validator is a
// programming error.
func New(defs map[string]PayloadValidator) *Registry {
	validators := make(map[string]PayloadValidator, len(defs))
	for name, v := range defs {
		if v == nil {
			panic(fmt.Sprintf("schema: validator for event %q is nil", name))
		}
		validators[name] = v
	}
	return &Registry{validators: validators}
}

// Validator looks up the validator for an event name. Absence is a normal
// outcome reported through ok, never a failure.
func (r *Registry) Validator(name string) (PayloadValidator, bool) {
	v, ok := r.validators[name]
	return v, ok
}

// Has reports whether the event name is part of the catalogue.
func (r *Registry) Has(name string) bool {
	_, ok := r.validators[name]
	return ok
}

// Events returns every catalogued event name in lexical order.
func (r *Registry) Events() []string {
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
