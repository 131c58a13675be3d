package command

import (
	"fmt"
	"sort"
	"strings"
)

// Builder constructs a transform from operator-supplied arguments.
type Builder func(args []string) (Transform, error)

// Registry maps transform names to builders.
type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register makes a transform available under name. Re-registering a name
// replaces the previous builder.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Build constructs the named transform.
func (r *Registry) Build(name string, args []string) (Transform, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return b(args)
}

// Names returns the registered transform names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
