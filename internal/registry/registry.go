package registry

import (
	"fmt"
	"sort"
)

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node definitions for a single application instance.
type Registry struct {
	definitions map[string]*NodeDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]*NodeDefinition),
	}
}

// NewWithModules creates a registry and registers every given module into it.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// RegisterNode adds a node definition. Registering the same idname twice is a
// programmer error and panics.
func (r *Registry) RegisterNode(def *NodeDefinition) {
	if def == nil || def.IDName == "" {
		panic("registry: node definition must have an idname")
	}
	if _, exists := r.definitions[def.IDName]; exists {
		panic(fmt.Sprintf("registry: node kind %q registered twice", def.IDName))
	}
	r.definitions[def.IDName] = def
}

// Node returns the definition registered for idname.
func (r *Registry) Node(idname string) (*NodeDefinition, bool) {
	def, ok := r.definitions[idname]
	return def, ok
}

// IDNames returns every registered idname in sorted order.
func (r *Registry) IDNames() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered node kinds.
func (r *Registry) Len() int {
	return len(r.definitions)
}
