// Package schema declares the shape of every stored record. The registry
// is written out by hand so the published shapes only change when the
// declarations here do.
package schema

import (
	"sort"
)

// Field describes one attribute of a record
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Required    bool     `json:"required" yaml:"required"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Shape is the declared layout of a record type
type Shape struct {
	Name        string  `json:"name" yaml:"name"`
	Collection  string  `json:"collection,omitempty" yaml:"collection,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Registry maps entity names to their shapes
type Registry struct {
	shapes map[string]Shape
}

// NewRegistry builds a registry from the given shapes. Later shapes
// replace earlier ones with the same name.
func NewRegistry(shapes ...Shape) *Registry {
	r := &Registry{shapes: make(map[string]Shape, len(shapes))}
	for _, s := range shapes {
		r.shapes[s.Name] = s
	}
	return r
}

// Lookup returns the shape registered under name
func (r *Registry) Lookup(name string) (Shape, bool) {
	s, ok := r.shapes[name]
	return s, ok
}

// Names returns the registered entity names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.shapes))
	for name := range r.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every shape keyed by entity name
func (r *Registry) All() map[string]Shape {
	out := make(map[string]Shape, len(r.shapes))
	for name, s := range r.shapes {
		out[name] = s
	}
	return out
}

func required(name, typ, desc string, constraints ...string) Field {
	return Field{Name: name, Type: typ, Required: true, Constraints: constraints, Description: desc}
}

func optional(name, typ, desc string, constraints ...string) Field {
	return Field{Name: name, Type: typ, Constraints: constraints, Description: desc}
}

func withDefault(f Field, value any) Field {
	f.Default = value
	return f
}
