package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ExtraPolicy controls how a model treats fields that are not part of its
// declared shape when the schema is rendered.
type ExtraPolicy string

const (
	// ExtraForbid rejects unknown fields.
	ExtraForbid ExtraPolicy = "forbid"
	// ExtraIgnore drops unknown fields silently. This is the default.
	ExtraIgnore ExtraPolicy = "ignore"
	// ExtraAllow keeps unknown fields; the rendered schema does not restrict
	// additional properties.
	ExtraAllow ExtraPolicy = "allow"
)

// Definition describes one registered model: an exposed name, a prototype
// struct the schema reflector inspects, and the extra-field policy.
type Definition struct {
	name      string
	prototype any
	extra     ExtraPolicy
}

// DefineOption customises a Definition at registration time.
type DefineOption func(*Definition)

// WithExtra overrides the extra-field policy for a definition.
func WithExtra(policy ExtraPolicy) DefineOption {
	return func(d *Definition) {
		d.extra = policy
	}
}

// Name returns the exposed name used for the schema definition and the
// generated interface.
func (d *Definition) Name() string {
	return d.name
}

// Prototype returns the struct value the definition was registered with.
func (d *Definition) Prototype() any {
	return d.prototype
}

// Extra returns the extra-field policy.
func (d *Definition) Extra() ExtraPolicy {
	return d.extra
}

func newDefinition(name string, prototype any, options ...DefineOption) (*Definition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("model: definition name is required")
	}
	if prototype == nil {
		return nil, fmt.Errorf("model: definition %q: prototype is required", name)
	}

	t := reflect.TypeOf(prototype)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: definition %q: prototype must be a struct, got %s", name, t.Kind())
	}

	def := &Definition{
		name:      name,
		prototype: prototype,
		extra:     ExtraIgnore,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(def)
	}
	return def, nil
}
