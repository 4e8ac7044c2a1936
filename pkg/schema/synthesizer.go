package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-model2ts/pkg/model"
)

// DefaultContainerName names the synthetic container model. The container
// exists only to force a single schema document with one definition per model;
// its generated interface block is removed from the final output.
const DefaultContainerName = "_Master_"

// Option customises the synthesizer configuration.
type Option func(*Synthesizer)

// WithContainerName overrides the synthetic container's name.
func WithContainerName(name string) Option {
	return func(s *Synthesizer) {
		if name != "" {
			s.container = name
		}
	}
}

// WithReflector injects a pre-configured jsonschema reflector. The synthesizer
// still layers its own type naming on top so registered names win over Go type
// names.
func WithReflector(r *jsonschema.Reflector) Option {
	return func(s *Synthesizer) {
		s.reflector = r
	}
}

// Synthesizer renders an ordered definition list into a single JSON Schema
// document. Cleanup configuration is per-instance state passed explicitly
// through Synthesize; nothing on the model definitions is mutated.
type Synthesizer struct {
	reflector *jsonschema.Reflector
	container string
}

// NewSynthesizer constructs a Synthesizer applying any provided options.
func NewSynthesizer(options ...Option) *Synthesizer {
	s := &Synthesizer{container: DefaultContainerName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.reflector == nil {
		// Permissive by default so only the cleanup pass decides strictness:
		// models that allow extras must keep an unrestricted schema.
		s.reflector = &jsonschema.Reflector{
			Anonymous:                 true,
			AllowAdditionalProperties: true,
		}
	}
	return s
}

// ContainerName returns the name of the synthetic container definition.
func (s *Synthesizer) ContainerName() string {
	return s.container
}

// Synthesize reflects every definition into JSON Schema, merges the results
// under one document rooted at the container, and applies the cleanup pass to
// each discovered model and to the container itself. Extra definitions — raw
// schema objects sourced outside the registry, for example OpenAPI components
// — join the definitions map untouched and become required container
// properties alongside the models. Name collisions between any two definitions
// are an error.
func (s *Synthesizer) Synthesize(defs []*model.Definition, extra map[string]json.RawMessage) (*Document, error) {
	if len(defs) == 0 && len(extra) == 0 {
		return nil, errors.New("schema: no definitions to synthesize")
	}

	reflector, err := s.namedReflector(defs)
	if err != nil {
		return nil, err
	}

	merged := jsonschema.Definitions{}
	for _, def := range defs {
		t := prototypeType(def)
		reflected := reflector.ReflectFromType(t)
		for name, entry := range reflected.Definitions {
			merged[name] = entry
		}
	}

	props := jsonschema.NewProperties()
	required := make([]string, 0, len(defs)+len(extra))
	for _, def := range defs {
		props.Set(def.Name(), &jsonschema.Schema{Ref: "#/$defs/" + def.Name()})
		required = append(required, def.Name())
	}
	for _, name := range sortedKeys(extra) {
		props.Set(name, &jsonschema.Schema{Ref: "#/$defs/" + name})
		required = append(required, name)
	}

	master := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       s.container,
		Type:        "object",
		Properties:  props,
		Required:    required,
		Definitions: merged,
	}

	for _, def := range defs {
		entry, ok := merged[def.Name()]
		if !ok {
			return nil, fmt.Errorf("schema: definition %q missing after reflection", def.Name())
		}
		Clean(entry, def.Extra())
	}
	Clean(master, model.ExtraForbid)

	raw, err := json.Marshal(master)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal document: %w", err)
	}

	doc, err := NewDocument(raw)
	if err != nil {
		return nil, err
	}
	if err := doc.MergeDefinitions(extra); err != nil {
		return nil, err
	}
	return doc, nil
}

// namedReflector copies the configured reflector and layers a Namer that maps
// registered prototypes to their exposed names, falling back to any Namer the
// caller installed. Two registered types resolving to the same name would
// merge silently, so that is rejected here as well.
func (s *Synthesizer) namedReflector(defs []*model.Definition) (*jsonschema.Reflector, error) {
	names := make(map[reflect.Type]string, len(defs))
	byName := make(map[string]reflect.Type, len(defs))
	for _, def := range defs {
		t := prototypeType(def)
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("schema: definition %q: prototype must be a struct, got %s", def.Name(), t.Kind())
		}
		if prev, ok := byName[def.Name()]; ok && prev != t {
			return nil, fmt.Errorf("schema: definition name %q maps to both %s and %s", def.Name(), prev, t)
		}
		names[t] = def.Name()
		byName[def.Name()] = t
	}

	clone := *s.reflector
	fallback := clone.Namer
	clone.Namer = func(t reflect.Type) string {
		if name, ok := names[t]; ok {
			return name
		}
		if fallback != nil {
			return fallback(t)
		}
		return t.Name()
	}
	return &clone, nil
}

func prototypeType(def *model.Definition) reflect.Type {
	t := reflect.TypeOf(def.Prototype())
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
