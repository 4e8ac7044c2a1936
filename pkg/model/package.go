package model

import (
	"fmt"
	"strings"
)

// Package is a named namespace holding model definitions and nested packages.
// Names are dotted paths; a child created through Subpackage inherits its
// parent's name as a prefix, while Mount attaches an independently named
// package (which discovery only descends into when the prefix qualifies).
type Package struct {
	name string
	defs []*Definition
	subs []*Package
}

// New creates an empty package with the given qualified name. It panics on an
// empty name to surface wiring mistakes early.
func New(name string) *Package {
	name = strings.TrimSpace(name)
	if name == "" {
		panic("model: package name is required")
	}
	return &Package{name: name}
}

// Name returns the package's qualified name.
func (p *Package) Name() string {
	return p.name
}

// Define registers a model under this package. The prototype must be a struct
// or pointer to struct; the reflector inspects its fields when the schema is
// synthesized.
func (p *Package) Define(name string, prototype any, options ...DefineOption) (*Definition, error) {
	def, err := newDefinition(name, prototype, options...)
	if err != nil {
		return nil, err
	}
	p.defs = append(p.defs, def)
	return def, nil
}

// MustDefine panics on registration failure. Useful for init-time wiring.
func (p *Package) MustDefine(name string, prototype any, options ...DefineOption) *Definition {
	def, err := p.Define(name, prototype, options...)
	if err != nil {
		panic(err)
	}
	return def
}

// Subpackage creates and attaches a child package named "<parent>.<name>".
func (p *Package) Subpackage(name string) *Package {
	name = strings.TrimSpace(name)
	if name == "" {
		panic("model: subpackage name is required")
	}
	sub := &Package{name: fmt.Sprintf("%s.%s", p.name, name)}
	p.subs = append(p.subs, sub)
	return sub
}

// Mount attaches an existing package as a child without renaming it. Discovery
// skips mounted packages whose qualified name falls outside the root prefix,
// which keeps re-exported foreign namespaces out of the result.
func (p *Package) Mount(sub *Package) {
	if sub == nil {
		return
	}
	p.subs = append(p.subs, sub)
}

// Definitions returns a copy of the package's direct definitions.
func (p *Package) Definitions() []*Definition {
	out := make([]*Definition, len(p.defs))
	copy(out, p.defs)
	return out
}

// Packages returns a copy of the direct child packages.
func (p *Package) Packages() []*Package {
	out := make([]*Package, len(p.subs))
	copy(out, p.subs)
	return out
}
