package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNameCollision reports two distinct definitions exposed under the same
// name. Schema definitions are keyed by name, so a collision would silently
// drop one of the models; discovery fails instead.
var ErrNameCollision = errors.New("model: definition name collision")

// Discover walks the package tree rooted at root and returns every reachable
// definition exactly once: root-level definitions first, then each qualifying
// subpackage depth-first in registration order.
//
// A definition or package whose exposed name starts with an underscore is
// private and skipped. A subpackage only qualifies when its full name starts
// with "<root>." — mounted foreign namespaces stay out of the result. Packages
// and definitions reachable through multiple paths are deduplicated by
// identity; distinct definitions sharing a name are a fatal collision.
func Discover(root *Package) ([]*Definition, error) {
	if root == nil {
		return nil, errors.New("model: root package is required")
	}

	w := walker{
		prefix:  root.name + ".",
		visited: make(map[*Package]struct{}),
		seen:    make(map[*Definition]struct{}),
		byName:  make(map[string]*Definition),
	}
	if err := w.walk(root); err != nil {
		return nil, err
	}
	return w.out, nil
}

type walker struct {
	prefix  string
	visited map[*Package]struct{}
	seen    map[*Definition]struct{}
	byName  map[string]*Definition
	out     []*Definition
}

func (w *walker) walk(p *Package) error {
	if _, ok := w.visited[p]; ok {
		return nil
	}
	w.visited[p] = struct{}{}

	for _, def := range p.defs {
		if isPrivate(def.name) {
			continue
		}
		if _, ok := w.seen[def]; ok {
			continue
		}
		if prev, ok := w.byName[def.name]; ok && prev != def {
			return fmt.Errorf("%w: %q registered more than once", ErrNameCollision, def.name)
		}
		w.seen[def] = struct{}{}
		w.byName[def.name] = def
		w.out = append(w.out, def)
	}

	for _, sub := range p.subs {
		if sub == nil || isPrivate(leafName(sub.name)) {
			continue
		}
		if !strings.HasPrefix(sub.name, w.prefix) {
			continue
		}
		if err := w.walk(sub); err != nil {
			return err
		}
	}
	return nil
}

func isPrivate(name string) bool {
	return strings.HasPrefix(name, "_")
}

func leafName(qualified string) string {
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}
