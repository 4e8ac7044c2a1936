// Package model defines the registration surface for schema-describable
// record types. Callers build a Package tree mirroring their namespace layout,
// register struct prototypes under exposed names, and hand the root to
// Discover, which flattens the tree into the ordered definition list the
// synthesizer consumes. Registration replaces runtime reflection over module
// members: the caller states exactly which types participate, and the walk
// only enforces privacy, prefix scoping, and name uniqueness.
package model
