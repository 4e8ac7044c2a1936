// Package orchestrator wires the discover → synthesize → generate → filter
// pipeline, providing dependency-injection friendly helpers for consumers
// that prefer a single entry point.
package orchestrator
