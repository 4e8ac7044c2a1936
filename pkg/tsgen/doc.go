// Package tsgen drives the external JSON-Schema-to-TypeScript generator:
// resolving the command up front, rendering the banner comment, running the
// process, and excising the synthetic container's interface block from the
// generated output by structured block parsing.
package tsgen
