// Package schema synthesizes one JSON Schema document from an ordered list of
// model definitions. Each model reflects into its own named definition, a
// synthetic container references them all as required properties, and a
// cleanup pass strips property-title noise and enforces strictness per model
// policy. The container forces single-pass, duplicate-free generation and is
// excised from the generated output downstream.
package schema
