package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Document wraps the synthesized schema payload as a parsed JSON object so
// definitions from other sources can be merged before serialization.
type Document struct {
	root map[string]any
}

// NewDocument parses a raw schema payload into a Document.
func NewDocument(raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("schema: raw document is empty")
	}
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// Definitions returns the document's definitions map, or nil when absent.
func (d *Document) Definitions() map[string]any {
	defs, _ := d.root["$defs"].(map[string]any)
	return defs
}

// MergeDefinitions inserts raw schema objects into the definitions map. A name
// already present in the document is an error — silently overwriting a model
// definition would corrupt the generated output.
func (d *Document) MergeDefinitions(extra map[string]json.RawMessage) error {
	if len(extra) == 0 {
		return nil
	}

	defs, ok := d.root["$defs"].(map[string]any)
	if !ok {
		defs = make(map[string]any, len(extra))
		d.root["$defs"] = defs
	}

	for name, raw := range extra {
		if _, exists := defs[name]; exists {
			return fmt.Errorf("schema: definition %q already present", name)
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("schema: definition %q: %w", name, err)
		}
		defs[name] = value
	}
	return nil
}

// MarshalIndent serializes the document with two-space indentation.
func (d *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d.root, "", "  ")
}

// WriteFile serializes the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("schema: write document: %w", err)
	}
	return nil
}
