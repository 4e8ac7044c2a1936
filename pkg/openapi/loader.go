package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoaderOption customises the loader configuration.
type LoaderOption func(*Loader)

// WithFS supplies the filesystem used for SourceKindFS sources.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// Loader extracts component schemas from an OpenAPI document so they can join
// the synthesized definitions map alongside registered models.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a Loader applying any provided options.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Definitions loads the document behind src and returns its component schemas
// as raw JSON definitions keyed by component name. Internal references are
// rewritten from #/components/schemas/ to #/$defs/ so the extracted objects
// stay resolvable inside the synthesized document.
func (l *Loader) Definitions(ctx context.Context, src Source) (map[string]json.RawMessage, error) {
	if src == nil {
		return nil, errors.New("openapi: source is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := l.load(ctx, src)
	if err != nil {
		return nil, err
	}

	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	out := make(map[string]json.RawMessage, len(doc.Components.Schemas))
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		raw, err := json.Marshal(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal component %q: %w", name, err)
		}
		out[name] = rewriteComponentRefs(raw)
	}
	return out, nil
}

func (l *Loader) load(ctx context.Context, src Source) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}

	switch src.Kind() {
	case SourceKindFile:
		doc, err := loader.LoadFromFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: load %q: %w", src.Location(), err)
		}
		return doc, nil
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi: fs source requires a filesystem")
		}
		data, err := fs.ReadFile(l.fs, src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: read %q: %w", src.Location(), err)
		}
		doc, err := loader.LoadFromData(data)
		if err != nil {
			return nil, fmt.Errorf("openapi: load %q: %w", src.Location(), err)
		}
		return doc, nil
	case SourceKindURL:
		u, err := url.Parse(src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: parse url %q: %w", src.Location(), err)
		}
		doc, err := loader.LoadFromURI(u)
		if err != nil {
			return nil, fmt.Errorf("openapi: load %q: %w", src.Location(), err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("openapi: unsupported source kind %q", src.Kind())
	}
}

func rewriteComponentRefs(raw []byte) json.RawMessage {
	rewritten := strings.ReplaceAll(string(raw), `"#/components/schemas/`, `"#/$defs/`)
	return json.RawMessage(rewritten)
}
