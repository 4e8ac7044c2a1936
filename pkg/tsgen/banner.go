package tsgen

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// bannerTemplate is the comment block prepended to every generated file. The
// layout is fixed; only the source and tool labels vary per run.
const bannerTemplate = `/* tslint:disable */
/**
/* This file was automatically generated from {{ models }} by running {{ tool }}.
/* Do not modify it by hand - just update the source models and then re-run the script
*/`

const (
	defaultModelsLabel = "model definitions"
	defaultToolLabel   = "model2ts"
)

// Banner configures the generated-file header comment. Zero values fall back
// to the library defaults; Template, when set, replaces the whole layout and
// receives the same context.
type Banner struct {
	Models   string
	Tool     string
	Template string
}

// Render produces the banner text handed to the external generator.
func (b Banner) Render() (string, error) {
	source := b.Template
	if source == "" {
		source = bannerTemplate
	}

	tpl, err := pongo2.FromString(source)
	if err != nil {
		return "", fmt.Errorf("tsgen: parse banner template: %w", err)
	}

	models := b.Models
	if models == "" {
		models = defaultModelsLabel
	}
	tool := b.Tool
	if tool == "" {
		tool = defaultToolLabel
	}

	out, err := tpl.Execute(pongo2.Context{"models": models, "tool": tool})
	if err != nil {
		return "", fmt.Errorf("tsgen: render banner: %w", err)
	}
	return out, nil
}
