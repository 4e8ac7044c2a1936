package model2ts

import (
	"context"

	"github.com/goliatone/go-model2ts/pkg/model"
	"github.com/goliatone/go-model2ts/pkg/orchestrator"
	"github.com/goliatone/go-model2ts/pkg/tsgen"
)

// ExtraPolicy re-exports the model extra-field policy for convenience.
type ExtraPolicy = model.ExtraPolicy

// Extra-field policies, re-exported via the root package.
const (
	ExtraForbid = model.ExtraForbid
	ExtraIgnore = model.ExtraIgnore
	ExtraAllow  = model.ExtraAllow
)

// Banner configures the generated-file header comment.
type Banner = tsgen.Banner

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that need custom wiring.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate discovers every model registered under root and writes the
// TypeScript interface definitions to outputPath using the default generator
// command. It is the simplest entry point for callers that registered their
// models in a package tree.
func Generate(ctx context.Context, root *model.Package, outputPath string, options ...orchestrator.Option) error {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Root:       root,
		OutputPath: outputPath,
	})
}

// GenerateFromDefinitions bypasses discovery when the caller already holds the
// ordered model set.
func GenerateFromDefinitions(ctx context.Context, defs []*model.Definition, outputPath string, options ...orchestrator.Option) error {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Definitions: defs,
		OutputPath:  outputPath,
	})
}
