package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-model2ts/pkg/model"
	"github.com/goliatone/go-model2ts/pkg/schema"
	"github.com/goliatone/go-model2ts/pkg/tsgen"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithSynthesizer injects a custom schema synthesizer.
func WithSynthesizer(s *schema.Synthesizer) Option {
	return func(o *Orchestrator) {
		o.synthesizer = s
	}
}

// WithExtraDefinitions registers a hook that supplies raw schema definitions
// from outside the model registry (for example OpenAPI components). The hook
// runs once per Generate call, after discovery.
func WithExtraDefinitions(fn ExtraDefinitionsFunc) Option {
	return func(o *Orchestrator) {
		o.extra = fn
	}
}

// WithRunnerFactory overrides how generator runners are built, letting tests
// wrap or replace the external process invocation.
func WithRunnerFactory(fn RunnerFactory) Option {
	return func(o *Orchestrator) {
		o.newRunner = fn
	}
}

// ExtraDefinitionsFunc supplies additional named schema definitions per run.
type ExtraDefinitionsFunc func(ctx context.Context) (map[string]json.RawMessage, error)

// RunnerFactory builds the external generator runner for a resolved command.
type RunnerFactory func(command string, banner tsgen.Banner) *tsgen.Runner

// Orchestrator coordinates the full pipeline from registered models to a
// filtered TypeScript definitions file. It applies sensible defaults while
// remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	synthesizer *schema.Synthesizer
	newRunner   RunnerFactory
	extra       ExtraDefinitionsFunc
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.synthesizer == nil {
		o.synthesizer = schema.NewSynthesizer()
	}
	if o.newRunner == nil {
		o.newRunner = func(command string, banner tsgen.Banner) *tsgen.Runner {
			return tsgen.NewRunner(command, tsgen.WithBanner(banner))
		}
	}
	return o
}

// Request describes the inputs required to generate TypeScript definitions.
type Request struct {
	// Root is the package tree to discover models from. Optional when
	// Definitions is supplied.
	Root *model.Package

	// Definitions bypasses discovery when the caller already holds the
	// ordered model set.
	Definitions []*model.Definition

	// OutputPath is the TypeScript file to write. Overwritten in place.
	OutputPath string

	// GeneratorCmd names the external generator. Defaults to json2ts.
	GeneratorCmd string

	// Banner configures the header comment prepended to the output.
	Banner tsgen.Banner
}

// Generate executes the discover → synthesize → generate → filter sequence.
// The generator command is resolved before any other work so a missing tool
// fails the run without touching the filesystem. The temporary schema
// directory is removed on every path.
func (o *Orchestrator) Generate(ctx context.Context, req Request) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.OutputPath == "" {
		return errors.New("orchestrator: output path is required")
	}

	command, err := tsgen.LookupCommand(req.GeneratorCmd)
	if err != nil {
		return err
	}

	defs, err := o.resolveDefinitions(req)
	if err != nil {
		return err
	}

	var extra map[string]json.RawMessage
	if o.extra != nil {
		extra, err = o.extra(ctx)
		if err != nil {
			return fmt.Errorf("orchestrator: load extra definitions: %w", err)
		}
	}

	doc, err := o.synthesizer.Synthesize(defs, extra)
	if err != nil {
		return fmt.Errorf("orchestrator: synthesize schema: %w", err)
	}

	dir, err := os.MkdirTemp("", "model2ts-*")
	if err != nil {
		return fmt.Errorf("orchestrator: create schema dir: %w", err)
	}
	defer os.RemoveAll(dir)

	schemaPath := filepath.Join(dir, "schema.json")
	if err := doc.WriteFile(schemaPath); err != nil {
		return fmt.Errorf("orchestrator: write schema: %w", err)
	}

	runner := o.newRunner(command, req.Banner)
	if err := runner.Run(ctx, schemaPath, req.OutputPath); err != nil {
		return err
	}

	return o.removeContainer(req.OutputPath)
}

func (o *Orchestrator) resolveDefinitions(req Request) ([]*model.Definition, error) {
	if len(req.Definitions) > 0 {
		return req.Definitions, nil
	}
	if req.Root == nil {
		if o.extra != nil {
			// OpenAPI-only runs carry no registered models.
			return nil, nil
		}
		return nil, errors.New("orchestrator: root package or definitions are required")
	}
	defs, err := model.Discover(req.Root)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: discover models: %w", err)
	}
	return defs, nil
}

func (o *Orchestrator) removeContainer(outputPath string) error {
	generated, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("orchestrator: read generated output: %w", err)
	}

	filtered, err := tsgen.RemoveInterface(generated, o.synthesizer.ContainerName())
	if err != nil {
		return fmt.Errorf("orchestrator: remove container block: %w", err)
	}

	if err := os.WriteFile(outputPath, filtered, 0o644); err != nil {
		return fmt.Errorf("orchestrator: rewrite output: %w", err)
	}
	return nil
}
