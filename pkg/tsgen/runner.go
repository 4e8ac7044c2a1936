package tsgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand is the conventional name of the JSON-Schema-to-TypeScript
// generator from the json-schema-to-typescript npm package.
const DefaultCommand = "json2ts"

// ErrCommandNotFound reports that the external generator is not resolvable on
// the search path.
var ErrCommandNotFound = errors.New("tsgen: generator command not found")

// LookupCommand resolves the generator binary on PATH, falling back to
// DefaultCommand when name is blank. Callers run this before any discovery or
// synthesis work so a missing tool fails the run immediately.
func LookupCommand(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCommand
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q (install instructions: https://www.npmjs.com/package/json-schema-to-typescript)", ErrCommandNotFound, name)
	}
	return path, nil
}

// RunnerOption customises the runner configuration.
type RunnerOption func(*Runner)

// WithBanner sets the banner comment configuration.
func WithBanner(banner Banner) RunnerOption {
	return func(r *Runner) {
		r.banner = banner
	}
}

// Runner invokes the external generator as a blocking subprocess. Failures are
// fatal and never retried.
type Runner struct {
	command string
	banner  Banner
}

// NewRunner constructs a Runner for a resolved generator command.
func NewRunner(command string, options ...RunnerOption) *Runner {
	r := &Runner{command: command}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run executes the generator against schemaPath, writing TypeScript interface
// declarations to outputPath with the banner comment prepended. A non-zero
// exit propagates with the process stderr attached.
func (r *Runner) Run(ctx context.Context, schemaPath, outputPath string) error {
	if r.command == "" {
		return errors.New("tsgen: generator command is required")
	}
	if schemaPath == "" || outputPath == "" {
		return errors.New("tsgen: schema and output paths are required")
	}

	banner, err := r.banner.Render()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, r.command,
		"-i", schemaPath,
		"-o", outputPath,
		"--bannerComment", banner,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("tsgen: run %s: %w: %s", r.command, err, detail)
		}
		return fmt.Errorf("tsgen: run %s: %w", r.command, err)
	}
	return nil
}
