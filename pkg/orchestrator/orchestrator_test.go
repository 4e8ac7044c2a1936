package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goliatone/go-model2ts/pkg/model"
	"github.com/goliatone/go-model2ts/pkg/orchestrator"
	"github.com/goliatone/go-model2ts/pkg/tsgen"
)

type foo struct {
	A int `json:"a"`
}

type bar struct {
	B string `json:"b"`
}

// writeStubGenerator creates a shell script that mimics json2ts: it copies the
// input schema aside for assertions and emits a fixed interface listing that
// includes the container block.
func writeStubGenerator(t *testing.T, dir string) string {
	t.Helper()

	script := fmt.Sprintf(`#!/bin/sh
cp "$2" %q
printf '%%s\n' "$6" > "$4"
cat >> "$4" <<'EOF'
export interface Foo {
  a: number;
}
export interface Bar {
  b: string;
  [k: string]: unknown;
}
export interface _Master_ {
  Foo: Foo;
  Bar: Bar;
}
EOF
`, filepath.Join(dir, "schema-copy.json"))

	stub := filepath.Join(dir, "stub-json2ts")
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return stub
}

func twoModelRoot(t *testing.T) *model.Package {
	t.Helper()

	root := model.New("api")
	root.MustDefine("Foo", &foo{})
	root.MustDefine("Bar", &bar{}, model.WithExtra(model.ExtraAllow))
	return root
}

func TestGenerate_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sh-based fixture")
	}

	dir := t.TempDir()
	stub := writeStubGenerator(t, dir)
	outputPath := filepath.Join(dir, "models.ts")

	gen := orchestrator.New()
	err := gen.Generate(context.Background(), orchestrator.Request{
		Root:         twoModelRoot(t),
		OutputPath:   outputPath,
		GeneratorCmd: stub,
		Banner:       tsgen.Banner{Template: "// generated"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(out)

	if strings.Contains(text, "_Master_") {
		t.Fatalf("container block survived:\n%s", text)
	}
	for _, keep := range []string{"// generated", "export interface Foo {", "export interface Bar {"} {
		if !strings.Contains(text, keep) {
			t.Fatalf("output missing %q:\n%s", keep, text)
		}
	}

	// The schema handed to the generator carries both models and the strict
	// container.
	raw, err := os.ReadFile(filepath.Join(dir, "schema-copy.json"))
	if err != nil {
		t.Fatalf("read schema copy: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	if doc["title"] != "_Master_" {
		t.Fatalf("schema title = %v", doc["title"])
	}
	defs := doc["$defs"].(map[string]any)
	if _, ok := defs["Foo"]; !ok {
		t.Fatal("Foo definition missing from schema")
	}
	if _, ok := defs["Bar"]; !ok {
		t.Fatal("Bar definition missing from schema")
	}
}

func TestGenerate_MissingToolFailsBeforeWork(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "models.ts")

	gen := orchestrator.New()
	err := gen.Generate(context.Background(), orchestrator.Request{
		Root:         twoModelRoot(t),
		OutputPath:   outputPath,
		GeneratorCmd: "model2ts-definitely-missing-tool",
	})
	if !errors.Is(err, tsgen.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}

	if _, statErr := os.Stat(outputPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("output path was touched before the tool check")
	}
}

func TestGenerate_ContainerMissingFromOutputFails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sh-based fixture")
	}

	dir := t.TempDir()
	stub := filepath.Join(dir, "stub-json2ts")
	script := `#!/bin/sh
printf 'export interface Foo {\n  a: number;\n}\n' > "$4"
`
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	gen := orchestrator.New()
	err := gen.Generate(context.Background(), orchestrator.Request{
		Root:         twoModelRoot(t),
		OutputPath:   filepath.Join(dir, "models.ts"),
		GeneratorCmd: stub,
	})
	if !errors.Is(err, tsgen.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestGenerate_ExtraDefinitionsOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sh-based fixture")
	}

	dir := t.TempDir()
	stub := writeStubGenerator(t, dir)

	extra := func(context.Context) (map[string]json.RawMessage, error) {
		return map[string]json.RawMessage{
			"Widget": json.RawMessage(`{"type":"object"}`),
		}, nil
	}

	gen := orchestrator.New(orchestrator.WithExtraDefinitions(extra))
	err := gen.Generate(context.Background(), orchestrator.Request{
		OutputPath:   filepath.Join(dir, "models.ts"),
		GeneratorCmd: stub,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "schema-copy.json"))
	if err != nil {
		t.Fatalf("read schema copy: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	defs := doc["$defs"].(map[string]any)
	if _, ok := defs["Widget"]; !ok {
		t.Fatal("Widget definition missing from schema")
	}
}

func TestGenerate_Validation(t *testing.T) {
	gen := orchestrator.New()

	if err := gen.Generate(context.Background(), orchestrator.Request{Root: twoModelRoot(t)}); err == nil {
		t.Fatal("expected error for missing output path")
	}

	err := gen.Generate(context.Background(), orchestrator.Request{OutputPath: "out.ts", GeneratorCmd: "sh"})
	if err == nil {
		t.Fatal("expected error when neither root nor definitions are supplied")
	}
}
