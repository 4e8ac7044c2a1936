package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-model2ts/pkg/openapi"
	"github.com/goliatone/go-model2ts/pkg/orchestrator"
	"github.com/goliatone/go-model2ts/pkg/tsgen"
	"github.com/goliatone/go-model2ts/pkg/tui"
)

// cliConfig mirrors the optional YAML manifest. Flags win over manifest
// values; the manifest wins over defaults.
type cliConfig struct {
	Output    string `yaml:"output"`
	Generator string `yaml:"generator"`
	Banner    struct {
		Models string `yaml:"models"`
		Tool   string `yaml:"tool"`
	} `yaml:"banner"`
}

func main() {
	source := flag.String("source", "", "OpenAPI document path or URL providing component schemas")
	output := flag.String("output", "", "TypeScript output file (overwritten in place)")
	generator := flag.String("generator", "", "generator command (default json2ts)")
	configPath := flag.String("config", "", "optional YAML manifest")
	yes := flag.Bool("yes", false, "overwrite the output file without prompting")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *output == "" {
		*output = cfg.Output
	}
	if *generator == "" {
		*generator = cfg.Generator
	}

	if *source == "" {
		log.Fatal("a -source OpenAPI document is required")
	}
	if *output == "" {
		log.Fatal("an -output file is required")
	}

	ctx := context.Background()

	if !*yes && fileExists(*output) {
		ok, err := tui.NewDriver().Confirm(ctx, tui.ConfirmConfig{
			Message: fmt.Sprintf("Overwrite %s?", *output),
			Default: false,
		})
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			os.Exit(1)
		}
	}

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	loader := openapi.NewLoader()
	gen := orchestrator.New(orchestrator.WithExtraDefinitions(
		func(ctx context.Context) (map[string]json.RawMessage, error) {
			return loader.Definitions(ctx, src)
		},
	))

	req := orchestrator.Request{
		OutputPath:   *output,
		GeneratorCmd: *generator,
		Banner: tsgen.Banner{
			Models: cfg.Banner.Models,
			Tool:   cfg.Banner.Tool,
		},
	}

	if err := gen.Generate(ctx, req); err != nil {
		log.Fatalf("Failed to generate definitions: %v", err)
	}
	fmt.Printf("Definitions written to %s\n", *output)
}

func loadConfig(path string) (cliConfig, error) {
	var cfg cliConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseSource(raw string) openapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
