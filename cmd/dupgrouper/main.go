package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/debug"
	pipelineerrors "github.com/standardbeagle/dupgrouper/internal/errors"
	"github.com/standardbeagle/dupgrouper/internal/ingest"
	"github.com/standardbeagle/dupgrouper/internal/layers"
	"github.com/standardbeagle/dupgrouper/internal/version"
)

// exitValidation and exitInternal are the process exit codes callers of
// this binary can rely on to distinguish a malformed input document from a
// pipeline-internal failure.
const (
	exitValidation = 2
	exitInternal   = 1
)

// loadConfigWithOverrides layers CLI flags over the environment-sourced
// Config, mirroring the precedence order the teacher's own
// loadConfigWithOverrides applies to its KDL config plus flags.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg := config.Load()

	if c.IsSet("structural-threshold") {
		cfg.StructuralThreshold = c.Float64("structural-threshold")
	}
	if c.IsSet("semantic-threshold") {
		cfg.SemanticThreshold = c.Float64("semantic-threshold")
	}
	if c.IsSet("min-group-quality") {
		cfg.MinGroupQuality = c.Float64("min-group-quality")
	}
	if c.IsSet("max-parallelism") {
		cfg.MaxParallelism = c.Int("max-parallelism")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if cfg.Debug {
		debug.SetEnabled(true)
	}

	var doc ingest.Document
	decoder := json.NewDecoder(os.Stdin)
	if err := decoder.Decode(&doc); err != nil {
		return pipelineerrors.NewValidationError("input", "", fmt.Errorf("malformed JSON input document: %w", err))
	}

	if err := ingest.Validate(doc, cfg); err != nil {
		return err
	}
	blocks := ingest.BuildBlocks(doc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch := layers.NewOrchestrator(cfg)
	groups := orch.Run(ctx, blocks)

	output := ingest.BuildOutput(blocks, groups)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return pipelineerrors.NewInternalError("output-encode", err)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:    "dupgrouper",
		Usage:   "multi-layer duplicate code pattern grouping engine",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "structural-threshold",
				Usage: "minimum structural similarity to cluster a pair in layer 2 (overrides STRUCTURAL_THRESHOLD)",
			},
			&cli.Float64Flag{
				Name:  "semantic-threshold",
				Usage: "minimum weighted Jaccard similarity to cluster a pair in layer 3 (overrides SEMANTIC_SIMILARITY_THRESHOLD)",
			},
			&cli.Float64Flag{
				Name:  "min-group-quality",
				Usage: "minimum composite quality score for the quality gate to accept a group (overrides MIN_GROUP_QUALITY)",
			},
			&cli.IntFlag{
				Name:  "max-parallelism",
				Usage: "bound on layer 2 partition concurrency, 0 for auto-detect (overrides MAX_PARALLELISM)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging to stderr (overrides PIPELINE_DEBUG)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "dupgrouper: %v\n", err)

		var verr *pipelineerrors.ValidationError
		if errors.As(err, &verr) {
			os.Exit(exitValidation)
		}
		os.Exit(exitInternal)
	}
}
