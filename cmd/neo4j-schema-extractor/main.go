package main

import (
	"context"
	"fmt"
	"os"

	"github.com/neo4j/neo4j-schema-extractor/internal/cli"
	"github.com/neo4j/neo4j-schema-extractor/internal/config"
	"github.com/neo4j/neo4j-schema-extractor/internal/extractor"
	"github.com/neo4j/neo4j-schema-extractor/internal/logger"
	"github.com/neo4j/neo4j-schema-extractor/internal/snapshot"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "development"

func main() {
	if err := cli.NewRootCommand(Version, run).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, overrides *config.CLIOverrides) error {
	cfg, err := config.LoadConfig(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// logs go to stderr so stdout stays usable for --output -
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.SetDefault()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	schema, err := extractor.Run(ctx, cfg, extractor.Open, extractor.WithLogger(log.Logger))
	if err != nil {
		log.Error("schema extraction failed", "error", err)
		return err
	}

	if cfg.OutputPath == config.StdoutOutputPath {
		return snapshot.Write(cmd.OutOrStdout(), schema, cfg.OutputFormat)
	}
	if err := snapshot.WriteFile(cfg.OutputPath, schema, cfg.OutputFormat); err != nil {
		log.Error("failed to write schema", "path", cfg.OutputPath, "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Schema extraction completed. Results saved to '%s'.\n", cfg.OutputPath)
	return nil
}
