// Package cli builds the command line surface of neo4j-schema-extractor.
package cli

import (
	"fmt"

	"github.com/neo4j/neo4j-schema-extractor/internal/config"
	"github.com/spf13/cobra"
)

const appName = "neo4j-schema-extractor"

const longHelp = `neo4j-schema-extractor connects to a Neo4j database and writes a snapshot
of its schema (labels, relationship types, property keys, sample nodes,
relationship shapes, indexes, constraints, APOC meta graph and relationship
cardinalities) to a single JSON document.

Required Environment Variables:
  NEO4J_URI                 Neo4j database URI
  NEO4J_USERNAME            Database username
  NEO4J_PASSWORD            Database password

Optional Environment Variables:
  NEO4J_DATABASE            Database name (default: neo4j)
  NEO4J_LOG_LEVEL           Log level (default: info)
  NEO4J_LOG_FORMAT          Log format, text or json (default: text)
  NEO4J_SCHEMA_SAMPLE_SIZE  Sample nodes per label (default: 10)
  NEO4J_SCHEMA_OUTPUT       Output file, - for stdout (default: neo4j_schema.json)
  NEO4J_SCHEMA_FORMAT       Output format, json or yaml (default: json)
  NEO4J_SCHEMA_TIMEOUT      Bound on the whole run, e.g. 2m (default: none)

CLI flags take precedence over environment variables.`

const example = `  # Using environment variables
  NEO4J_URI=bolt://localhost:7687 NEO4J_USERNAME=neo4j NEO4J_PASSWORD=password neo4j-schema-extractor

  # Using CLI flags
  neo4j-schema-extractor --neo4j-uri bolt://localhost:7687 --neo4j-username neo4j --neo4j-password password --output schema.json`

// RunFunc is invoked by the root command with the flag values the user set.
type RunFunc func(cmd *cobra.Command, overrides *config.CLIOverrides) error

// NewRootCommand returns the root command. Flags are kept as strings and
// handed to run as CLI overrides; parsing and validation happen in config.LoadConfig.
func NewRootCommand(version string, run RunFunc) *cobra.Command {
	overrides := &config.CLIOverrides{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Extract the schema of a Neo4j database",
		Long:          longHelp,
		Example:       example,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if run == nil {
				return fmt.Errorf("no run function configured")
			}
			return run(cmd, overrides)
		},
	}
	cmd.SetVersionTemplate(appName + " version: {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&overrides.URI, "neo4j-uri", "", "Neo4j connection URI (overrides NEO4J_URI)")
	flags.StringVar(&overrides.Username, "neo4j-username", "", "Database username (overrides NEO4J_USERNAME)")
	flags.StringVar(&overrides.Password, "neo4j-password", "", "Database password (overrides NEO4J_PASSWORD)")
	flags.StringVar(&overrides.Database, "neo4j-database", "", "Database name (overrides NEO4J_DATABASE)")
	flags.StringVar(&overrides.SampleSize, "sample-size", "", "Sample nodes per label (overrides NEO4J_SCHEMA_SAMPLE_SIZE)")
	flags.StringVarP(&overrides.Output, "output", "o", "", "Output file, - for stdout (overrides NEO4J_SCHEMA_OUTPUT)")
	flags.StringVar(&overrides.Format, "format", "", "Output format: json or yaml (overrides NEO4J_SCHEMA_FORMAT)")
	flags.StringVar(&overrides.Timeout, "timeout", "", "Bound on the whole run, e.g. 2m (overrides NEO4J_SCHEMA_TIMEOUT)")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "Log level (overrides NEO4J_LOG_LEVEL)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appName, version)
		},
	})

	return cmd
}
