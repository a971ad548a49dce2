package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/neo4j/neo4j-schema-extractor/internal/logger"
	"github.com/neo4j/neo4j-schema-extractor/internal/snapshot"
)

const (
	// DefaultSampleSize is the default number of sample nodes extracted per label
	DefaultSampleSize = 10
	// DefaultOutputPath is the file the snapshot is written to when no output is configured
	DefaultOutputPath = "neo4j_schema.json"
	// StdoutOutputPath writes the snapshot to standard output instead of a file
	StdoutOutputPath = "-"
)

// Config holds the application configuration
type Config struct {
	URI          string
	Username     string
	Password     string
	Database     string
	LogLevel     string
	LogFormat    string
	SampleSize   int             // Maximum number of sample nodes per label
	OutputPath   string          // Destination of the snapshot document, "-" for stdout
	OutputFormat snapshot.Format // Encoding of the snapshot document (json or yaml)
	Timeout      time.Duration   // Bounds the whole extraction run; zero means no timeout
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration is required but was nil")
	}

	if c.URI == "" {
		return fmt.Errorf("Neo4j URI is required but was empty (set NEO4J_URI or --neo4j-uri)")
	}
	if c.Username == "" {
		return fmt.Errorf("Neo4j username is required but was empty (set NEO4J_USERNAME or --neo4j-username)")
	}
	if c.Password == "" {
		return fmt.Errorf("Neo4j password is required but was empty (set NEO4J_PASSWORD or --neo4j-password)")
	}

	if c.SampleSize <= 0 {
		return fmt.Errorf("sample size must be a positive integer, got %d", c.SampleSize)
	}

	// Default to a file in the working directory if not provided
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.OutputFormat == "" {
		c.OutputFormat = snapshot.FormatJSON
	}
	if !slices.Contains(snapshot.ValidFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format '%s', must be one of %v", c.OutputFormat, snapshot.ValidFormats)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout)
	}

	return nil
}

// warningOutput receives configuration warnings; tests replace it
var warningOutput io.Writer = os.Stderr

// CLIOverrides holds optional configuration values from CLI flags
type CLIOverrides struct {
	URI        string
	Username   string
	Password   string
	Database   string
	SampleSize string
	Output     string
	Format     string
	Timeout    string
	LogLevel   string
}

// LoadConfig loads configuration from environment variables, applies CLI overrides, and validates.
// CLI flag values take precedence over environment variables.
// Returns an error if required configuration is missing or invalid.
func LoadConfig(cliOverrides *CLIOverrides) (*Config, error) {
	logLevel := GetEnvWithDefault("NEO4J_LOG_LEVEL", "info")
	logFormat := GetEnvWithDefault("NEO4J_LOG_FORMAT", "text")

	logLevelSource := "NEO4J_LOG_LEVEL"
	if cliOverrides != nil && cliOverrides.LogLevel != "" {
		logLevel = cliOverrides.LogLevel
		logLevelSource = "--log-level"
	}

	// Validate log level and use default if invalid
	if !slices.Contains(logger.ValidLogLevels, logLevel) {
		fmt.Fprintf(warningOutput, "Warning: invalid %s '%s', using default 'info'. Valid values: %v\n", logLevelSource, logLevel, logger.ValidLogLevels)
		logLevel = "info"
	}

	// Validate log format and use default if invalid
	if !slices.Contains(logger.ValidLogFormats, logFormat) {
		fmt.Fprintf(warningOutput, "Warning: invalid NEO4J_LOG_FORMAT '%s', using default 'text'. Valid values: %v\n", logFormat, logger.ValidLogFormats)
		logFormat = "text"
	}

	cfg := &Config{
		URI:          GetEnv("NEO4J_URI"),
		Username:     GetEnv("NEO4J_USERNAME"),
		Password:     GetEnv("NEO4J_PASSWORD"),
		Database:     GetEnvWithDefault("NEO4J_DATABASE", "neo4j"),
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		SampleSize:   ParseInt(GetEnv("NEO4J_SCHEMA_SAMPLE_SIZE"), DefaultSampleSize),
		OutputPath:   GetEnvWithDefault("NEO4J_SCHEMA_OUTPUT", DefaultOutputPath),
		OutputFormat: snapshot.Format(GetEnvWithDefault("NEO4J_SCHEMA_FORMAT", string(snapshot.FormatJSON))),
		Timeout:      ParseDuration(GetEnv("NEO4J_SCHEMA_TIMEOUT"), 0),
	}

	// Apply CLI overrides if provided
	if cliOverrides != nil {
		if cliOverrides.URI != "" {
			cfg.URI = cliOverrides.URI
		}
		if cliOverrides.Username != "" {
			cfg.Username = cliOverrides.Username
		}
		if cliOverrides.Password != "" {
			cfg.Password = cliOverrides.Password
		}
		if cliOverrides.Database != "" {
			cfg.Database = cliOverrides.Database
		}
		if cliOverrides.SampleSize != "" {
			cfg.SampleSize = ParseInt(cliOverrides.SampleSize, cfg.SampleSize)
		}
		if cliOverrides.Output != "" {
			cfg.OutputPath = cliOverrides.Output
		}
		if cliOverrides.Format != "" {
			cfg.OutputFormat = snapshot.Format(cliOverrides.Format)
		}
		if cliOverrides.Timeout != "" {
			cfg.Timeout = ParseDuration(cliOverrides.Timeout, cfg.Timeout)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetEnv returns the value of an environment variable or empty string if not set
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvWithDefault returns the value of an environment variable or a default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ParseInt parses a string to int.
// Returns the default value if the string is empty or invalid.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid integer value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}

// ParseDuration parses a Go duration string such as "30s" or "5m".
// Returns the default value if the string is empty or invalid.
func ParseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: Invalid duration value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}
