//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of the written snapshot document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats defines the allowed output formats
var ValidFormats = []Format{FormatJSON, FormatYAML}

// ParseFormat returns the Format named by s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ValidFormats, f) {
		return "", fmt.Errorf("invalid output format '%s', must be one of %v", s, ValidFormats)
	}
	return f, nil
}

const jsonIndent = "    "

// Write encodes the normalized snapshot to w.
func Write(w io.Writer, s *Snapshot, format Format) error {
	doc := s.Normalized()

	switch format {
	case FormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", jsonIndent)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode snapshot as JSON: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode snapshot as YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML encoder: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// WriteFile writes the snapshot to path, replacing any existing file.
// The file is only created once encoding has succeeded.
func WriteFile(path string, s *Snapshot, format Format) error {
	var buf strings.Builder
	if err := Write(&buf, s, format); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes a JSON snapshot previously written by WriteFile.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot from %s: %w", path, err)
	}

	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot from %s: %w", path, err)
	}
	return s, nil
}
