//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package extractor reads the descriptive schema of a Neo4j database
// (labels, relationship types, property keys, samples, indexes,
// constraints and cardinalities) into a snapshot.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-schema-extractor/internal/config"
	"github.com/neo4j/neo4j-schema-extractor/internal/database"
	"github.com/neo4j/neo4j-schema-extractor/internal/snapshot"
)

// DefaultSampleLimit is the number of sample nodes read per label
const DefaultSampleLimit = config.DefaultSampleSize

// Extractor runs the schema queries over one database connection.
type Extractor struct {
	db          database.Service
	sampleLimit int
	logger      *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Option configures an Extractor
type Option func(*Extractor)

// WithSampleLimit overrides the number of sample nodes read per label.
// Non-positive values are ignored.
func WithSampleLimit(limit int) Option {
	return func(e *Extractor) {
		if limit > 0 {
			e.sampleLimit = limit
		}
	}
}

// WithLogger sets the logger used for progress notices
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor over an open database service.
// The extractor takes ownership of the service and releases it on Close.
func New(db database.Service, opts ...Option) (*Extractor, error) {
	if db == nil {
		return nil, fmt.Errorf("database service cannot be nil")
	}

	e := &Extractor{
		db:          db,
		sampleLimit: DefaultSampleLimit,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Open connects to the database described by cfg and returns an Extractor
// owning that connection. A *database.ConnectionError is returned when the
// server is unreachable or rejects the credentials; in that case there is
// nothing to close.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Extractor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required but was nil")
	}

	db, err := database.Connect(ctx, cfg.URI, cfg.Username, cfg.Password, cfg.Database)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithSampleLimit(cfg.SampleSize)}, opts...)
	return New(db, opts...)
}

// Opener opens an Extractor for cfg. Open is the implementation used in production.
type Opener func(ctx context.Context, cfg *config.Config, opts ...Option) (*Extractor, error)

// Run opens an extractor with open, extracts the schema and releases the
// connection on every path once open succeeded, including a failed
// extraction or a cancelled ctx. A failure to close is logged, not returned.
func Run(ctx context.Context, cfg *config.Config, open Opener, opts ...Option) (*snapshot.Snapshot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required but was nil")
	}
	if open == nil {
		open = Open
	}

	e, err := open(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := e.Close(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("failed to close Neo4j connection", "error", err)
		}
	}()

	e.logger.Info("connected to Neo4j", "database", cfg.Database)
	return e.ExtractSchema(ctx)
}

// Close releases the database connection. Only the first call reaches the
// database; later calls return the first result. Close on a nil Extractor is a no-op.
func (e *Extractor) Close(ctx context.Context) error {
	if e == nil || e.db == nil {
		return nil
	}
	e.closeOnce.Do(func() {
		e.closeErr = e.db.Close(ctx)
	})
	return e.closeErr
}

// RunQuery executes a read-only query and returns its rows in result order.
// Failures are returned as *database.QueryError.
func (e *Extractor) RunQuery(ctx context.Context, cypher string) ([]snapshot.Row, error) {
	return e.runQuery(ctx, cypher, nil)
}

func (e *Extractor) runQuery(ctx context.Context, cypher string, params map[string]any) ([]snapshot.Row, error) {
	records, err := e.db.ExecuteReadQuery(ctx, cypher, params)
	if err != nil {
		var queryErr *database.QueryError
		if errors.As(err, &queryErr) {
			return nil, err
		}
		return nil, &database.QueryError{Query: cypher, Err: err}
	}
	return database.RecordsToRows(records), nil
}

// Labels returns one row per node label (column "label")
func (e *Extractor) Labels(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, labelsQuery)
}

// RelationshipTypes returns one row per relationship type (column "relationshipType")
func (e *Extractor) RelationshipTypes(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, relationshipTypesQuery)
}

// PropertyKeys returns one row per property key (column "propertyKey")
func (e *Extractor) PropertyKeys(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, propertyKeysQuery)
}

// SampleNodes returns at most limit nodes carrying label, one row per node
// (column "n"). A non-positive limit uses the extractor's sample limit.
func (e *Extractor) SampleNodes(ctx context.Context, label string, limit int) ([]snapshot.Row, error) {
	if limit <= 0 {
		limit = e.sampleLimit
	}
	return e.runQuery(ctx, buildSampleNodesQuery(label), map[string]any{"limit": int64(limit)})
}

// RelationshipDetails returns the distinct (start_labels, end_labels, properties)
// shapes observed for relationships of relType.
func (e *Extractor) RelationshipDetails(ctx context.Context, relType string) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, buildRelationshipDetailsQuery(relType))
}

// NodePropertyTypes returns the per label/property type descriptors
func (e *Extractor) NodePropertyTypes(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, nodePropertyTypesQuery)
}

// Indexes returns one row per index
func (e *Extractor) Indexes(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, indexesQuery)
}

// Constraints returns one row per constraint
func (e *Extractor) Constraints(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, constraintsQuery)
}

// GraphMeta returns the APOC meta graph (requires the APOC plugin)
func (e *Extractor) GraphMeta(ctx context.Context) ([]snapshot.Row, error) {
	return e.RunQuery(ctx, graphMetaQuery)
}

// RelationshipCardinality returns the number of distinct start nodes and the
// number of relationships of relType as a single row.
func (e *Extractor) RelationshipCardinality(ctx context.Context, relType string) (snapshot.Row, error) {
	rows, err := e.RunQuery(ctx, buildRelationshipCardinalityQuery(relType))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return snapshot.Row{"distinct_start_nodes": int64(0), "relationship_count": int64(0)}, nil
	}
	return rows[0], nil
}

// Names collects the string values of column from rows, in row order.
// Rows without a string value in that column are skipped.
func Names(rows []snapshot.Row, column string) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row[column].(string); ok {
			names = append(names, name)
		}
	}
	return names
}

// step is one stage of ExtractSchema, filling its part of the snapshot
type step struct {
	name string
	run  func(ctx context.Context, s *snapshot.Snapshot) error
}

// steps lists the extraction stages in output order
func (e *Extractor) steps(logger *slog.Logger) []step {
	return []step{
		{
			name: "node labels",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.NodeLabels, err = e.Labels(ctx)
				return err
			},
		},
		{
			name: "relationship types",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.RelationshipTypes, err = e.RelationshipTypes(ctx)
				return err
			},
		},
		{
			name: "property keys",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.PropertyKeys, err = e.PropertyKeys(ctx)
				return err
			},
		},
		{
			name: "sample nodes for each label",
			run: func(ctx context.Context, s *snapshot.Snapshot) error {
				for _, label := range Names(s.NodeLabels, labelColumn) {
					logger.Debug("sampling nodes", "label", label, "limit", e.sampleLimit)
					rows, err := e.SampleNodes(ctx, label, e.sampleLimit)
					if err != nil {
						return err
					}
					s.SampleNodes[label] = rows
				}
				return nil
			},
		},
		{
			name: "relationship details",
			run: func(ctx context.Context, s *snapshot.Snapshot) error {
				for _, relType := range Names(s.RelationshipTypes, relationshipTypeColumn) {
					logger.Debug("reading relationship shapes", "relationship_type", relType)
					rows, err := e.RelationshipDetails(ctx, relType)
					if err != nil {
						return err
					}
					s.RelationshipDetails[relType] = rows
				}
				return nil
			},
		},
		{
			name: "node property types",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.NodePropertyTypes, err = e.NodePropertyTypes(ctx)
				return err
			},
		},
		{
			name: "indexes",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.Indexes, err = e.Indexes(ctx)
				return err
			},
		},
		{
			name: "constraints",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.Constraints, err = e.Constraints(ctx)
				return err
			},
		},
		{
			name: "graph meta-information",
			run: func(ctx context.Context, s *snapshot.Snapshot) (err error) {
				s.GraphMeta, err = e.GraphMeta(ctx)
				return err
			},
		},
		{
			name: "relationship cardinality",
			run: func(ctx context.Context, s *snapshot.Snapshot) error {
				for _, relType := range Names(s.RelationshipTypes, relationshipTypeColumn) {
					logger.Debug("counting relationships", "relationship_type", relType)
					row, err := e.RelationshipCardinality(ctx, relType)
					if err != nil {
						return err
					}
					s.RelationshipCardinality[relType] = row
				}
				return nil
			},
		},
	}
}

// ExtractSchema runs every extraction step in order and returns the complete
// snapshot. The first failing query aborts the run; no partial snapshot is returned.
func (e *Extractor) ExtractSchema(ctx context.Context) (*snapshot.Snapshot, error) {
	logger := e.logger.With("run_id", uuid.NewString())
	schema := snapshot.New()

	for i, st := range e.steps(logger) {
		logger.Info("extracting "+st.name, "step", i+1)
		if err := st.run(ctx, schema); err != nil {
			logger.Error("schema extraction failed", "step", i+1, "error", err)
			return nil, fmt.Errorf("failed to extract %s: %w", st.name, err)
		}
	}

	logger.Info("schema extraction finished",
		"labels", len(schema.SampleNodes),
		"relationship_types", len(schema.RelationshipCardinality))
	return schema, nil
}
