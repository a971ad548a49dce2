//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database

//go:generate mockgen -destination=mocks/mock_database.go -package=mocks github.com/neo4j/neo4j-schema-extractor/internal/database Service

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// QueryExecutor defines the interface for executing read-only Neo4j queries
type QueryExecutor interface {
	// ExecuteReadQuery executes a read-only Cypher query and returns raw records
	ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// Service is the connection the schema extractor borrows for one run.
type Service interface {
	QueryExecutor

	// VerifyConnectivity checks the server is reachable and accepts the credentials
	VerifyConnectivity(ctx context.Context) error

	// Close releases the underlying driver and its connection pool
	Close(ctx context.Context) error
}
