//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// Neo4jService is the concrete implementation of Service
type Neo4jService struct {
	driver   neo4j.Driver
	database string
}

// NewNeo4jService creates a new Neo4jService instance
func NewNeo4jService(driver neo4j.Driver, database string) (*Neo4jService, error) {
	if driver == nil {
		return nil, fmt.Errorf("driver cannot be nil")
	}

	return &Neo4jService{
		driver:   driver,
		database: database,
	}, nil
}

// Connect creates a driver with basic auth and verifies that the server accepts it.
// Any failure is reported as a *ConnectionError and leaves nothing to close.
func Connect(ctx context.Context, uri, username, password, database string) (*Neo4jService, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, &ConnectionError{URI: uri, Err: err}
	}

	service, err := NewNeo4jService(driver, database)
	if err != nil {
		return nil, &ConnectionError{URI: uri, Err: err}
	}

	if err := service.VerifyConnectivity(ctx); err != nil {
		if closeErr := driver.Close(ctx); closeErr != nil {
			slog.Warn("failed to close driver after connectivity failure", "error", closeErr)
		}
		return nil, &ConnectionError{URI: uri, Err: err}
	}

	return service, nil
}

// VerifyConnectivity checks the driver can establish a valid connection with a Neo4j instance
func (s *Neo4jService) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		slog.Error("failed to verify database connectivity", "error", err)
		return err
	}
	return nil
}

// ExecuteReadQuery executes a read-only Cypher query and returns raw records.
// The driver opens and closes the session around the query.
func (s *Neo4jService) ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database), neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		wrappedErr := &QueryError{Query: cypher, Err: err}
		slog.Error("error in ExecuteReadQuery", "error", wrappedErr)
		return nil, wrappedErr
	}

	return res.Records, nil
}

// Close closes the driver
func (s *Neo4jService) Close(ctx context.Context) error {
	if err := s.driver.Close(ctx); err != nil {
		return fmt.Errorf("failed to close driver: %w", err)
	}
	return nil
}
