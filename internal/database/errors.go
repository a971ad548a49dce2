//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database

import (
	"fmt"
	"strings"
)

// ConnectionError is returned when the driver cannot be created, the server
// is unreachable or the credentials are rejected.
type ConnectionError struct {
	URI string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to Neo4j at %s: %v", e.URI, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError is returned when the server rejects or fails to execute a query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to execute query %q: %v", compactQuery(e.Query), e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// compactQuery folds a multi-line query onto one line for error messages
func compactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
