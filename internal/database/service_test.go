//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-schema-extractor/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNeo4jService(t *testing.T) {
	t.Run("nil driver", func(t *testing.T) {
		service, err := database.NewNeo4jService(nil, "neo4j")
		if err == nil {
			t.Errorf("expected error when driver is nil")
		}
		if service != nil {
			t.Errorf("expected nil service, got %v", service)
		}
	})
}

func TestConnect(t *testing.T) {
	t.Run("unsupported URI scheme is a connection error", func(t *testing.T) {
		service, err := database.Connect(context.Background(), "foo://localhost:7687", "neo4j", "password", "neo4j")
		require.Error(t, err)
		assert.Nil(t, service)

		var connErr *database.ConnectionError
		require.True(t, errors.As(err, &connErr), "expected *ConnectionError, got %T", err)
		assert.Equal(t, "foo://localhost:7687", connErr.URI)
		assert.NotNil(t, connErr.Unwrap())
	})
}

func TestErrors(t *testing.T) {
	cause := errors.New("Neo.ClientError.Statement.SyntaxError: Invalid input")

	t.Run("query error keeps the query and the cause", func(t *testing.T) {
		err := error(&database.QueryError{
			Query: "\n        MATCH (a)-[r:`KNOWS`]->(b)\n        RETURN COUNT(r)\n",
			Err:   cause,
		})

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "MATCH (a)-[r:`KNOWS`]->(b) RETURN COUNT(r)")
		assert.True(t, strings.Contains(err.Error(), "SyntaxError"))
	})

	t.Run("connection error keeps the uri and the cause", func(t *testing.T) {
		err := error(&database.ConnectionError{URI: "bolt://localhost:7687", Err: cause})

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "bolt://localhost:7687")
	})
}
