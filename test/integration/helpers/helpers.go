//go:build integration

package helpers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
	"github.com/neo4j/neo4j-schema-extractor/internal/config"
	"github.com/neo4j/neo4j-schema-extractor/internal/extractor"
)

type UniqueName string

// String returns the string representation of the UniqueName.
func (un UniqueName) String() string {
	return string(un)
}

// TestContext holds common test dependencies
type TestContext struct {
	Ctx    context.Context
	T      *testing.T
	TestID string
	Config *config.Config

	driver       *neo4j.Driver
	createdNames map[string]bool
	nameMutex    sync.Mutex
}

// NewTestContext creates a new test context with automatic cleanup.
// driver is used for seeding and cleanup only; extractors open their own connection from cfg.
func NewTestContext(t *testing.T, driver *neo4j.Driver, cfg *config.Config) *TestContext {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

	tc := &TestContext{
		Ctx:          ctx,
		T:            t,
		TestID:       makeTestID(),
		Config:       cfg,
		driver:       driver,
		createdNames: make(map[string]bool),
	}

	t.Cleanup(func() {
		tc.Cleanup() // Clean up test data
		cancel()     // Release context resources immediately
	})

	return tc
}

// OpenExtractor opens an extractor against the test database and closes it when the test ends
func (tc *TestContext) OpenExtractor(opts ...extractor.Option) *extractor.Extractor {
	tc.T.Helper()

	ex, err := extractor.Open(tc.Ctx, tc.Config, opts...)
	if err != nil {
		tc.T.Fatalf("failed to open extractor: %v", err)
	}
	tc.T.Cleanup(func() {
		if err := ex.Close(context.Background()); err != nil {
			tc.T.Logf("Warning: failed to close extractor: %v", err)
		}
	})
	return ex
}

// Cleanup removes all test data by deleting nodes with labels created during the test
func (tc *TestContext) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tc.nameMutex.Lock()
	names := make([]string, 0, len(tc.createdNames))
	for name := range tc.createdNames {
		names = append(names, name)
	}
	tc.nameMutex.Unlock()

	for _, name := range names {
		query := fmt.Sprintf("MATCH (n:%s) DETACH DELETE n", quote(name))
		if err := tc.write(ctx, query, nil); err != nil {
			log.Printf("Warning: cleanup failed for label=%s: %v", name, err)
		}
	}
}

// GetUniqueName returns a name unique to this test for the given base label or type
func (tc *TestContext) GetUniqueName(base string) UniqueName {
	if tc.TestID == "" {
		panic("GetUniqueName: TestID is not set in TestContext. Did you forget to use NewTestContext?")
	}
	return UniqueName(fmt.Sprintf("%s_%s", base, tc.TestID))
}

// SeedNodes creates count nodes with a unique label and the given properties.
// Each node also gets a "seq" property holding its position.
func (tc *TestContext) SeedNodes(label string, count int, props map[string]any) UniqueName {
	tc.T.Helper()

	uniqueLabel := tc.GetUniqueName(label)
	tc.track(uniqueLabel)

	query := fmt.Sprintf("UNWIND range(0, $count - 1) AS i CREATE (n:%s) SET n = $props, n.seq = i", quote(string(uniqueLabel)))
	if props == nil {
		props = map[string]any{}
	}
	if err := tc.write(tc.Ctx, query, map[string]any{"count": count, "props": props}); err != nil {
		tc.T.Fatalf("failed to seed %s nodes: %v", uniqueLabel, err)
	}
	return uniqueLabel
}

// Exec runs a write query used to shape test data. Any label it creates must be tracked with Track.
func (tc *TestContext) Exec(query string, params map[string]any) {
	tc.T.Helper()
	if err := tc.write(tc.Ctx, query, params); err != nil {
		tc.T.Fatalf("failed to run %q: %v", query, err)
	}
}

// Track registers a label for cleanup
func (tc *TestContext) Track(label UniqueName) {
	tc.track(label)
}

// SeedRelationships connects every start node to every end node with a
// relationship of a unique type and returns that type.
func (tc *TestContext) SeedRelationships(start UniqueName, relType string, end UniqueName, props map[string]any) UniqueName {
	tc.T.Helper()

	uniqueType := tc.GetUniqueName(relType)
	query := fmt.Sprintf("MATCH (a:%s), (b:%s) CREATE (a)-[r:%s]->(b) SET r = $props",
		quote(string(start)), quote(string(end)), quote(string(uniqueType)))
	if props == nil {
		props = map[string]any{}
	}
	if err := tc.write(tc.Ctx, query, map[string]any{"props": props}); err != nil {
		tc.T.Fatalf("failed to seed %s relationships: %v", uniqueType, err)
	}
	return uniqueType
}

func (tc *TestContext) track(label UniqueName) {
	tc.nameMutex.Lock()
	tc.createdNames[string(label)] = true
	tc.nameMutex.Unlock()
}

func (tc *TestContext) write(ctx context.Context, query string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(ctx, *tc.driver, query, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(tc.Config.Database))
	return err
}

func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func makeTestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
