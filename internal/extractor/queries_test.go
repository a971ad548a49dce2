//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package extractor

import (
	"strings"
	"testing"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain label", in: "Person", want: "`Person`"},
		{name: "relationship type", in: "ACTED_IN", want: "`ACTED_IN`"},
		{name: "name with space", in: "Movie Star", want: "`Movie Star`"},
		{name: "embedded backtick is doubled", in: "we`ird", want: "`we``ird`"},
		{name: "empty name", in: "", want: "``"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quoteIdentifier(tt.in); got != tt.want {
				t.Errorf("quoteIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildQueries(t *testing.T) {
	t.Run("sample nodes binds the limit as a parameter", func(t *testing.T) {
		got := buildSampleNodesQuery("Person")
		want := "MATCH (n:`Person`) RETURN n LIMIT $limit"
		if got != want {
			t.Errorf("buildSampleNodesQuery() = %q, want %q", got, want)
		}
	})

	t.Run("relationship details matches the quoted type", func(t *testing.T) {
		got := buildRelationshipDetailsQuery("ACTED_IN")
		if !strings.Contains(got, "MATCH (a)-[r:`ACTED_IN`]->(b)") {
			t.Errorf("unexpected relationship details query: %q", got)
		}
		if !strings.Contains(got, "RETURN DISTINCT labels(a) AS start_labels, labels(b) AS end_labels, keys(r) AS properties") {
			t.Errorf("unexpected relationship details projection: %q", got)
		}
	})

	t.Run("relationship cardinality counts distinct start nodes", func(t *testing.T) {
		got := buildRelationshipCardinalityQuery("ACTED_IN")
		if !strings.Contains(got, "MATCH (a)-[r:`ACTED_IN`]->(b)") {
			t.Errorf("unexpected cardinality query: %q", got)
		}
		if !strings.Contains(got, "COUNT(DISTINCT a) AS distinct_start_nodes, COUNT(r) AS relationship_count") {
			t.Errorf("unexpected cardinality projection: %q", got)
		}
	})

	t.Run("a hostile name stays inside the identifier", func(t *testing.T) {
		got := buildSampleNodesQuery("X`) DETACH DELETE n //")
		want := "MATCH (n:`X``) DETACH DELETE n //`) RETURN n LIMIT $limit"
		if got != want {
			t.Errorf("buildSampleNodesQuery() = %q, want %q", got, want)
		}
	})
}
