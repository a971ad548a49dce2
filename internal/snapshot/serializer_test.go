//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package snapshot_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j/dbtype"
	"github.com/neo4j/neo4j-schema-extractor/internal/snapshot"
	"github.com/stretchr/testify/assert"
)

type opaque struct {
	A int
}

func TestClassify(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  snapshot.Kind
	}{
		{name: "nil", value: nil, want: snapshot.KindPrimitive},
		{name: "string", value: "Person", want: snapshot.KindPrimitive},
		{name: "int64", value: int64(42), want: snapshot.KindPrimitive},
		{name: "float64", value: 1.5, want: snapshot.KindPrimitive},
		{name: "bool", value: true, want: snapshot.KindPrimitive},
		{name: "bytes", value: []byte("abc"), want: snapshot.KindPrimitive},
		{name: "time", value: ts, want: snapshot.KindTimestamp},
		{name: "date", value: dbtype.Date(ts), want: snapshot.KindTemporal},
		{name: "local time", value: dbtype.LocalTime(ts), want: snapshot.KindTemporal},
		{name: "local datetime", value: dbtype.LocalDateTime(ts), want: snapshot.KindTemporal},
		{name: "offset time", value: dbtype.Time(ts), want: snapshot.KindTemporal},
		{name: "duration", value: dbtype.Duration{Days: 1}, want: snapshot.KindTemporal},
		{name: "node", value: dbtype.Node{}, want: snapshot.KindStructured},
		{name: "relationship", value: dbtype.Relationship{}, want: snapshot.KindStructured},
		{name: "path", value: dbtype.Path{}, want: snapshot.KindStructured},
		{name: "point", value: dbtype.Point2D{}, want: snapshot.KindStructured},
		{name: "unknown struct", value: opaque{A: 1}, want: snapshot.KindFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapshot.Classify(tt.value)
			if got != tt.want {
				t.Errorf("Classify(%T) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 5, 0, time.UTC)
	person := dbtype.Node{
		ElementId: "4:abc:0",
		Labels:    []string{"Person"},
		Props:     map[string]any{"name": "Alice", "born": dbtype.Date(ts)},
	}
	movie := dbtype.Node{
		ElementId: "4:abc:1",
		Labels:    []string{"Movie"},
		Props:     map[string]any{"title": "The Matrix"},
	}
	actedIn := dbtype.Relationship{
		ElementId:      "5:abc:0",
		StartElementId: "4:abc:0",
		EndElementId:   "4:abc:1",
		Type:           "ACTED_IN",
		Props:          map[string]any{"roles": []any{"Neo"}},
	}

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{
			name:  "primitive passes through",
			value: int64(7),
			want:  int64(7),
		},
		{
			name:  "finite float passes through",
			value: 1.5,
			want:  1.5,
		},
		{
			name:  "NaN renders as string",
			value: math.NaN(),
			want:  "NaN",
		},
		{
			name:  "positive infinity renders as string",
			value: math.Inf(1),
			want:  "Infinity",
		},
		{
			name:  "negative float32 infinity renders as string",
			value: float32(math.Inf(-1)),
			want:  "-Infinity",
		},
		{
			name:  "non-finite values inside a node",
			value: dbtype.Node{Props: map[string]any{"value": math.NaN(), "peak": math.Inf(1)}},
			want:  map[string]any{"value": "NaN", "peak": "Infinity"},
		},
		{
			name:  "timestamp renders as RFC 3339",
			value: ts,
			want:  "2024-03-15T10:30:05Z",
		},
		{
			name:  "date renders as ISO date",
			value: dbtype.Date(ts),
			want:  "2024-03-15",
		},
		{
			name:  "local datetime renders without offset",
			value: dbtype.LocalDateTime(ts),
			want:  "2024-03-15T10:30:05",
		},
		{
			name:  "local time renders as ISO time",
			value: dbtype.LocalTime(ts),
			want:  "10:30:05",
		},
		{
			name:  "node renders as its properties",
			value: person,
			want:  map[string]any{"name": "Alice", "born": "2024-03-15"},
		},
		{
			name:  "node without properties renders as empty map",
			value: dbtype.Node{Labels: []string{"Empty"}},
			want:  map[string]any{},
		},
		{
			name:  "relationship renders type, endpoints and properties",
			value: actedIn,
			want: map[string]any{
				"type":             "ACTED_IN",
				"start_element_id": "4:abc:0",
				"end_element_id":   "4:abc:1",
				"properties":       map[string]any{"roles": []any{"Neo"}},
			},
		},
		{
			name: "path alternates nodes and relationships",
			value: dbtype.Path{
				Nodes:         []dbtype.Node{person, movie},
				Relationships: []dbtype.Relationship{actedIn},
			},
			want: []any{
				map[string]any{"name": "Alice", "born": "2024-03-15"},
				map[string]any{
					"type":             "ACTED_IN",
					"start_element_id": "4:abc:0",
					"end_element_id":   "4:abc:1",
					"properties":       map[string]any{"roles": []any{"Neo"}},
				},
				map[string]any{"title": "The Matrix"},
			},
		},
		{
			name:  "point renders as coordinates",
			value: dbtype.Point2D{X: 1.5, Y: 2.5, SpatialRefId: 7203},
			want:  map[string]any{"srid": uint32(7203), "x": 1.5, "y": 2.5},
		},
		{
			name:  "nested lists and maps are walked",
			value: map[string]any{"created": []any{ts, "x"}, "typed": []string{"a", "b"}},
			want:  map[string]any{"created": []any{"2024-03-15T10:30:05Z", "x"}, "typed": []any{"a", "b"}},
		},
		{
			name:  "typed maps are walked",
			value: map[string]int64{"count": 3},
			want:  map[string]any{"count": int64(3)},
		},
		{
			name:  "unknown values fall back to their string form",
			value: opaque{A: 1},
			want:  "{1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapshot.Normalize(tt.value)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("duration renders via its ISO form", func(t *testing.T) {
		got, ok := snapshot.Normalize(dbtype.Duration{Months: 1, Days: 2, Seconds: 3}).(string)
		assert.True(t, ok)
		assert.True(t, strings.HasPrefix(got, "P"), "expected ISO-8601 duration, got %q", got)
	})
}
