//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package snapshot

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j/dbtype"
)

// Kind is the serialization category of a scalar driver value.
type Kind int

const (
	// KindPrimitive values are already JSON-native.
	KindPrimitive Kind = iota
	// KindTimestamp values are Go time.Time (Neo4j DATETIME).
	KindTimestamp
	// KindTemporal values are driver temporal types rendered via their ISO form.
	KindTemporal
	// KindStructured values are graph entities and points rendered as maps or lists.
	KindStructured
	// KindFallback values have no known rendering and are written as strings.
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindTimestamp:
		return "timestamp"
	case KindTemporal:
		return "temporal"
	case KindStructured:
		return "structured"
	default:
		return "fallback"
	}
}

// Serializer renders one category of value as a JSON-native value.
type Serializer interface {
	Serialize(v any) any
}

var serializers = map[Kind]Serializer{
	KindPrimitive:  primitiveSerializer{},
	KindTimestamp:  timestampSerializer{},
	KindTemporal:   temporalSerializer{},
	KindStructured: structuredSerializer{},
	KindFallback:   fallbackSerializer{},
}

// Classify returns the serialization category of a scalar value.
// Lists and maps are not classified; Normalize walks them.
func Classify(v any) Kind {
	switch v.(type) {
	case nil, bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindPrimitive
	case time.Time, *time.Time:
		return KindTimestamp
	case dbtype.Date, dbtype.LocalTime, dbtype.LocalDateTime, dbtype.Time, dbtype.Duration:
		return KindTemporal
	case dbtype.Node, *dbtype.Node, dbtype.Relationship, *dbtype.Relationship,
		dbtype.Path, *dbtype.Path, dbtype.Point2D, *dbtype.Point2D, dbtype.Point3D, *dbtype.Point3D:
		return KindStructured
	default:
		return KindFallback
	}
}

// Normalize converts a value returned by the driver into a value that
// encodes to JSON or YAML without loss of structure. Lists and string-keyed
// maps are walked recursively; every other value is rendered by the
// serializer of its Kind.
func Normalize(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, item := range t {
			out[key] = Normalize(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			out := make([]any, rv.Len())
			for i := range out {
				out[i] = Normalize(rv.Index(i).Interface())
			}
			return out
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				out[iter.Key().String()] = Normalize(iter.Value().Interface())
			}
			return out
		}
	}

	return serializers[Classify(v)].Serialize(v)
}

type primitiveSerializer struct{}

// Serialize passes primitives through, except non-finite floats which JSON
// cannot carry; those become "NaN", "Infinity" or "-Infinity".
func (primitiveSerializer) Serialize(v any) any {
	switch f := v.(type) {
	case float64:
		return nonFinite(f, v)
	case float32:
		return nonFinite(float64(f), v)
	}
	return v
}

func nonFinite(f float64, v any) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return v
}

type timestampSerializer struct{}

func (timestampSerializer) Serialize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(time.RFC3339Nano)
	}
	return fallbackSerializer{}.Serialize(v)
}

const (
	isoDate          = "2006-01-02"
	isoLocalTime     = "15:04:05.999999999"
	isoLocalDateTime = "2006-01-02T15:04:05.999999999"
	isoOffsetTime    = "15:04:05.999999999Z07:00"
)

type temporalSerializer struct{}

func (temporalSerializer) Serialize(v any) any {
	switch t := v.(type) {
	case dbtype.Date:
		return time.Time(t).Format(isoDate)
	case dbtype.LocalTime:
		return time.Time(t).Format(isoLocalTime)
	case dbtype.LocalDateTime:
		return time.Time(t).Format(isoLocalDateTime)
	case dbtype.Time:
		return time.Time(t).Format(isoOffsetTime)
	case dbtype.Duration:
		return t.String()
	}
	return fallbackSerializer{}.Serialize(v)
}

// structuredSerializer renders nodes as their property map, matching what a
// record's data view exposes, and relationships, paths and points as maps.
type structuredSerializer struct{}

func (s structuredSerializer) Serialize(v any) any {
	switch t := v.(type) {
	case dbtype.Node:
		return s.node(t)
	case *dbtype.Node:
		if t == nil {
			return nil
		}
		return s.node(*t)
	case dbtype.Relationship:
		return s.relationship(t)
	case *dbtype.Relationship:
		if t == nil {
			return nil
		}
		return s.relationship(*t)
	case dbtype.Path:
		return s.path(t)
	case *dbtype.Path:
		if t == nil {
			return nil
		}
		return s.path(*t)
	case dbtype.Point2D:
		return map[string]any{"srid": t.SpatialRefId, "x": t.X, "y": t.Y}
	case *dbtype.Point2D:
		if t == nil {
			return nil
		}
		return map[string]any{"srid": t.SpatialRefId, "x": t.X, "y": t.Y}
	case dbtype.Point3D:
		return map[string]any{"srid": t.SpatialRefId, "x": t.X, "y": t.Y, "z": t.Z}
	case *dbtype.Point3D:
		if t == nil {
			return nil
		}
		return map[string]any{"srid": t.SpatialRefId, "x": t.X, "y": t.Y, "z": t.Z}
	}
	return fallbackSerializer{}.Serialize(v)
}

func (structuredSerializer) node(n dbtype.Node) any {
	return Normalize(propsOrEmpty(n.Props))
}

func (structuredSerializer) relationship(r dbtype.Relationship) any {
	return map[string]any{
		"type":             r.Type,
		"start_element_id": r.StartElementId,
		"end_element_id":   r.EndElementId,
		"properties":       Normalize(propsOrEmpty(r.Props)),
	}
}

func (s structuredSerializer) path(p dbtype.Path) any {
	out := make([]any, 0, len(p.Nodes)+len(p.Relationships))
	for i, n := range p.Nodes {
		out = append(out, s.node(n))
		if i < len(p.Relationships) {
			out = append(out, s.relationship(p.Relationships[i]))
		}
	}
	return out
}

func propsOrEmpty(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	return props
}

type fallbackSerializer struct{}

func (fallbackSerializer) Serialize(v any) any {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
