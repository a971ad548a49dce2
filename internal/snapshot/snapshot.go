//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package snapshot holds the schema snapshot produced by one extraction run
// and writes it out as a single document.
package snapshot

// Row is one result record: column name → value as decoded by the driver.
type Row = map[string]any

// Snapshot is the aggregate result of one extraction run.
// Field order is the order of the keys in the written document.
type Snapshot struct {
	NodeLabels              []Row            `json:"node_labels" yaml:"node_labels"`
	RelationshipTypes       []Row            `json:"relationship_types" yaml:"relationship_types"`
	PropertyKeys            []Row            `json:"property_keys" yaml:"property_keys"`
	SampleNodes             map[string][]Row `json:"sample_nodes" yaml:"sample_nodes"`
	RelationshipDetails     map[string][]Row `json:"relationship_details" yaml:"relationship_details"`
	NodePropertyTypes       []Row            `json:"node_property_types" yaml:"node_property_types"`
	Indexes                 []Row            `json:"indexes" yaml:"indexes"`
	Constraints             []Row            `json:"constraints" yaml:"constraints"`
	GraphMeta               []Row            `json:"graph_meta" yaml:"graph_meta"`
	RelationshipCardinality map[string]Row   `json:"relationship_cardinality" yaml:"relationship_cardinality"`
}

// New returns a snapshot with every key present and empty.
func New() *Snapshot {
	return &Snapshot{
		NodeLabels:              []Row{},
		RelationshipTypes:       []Row{},
		PropertyKeys:            []Row{},
		SampleNodes:             map[string][]Row{},
		RelationshipDetails:     map[string][]Row{},
		NodePropertyTypes:       []Row{},
		Indexes:                 []Row{},
		Constraints:             []Row{},
		GraphMeta:               []Row{},
		RelationshipCardinality: map[string]Row{},
	}
}

// Normalized returns a copy of the snapshot where every value has been
// converted by Normalize into JSON-native types. Nil slices and maps come
// back empty so that every key is written as [] or {}.
func (s *Snapshot) Normalized() *Snapshot {
	out := New()
	if s == nil {
		return out
	}

	out.NodeLabels = normalizeRows(s.NodeLabels)
	out.RelationshipTypes = normalizeRows(s.RelationshipTypes)
	out.PropertyKeys = normalizeRows(s.PropertyKeys)
	for label, rows := range s.SampleNodes {
		out.SampleNodes[label] = normalizeRows(rows)
	}
	for relType, rows := range s.RelationshipDetails {
		out.RelationshipDetails[relType] = normalizeRows(rows)
	}
	out.NodePropertyTypes = normalizeRows(s.NodePropertyTypes)
	out.Indexes = normalizeRows(s.Indexes)
	out.Constraints = normalizeRows(s.Constraints)
	out.GraphMeta = normalizeRows(s.GraphMeta)
	for relType, row := range s.RelationshipCardinality {
		out.RelationshipCardinality[relType] = normalizeRow(row)
	}
	return out
}

func normalizeRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeRow(row))
	}
	return out
}

func normalizeRow(row Row) Row {
	out := make(Row, len(row))
	for column, value := range row {
		out[column] = Normalize(value)
	}
	return out
}
