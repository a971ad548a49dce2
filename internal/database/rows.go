//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package database

import (
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// RecordsToRows converts go-driver records into column name → value maps.
// Values are left as the driver decoded them (nodes, temporal values, lists...).
// The result is never nil so that an empty result serializes as [].
func RecordsToRows(records []*neo4j.Record) []map[string]any {
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			if i < len(record.Values) {
				row[key] = record.Values[i]
			} else {
				row[key] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}
