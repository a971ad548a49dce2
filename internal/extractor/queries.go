//
// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package extractor

import (
	"fmt"
	"strings"
)

const (
	labelsQuery            = "CALL db.labels()"
	relationshipTypesQuery = "CALL db.relationshipTypes()"
	propertyKeysQuery      = "CALL db.propertyKeys()"
	nodePropertyTypesQuery = "CALL db.schema.nodeTypeProperties()"
	indexesQuery           = "SHOW INDEXES"
	constraintsQuery       = "SHOW CONSTRAINTS"
	graphMetaQuery         = "CALL apoc.meta.graph()"

	// sampleNodesQuery takes the quoted label; the limit is bound as $limit
	sampleNodesQuery = "MATCH (n:%s) RETURN n LIMIT $limit"

	relationshipDetailsQuery = `
        MATCH (a)-[r:%s]->(b)
        RETURN DISTINCT labels(a) AS start_labels, labels(b) AS end_labels, keys(r) AS properties
    `

	relationshipCardinalityQuery = `
        MATCH (a)-[r:%s]->(b)
        RETURN COUNT(DISTINCT a) AS distinct_start_nodes, COUNT(r) AS relationship_count
    `
)

// Result columns of the procedures whose rows drive the per-name loops
const (
	labelColumn            = "label"
	relationshipTypeColumn = "relationshipType"
)

// quoteIdentifier renders a label or relationship type name as a Cypher
// identifier. Backticks inside the name are doubled.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func buildSampleNodesQuery(label string) string {
	return fmt.Sprintf(sampleNodesQuery, quoteIdentifier(label))
}

func buildRelationshipDetailsQuery(relType string) string {
	return fmt.Sprintf(relationshipDetailsQuery, quoteIdentifier(relType))
}

func buildRelationshipCardinalityQuery(relType string) string {
	return fmt.Sprintf(relationshipCardinalityQuery, quoteIdentifier(relType))
}
