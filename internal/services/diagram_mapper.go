package services

import (
	"fmt"
	"strings"

	"schemacanvas/internal/models"
)

// DefaultTableWidth is used for nodes whose table has no stored width.
const DefaultTableWidth = 224

const (
	sourceHandlePrefix = "source_"
	targetHandlePrefix = "target_"
	handleSeparator    = "_"
)

// SourceHandle builds the handle identity for the source side of an
// edge. Source handles are field-scoped: one per field, shared by
// every edge fanning out of it.
func SourceHandle(fieldID string) string {
	return sourceHandlePrefix + fieldID
}

// TargetHandle builds the handle identity for the target side of an
// edge. The ordinal keeps handles unique when several edges end on the
// same field.
func TargetHandle(ordinal int, fieldID string) string {
	return fmt.Sprintf("%s%d%s%s", targetHandlePrefix, ordinal, handleSeparator, fieldID)
}

// FieldIDFromHandle recovers the field id encoded in a handle string by
// taking the segment after the last separator. Returns "" for handles
// that carry no separator payload; callers treat that as a silent
// abort, not an error.
func FieldIDFromHandle(handle string) string {
	idx := strings.LastIndex(handle, handleSeparator)
	if idx < 0 {
		return ""
	}
	return handle[idx+len(handleSeparator):]
}

// TablesToNodes projects the table collection to diagram nodes. The
// projection is a total function of its input: same tables in, same
// nodes out. Each node references the table it was built from.
func TablesToNodes(tables []models.Table) []models.Node {
	nodes := make([]models.Node, 0, len(tables))
	for i := range tables {
		table := &tables[i]
		width := float64(DefaultTableWidth)
		if table.Width != nil {
			width = *table.Width
		}
		nodes = append(nodes, models.Node{
			ID:       table.ID,
			Position: models.Position{X: table.X, Y: table.Y},
			Width:    width,
			Table:    table,
		})
	}
	return nodes
}

// RelationshipsToEdges projects the relationship collection to diagram
// edges, assigning target-handle ordinals in list order. Each edge
// references the relationship it was built from.
func RelationshipsToEdges(relationships []models.Relationship) []models.Edge {
	edges := make([]models.Edge, 0, len(relationships))
	ordinals := make(map[HandleKey]int, len(relationships))
	for i := range relationships {
		rel := &relationships[i]
		key := HandleKey{TableID: rel.TargetTableID, FieldID: rel.TargetFieldID}
		ordinal := ordinals[key]
		ordinals[key]++

		edges = append(edges, models.Edge{
			ID:           rel.ID,
			Source:       rel.SourceTableID,
			Target:       rel.TargetTableID,
			SourceHandle: SourceHandle(rel.SourceFieldID),
			TargetHandle: TargetHandle(ordinal, rel.TargetFieldID),
			Relationship: rel,
		})
	}
	return edges
}
