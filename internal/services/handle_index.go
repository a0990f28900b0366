package services

import "schemacanvas/internal/models"

// HandleKey identifies a (table, field) pair on the target side of a
// relationship.
type HandleKey struct {
	TableID string
	FieldID string
}

// BuildTargetHandleIndex walks the relationship list in order and
// counts how many relationships terminate on each target field. The
// returned map holds, per pair, the next unused ordinal, i.e. the value
// a newly appended relationship targeting that field would receive.
//
// Target handles need the ordinal because several edges may end on the
// same field while handle identities must stay unique within a node.
// The walk is order-dependent and free of randomness, so a fixed list
// order always reproduces the same ordinals.
func BuildTargetHandleIndex(relationships []models.Relationship) map[HandleKey]int {
	index := make(map[HandleKey]int, len(relationships))
	for _, rel := range relationships {
		key := HandleKey{TableID: rel.TargetTableID, FieldID: rel.TargetFieldID}
		index[key]++
	}
	return index
}
