package models

import "time"

// Relationship links a source field to a target field across tables.
// It is created only through the connection validator and removed only
// through the removal cascade or a table-deletion cascade.
type Relationship struct {
	ID            string    `json:"id"`
	SourceTableID string    `json:"source_table_id"`
	SourceFieldID string    `json:"source_field_id"`
	TargetTableID string    `json:"target_table_id"`
	TargetFieldID string    `json:"target_field_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// RelationshipSpec carries the endpoints of a relationship to create.
type RelationshipSpec struct {
	SourceTableID string `json:"source_table_id" binding:"required"`
	SourceFieldID string `json:"source_field_id" binding:"required"`
	TargetTableID string `json:"target_table_id" binding:"required"`
	TargetFieldID string `json:"target_field_id" binding:"required"`
}
