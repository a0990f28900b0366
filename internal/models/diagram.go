package models

// Diagram primitives exchanged with the canvas client. JSON field names
// follow the client's node/edge conventions (camelCase handles, "data"
// for the domain back-reference) so the payloads drop straight into its
// node and edge arrays.

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is the diagram projection of a Table. Its id equals the table id
// and Table points at the backing domain entity.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Width    float64  `json:"width"`
	Selected bool     `json:"selected,omitempty"`
	Table    *Table   `json:"data"`
}

// Edge is the diagram projection of a Relationship. Elevated and
// Emphasized are transient visual flags derived from selection; they
// are never written back to the domain.
type Edge struct {
	ID           string        `json:"id"`
	Source       string        `json:"source"`
	Target       string        `json:"target"`
	SourceHandle string        `json:"sourceHandle"`
	TargetHandle string        `json:"targetHandle"`
	Selected     bool          `json:"selected,omitempty"`
	Elevated     bool          `json:"elevated"`
	Emphasized   bool          `json:"emphasized"`
	Relationship *Relationship `json:"data"`
}

// ChangeKind tags a gesture-change record emitted by the canvas.
type ChangeKind string

const (
	ChangePosition   ChangeKind = "position"
	ChangeDimensions ChangeKind = "dimensions"
	ChangeRemove     ChangeKind = "remove"
	ChangeSelect     ChangeKind = "select"
)

// NodeChange is one record of a node gesture batch. Dragging and
// Resizing report whether the gesture is still in progress when the
// record was emitted.
type NodeChange struct {
	Kind       ChangeKind  `json:"type" binding:"required"`
	ID         string      `json:"id" binding:"required"`
	Position   *Position   `json:"position,omitempty"`
	Dragging   bool        `json:"dragging,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Resizing   bool        `json:"resizing,omitempty"`
	Selected   bool        `json:"selected,omitempty"`
}

// EdgeChange is one record of an edge gesture batch.
type EdgeChange struct {
	Kind     ChangeKind `json:"type" binding:"required"`
	ID       string     `json:"id" binding:"required"`
	Selected bool       `json:"selected,omitempty"`
}

// Connection is a user-drawn connection attempt between two field
// handles, as reported by the canvas.
type Connection struct {
	Source       string `json:"source" binding:"required"`
	Target       string `json:"target" binding:"required"`
	SourceHandle string `json:"sourceHandle" binding:"required"`
	TargetHandle string `json:"targetHandle" binding:"required"`
}
