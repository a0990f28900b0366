package models

// Field is a typed column of a Table. The Type tag decides connection
// compatibility: only fields with equal tags may be related.
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is the domain-side entity backing a diagram node. Width is nil
// until the user resizes the table on the canvas.
type Table struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width,omitempty"`
	Fields []Field  `json:"fields"`
}

// GetField returns the field with the given id, or nil.
func (t *Table) GetField(fieldID string) *Field {
	for i := range t.Fields {
		if t.Fields[i].ID == fieldID {
			return &t.Fields[i]
		}
	}
	return nil
}
