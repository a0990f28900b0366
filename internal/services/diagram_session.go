package services

import (
	"sync"

	"schemacanvas/internal/models"
)

// DiagramSession is the server-side mirror of the canvas client's local
// node/edge state. The domain store stays authoritative for committed
// values; the session is authoritative for in-flight visual values
// (positions mid-drag, widths mid-resize, selection). The mutex
// serializes reconciliation passes the way the client's event loop
// serializes gesture callbacks.
type DiagramSession struct {
	mu    sync.RWMutex
	nodes []models.Node
	edges []models.Edge
}

func NewDiagramSession() *DiagramSession {
	return &DiagramSession{}
}

// Reset replaces the session with a fresh projection from the domain.
// Transient selection state carries over by id so a re-projection does
// not visually deselect whatever the user is holding.
func (s *DiagramSession) Reset(nodes []models.Node, edges []models.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectedNodes := make(map[string]bool, len(s.nodes))
	for _, n := range s.nodes {
		if n.Selected {
			selectedNodes[n.ID] = true
		}
	}
	selectedEdges := make(map[string]models.Edge, len(s.edges))
	for _, e := range s.edges {
		if e.Selected || e.Elevated || e.Emphasized {
			selectedEdges[e.ID] = e
		}
	}

	for i := range nodes {
		nodes[i].Selected = selectedNodes[nodes[i].ID]
	}
	for i := range edges {
		if prev, ok := selectedEdges[edges[i].ID]; ok {
			edges[i].Selected = prev.Selected
			edges[i].Elevated = prev.Elevated
			edges[i].Emphasized = prev.Emphasized
		}
	}

	s.nodes = nodes
	s.edges = edges
}

// Nodes returns a copy of the current node collection.
func (s *DiagramSession) Nodes() []models.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes := make([]models.Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// Edges returns a copy of the current edge collection.
func (s *DiagramSession) Edges() []models.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edges := make([]models.Edge, len(s.edges))
	copy(edges, s.edges)
	return edges
}

// GetEdgeByID resolves an edge for back-reference lookup.
func (s *DiagramSession) GetEdgeByID(id string) (models.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.edges {
		if e.ID == id {
			return e, true
		}
	}
	return models.Edge{}, false
}

// InsertEdge appends a newly created edge to the collection.
func (s *DiagramSession) InsertEdge(edge models.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, edge)
}

// RewriteEdges applies a whole-collection transform to the edges.
func (s *DiagramSession) RewriteEdges(rewrite func([]models.Edge) []models.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = rewrite(s.edges)
}

// ApplyNodeChanges is the local node reducer. It applies every record
// of the raw batch, including mid-gesture ones the reconciler never
// commits, so the mirrored canvas state stays responsive during drags.
func (s *DiagramSession) ApplyNodeChanges(changes []models.NodeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, change := range changes {
		switch change.Kind {
		case models.ChangeRemove:
			kept := s.nodes[:0]
			for _, n := range s.nodes {
				if n.ID != change.ID {
					kept = append(kept, n)
				}
			}
			s.nodes = kept
		case models.ChangePosition:
			if change.Position == nil {
				continue
			}
			for i := range s.nodes {
				if s.nodes[i].ID == change.ID {
					s.nodes[i].Position = *change.Position
				}
			}
		case models.ChangeDimensions:
			if change.Dimensions == nil {
				continue
			}
			for i := range s.nodes {
				if s.nodes[i].ID == change.ID {
					s.nodes[i].Width = change.Dimensions.Width
				}
			}
		case models.ChangeSelect:
			for i := range s.nodes {
				if s.nodes[i].ID == change.ID {
					s.nodes[i].Selected = change.Selected
				}
			}
		}
	}
}

// ApplyEdgeChanges is the local edge reducer.
func (s *DiagramSession) ApplyEdgeChanges(changes []models.EdgeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, change := range changes {
		switch change.Kind {
		case models.ChangeRemove:
			kept := s.edges[:0]
			for _, e := range s.edges {
				if e.ID != change.ID {
					kept = append(kept, e)
				}
			}
			s.edges = kept
		case models.ChangeSelect:
			for i := range s.edges {
				if s.edges[i].ID == change.ID {
					s.edges[i].Selected = change.Selected
				}
			}
		}
	}
}
