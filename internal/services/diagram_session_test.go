package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"schemacanvas/internal/models"
	"schemacanvas/internal/services"
)

func TestSessionResetCarriesSelectionOver(t *testing.T) {
	session := services.NewDiagramSession()
	session.Reset(
		[]models.Node{{ID: "t1"}, {ID: "t2", Selected: true}},
		[]models.Edge{{ID: "e1", Selected: true, Elevated: true, Emphasized: true}},
	)

	// Re-projection after a domain change: same ids, fresh structs.
	session.Reset(
		[]models.Node{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}},
		[]models.Edge{{ID: "e1"}, {ID: "e2"}},
	)

	nodes := session.Nodes()
	require.False(t, nodes[0].Selected)
	require.True(t, nodes[1].Selected)
	require.False(t, nodes[2].Selected)

	edges := session.Edges()
	require.True(t, edges[0].Selected)
	require.True(t, edges[0].Elevated)
	require.True(t, edges[0].Emphasized)
	require.False(t, edges[1].Selected)
}

func TestSessionNodeReducer(t *testing.T) {
	session := services.NewDiagramSession()
	session.Reset([]models.Node{
		{ID: "t1", Position: models.Position{X: 1, Y: 1}, Width: 224},
		{ID: "t2"},
	}, nil)

	session.ApplyNodeChanges([]models.NodeChange{
		{Kind: models.ChangePosition, ID: "t1", Position: &models.Position{X: 7, Y: 8}, Dragging: true},
		{Kind: models.ChangeDimensions, ID: "t1", Dimensions: &models.Dimensions{Width: 400, Height: 100}},
		{Kind: models.ChangeSelect, ID: "t1", Selected: true},
		{Kind: models.ChangeRemove, ID: "t2"},
	})

	nodes := session.Nodes()
	require.Len(t, nodes, 1)
	require.Equal(t, models.Position{X: 7, Y: 8}, nodes[0].Position)
	require.Equal(t, 400.0, nodes[0].Width)
	require.True(t, nodes[0].Selected)
}

func TestSessionEdgeReducerAndLookups(t *testing.T) {
	session := services.NewDiagramSession()
	rel := &models.Relationship{ID: "r1"}
	session.Reset(nil, []models.Edge{{ID: "r1", Relationship: rel}, {ID: "r2"}})

	edge, ok := session.GetEdgeByID("r1")
	require.True(t, ok)
	require.Same(t, rel, edge.Relationship)

	_, ok = session.GetEdgeByID("missing")
	require.False(t, ok)

	session.ApplyEdgeChanges([]models.EdgeChange{
		{Kind: models.ChangeRemove, ID: "r2"},
		{Kind: models.ChangeSelect, ID: "r1", Selected: true},
	})
	edges := session.Edges()
	require.Len(t, edges, 1)
	require.True(t, edges[0].Selected)

	session.InsertEdge(models.Edge{ID: "r3"})
	_, ok = session.GetEdgeByID("r3")
	require.True(t, ok)
}
