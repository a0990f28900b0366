package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"schemacanvas/internal/handlers"
	"schemacanvas/internal/models"
	"schemacanvas/internal/routes"
	"schemacanvas/internal/services"
)

type memoryStore struct {
	tables        []models.Table
	relationships []models.Relationship
	updateCalls   int
}

func (m *memoryStore) ListTables(ctx context.Context) ([]models.Table, error) {
	return m.tables, nil
}

func (m *memoryStore) ListRelationships(ctx context.Context) ([]models.Relationship, error) {
	return m.relationships, nil
}

func (m *memoryStore) GetField(ctx context.Context, tableID, fieldID string) (*models.Field, error) {
	for i := range m.tables {
		if m.tables[i].ID == tableID {
			return m.tables[i].GetField(fieldID), nil
		}
	}
	return nil, nil
}

func (m *memoryStore) CreateRelationship(ctx context.Context, spec models.RelationshipSpec) (*models.Relationship, error) {
	rel := models.Relationship{
		ID:            fmt.Sprintf("rel-%d", len(m.relationships)+1),
		SourceTableID: spec.SourceTableID,
		SourceFieldID: spec.SourceFieldID,
		TargetTableID: spec.TargetTableID,
		TargetFieldID: spec.TargetFieldID,
	}
	m.relationships = append(m.relationships, rel)
	return &rel, nil
}

func (m *memoryStore) UpdateTables(ctx context.Context, update func([]models.Table) []models.Table) error {
	m.updateCalls++
	m.tables = update(m.tables)
	return nil
}

func (m *memoryStore) RemoveRelationships(ctx context.Context, ids []string) error {
	return nil
}

func newTestRouter(store *memoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	manager := services.NewDiagramManager(func(uuid.UUID) services.DomainStore {
		return store
	}, zerolog.Nop())

	router := gin.New()
	api := router.Group("/api/v1")
	routes.NewDiagramRoutes(handlers.NewDiagramHandler(manager)).RegisterRoutes(api)
	return router
}

func seededStore() *memoryStore {
	return &memoryStore{
		tables: []models.Table{
			{ID: "t1", Name: "users", Fields: []models.Field{
				{ID: "fa", Name: "id", Type: "INT"},
			}},
			{ID: "t2", Name: "orders", Fields: []models.Field{
				{ID: "fx", Name: "user-id", Type: "INT"},
				{ID: "fy", Name: "note", Type: "VARCHAR"},
			}},
		},
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetDiagramProjectsNodesAndEdges(t *testing.T) {
	store := seededStore()
	store.relationships = []models.Relationship{
		{ID: "r1", SourceTableID: "t1", SourceFieldID: "fa", TargetTableID: "t2", TargetFieldID: "fx"},
	}
	router := newTestRouter(store)
	projectID := uuid.NewString()

	w := doJSON(t, router, http.MethodGet, "/api/v1/projects/"+projectID+"/diagram", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Nodes []models.Node `json:"nodes"`
			Edges []models.Edge `json:"edges"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Nodes, 2)
	require.Len(t, resp.Data.Edges, 1)
	require.Equal(t, "r1", resp.Data.Edges[0].ID)
}

func TestGetDiagramRejectsMalformedProjectID(t *testing.T) {
	router := newTestRouter(seededStore())

	w := doJSON(t, router, http.MethodGet, "/api/v1/projects/not-a-uuid/diagram", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectMismatchAnswers204AndLeavesNotification(t *testing.T) {
	router := newTestRouter(seededStore())
	projectID := uuid.NewString()
	base := "/api/v1/projects/" + projectID

	w := doJSON(t, router, http.MethodPost, base+"/diagram/connect", models.Connection{
		Source:       "t1",
		Target:       "t2",
		SourceHandle: services.SourceHandle("fa"),    // INT
		TargetHandle: services.TargetHandle(0, "fy"), // VARCHAR
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, base+"/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Notifications []services.Notification `json:"notifications"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Notifications, 1)
	require.Equal(t, services.KindIncompatibleFieldTypes, resp.Data.Notifications[0].Kind)

	// Draining empties the buffer.
	w = doJSON(t, router, http.MethodGet, base+"/notifications", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Data.Notifications)
}

func TestConnectSuccessAnswersCreatedEdge(t *testing.T) {
	router := newTestRouter(seededStore())
	projectID := uuid.NewString()

	w := doJSON(t, router, http.MethodPost, "/api/v1/projects/"+projectID+"/diagram/connect", models.Connection{
		Source:       "t1",
		Target:       "t2",
		SourceHandle: services.SourceHandle("fa"),
		TargetHandle: services.TargetHandle(0, "fx"),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Edge models.Edge `json:"edge"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "rel-1", resp.Data.Edge.ID)
	require.NotNil(t, resp.Data.Edge.Relationship)
}

func TestNodeChangesMidDragDoesNotCommit(t *testing.T) {
	store := seededStore()
	router := newTestRouter(store)
	projectID := uuid.NewString()
	base := "/api/v1/projects/" + projectID

	// Seed the session mirror first.
	w := doJSON(t, router, http.MethodGet, base+"/diagram", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/diagram/nodes/changes", gin.H{
		"changes": []models.NodeChange{
			{Kind: models.ChangePosition, ID: "t1", Position: &models.Position{X: 5, Y: 5}, Dragging: true},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, store.updateCalls)

	w = doJSON(t, router, http.MethodPost, base+"/diagram/nodes/changes", gin.H{
		"changes": []models.NodeChange{
			{Kind: models.ChangePosition, ID: "t1", Position: &models.Position{X: 5, Y: 5}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.updateCalls)
}
