package repositories

import (
	"context"

	"github.com/google/uuid"

	"schemacanvas/internal/models"
)

// ProjectStore binds the table and relationship repositories to a
// single project, giving the diagram layer its domain-store handle
// without threading project ids through every call.
type ProjectStore struct {
	projectID     uuid.UUID
	tables        *TableRepository
	relationships *RelationshipRepository
}

func NewProjectStore(projectID uuid.UUID, tables *TableRepository, relationships *RelationshipRepository) *ProjectStore {
	return &ProjectStore{
		projectID:     projectID,
		tables:        tables,
		relationships: relationships,
	}
}

func (s *ProjectStore) ListTables(ctx context.Context) ([]models.Table, error) {
	return s.tables.ListByProject(ctx, s.projectID)
}

func (s *ProjectStore) ListRelationships(ctx context.Context) ([]models.Relationship, error) {
	return s.relationships.ListByProject(ctx, s.projectID)
}

func (s *ProjectStore) GetField(ctx context.Context, tableID, fieldID string) (*models.Field, error) {
	return s.tables.GetField(ctx, s.projectID, tableID, fieldID)
}

func (s *ProjectStore) CreateRelationship(ctx context.Context, spec models.RelationshipSpec) (*models.Relationship, error) {
	return s.relationships.Create(ctx, s.projectID, spec)
}

func (s *ProjectStore) UpdateTables(ctx context.Context, update func([]models.Table) []models.Table) error {
	return s.tables.UpdateAll(ctx, s.projectID, update)
}

func (s *ProjectStore) RemoveRelationships(ctx context.Context, ids []string) error {
	return s.relationships.DeleteByIDs(ctx, s.projectID, ids)
}
