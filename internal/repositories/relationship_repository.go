package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"schemacanvas/internal/models"
)

type RelationshipRepository struct {
	pool *pgxpool.Pool
}

func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{
		pool: pool,
	}
}

// ListByProject returns relationships in insertion order. The order
// feeds the target-handle ordinals, so it must be stable across reads.
func (r *RelationshipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Relationship, error) {
	query := `
		SELECT id, source_table_id, source_field_id, target_table_id, target_field_id, created_at
		FROM relationships
		WHERE project_id = $1
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]models.Relationship, 0)
	for rows.Next() {
		var rel models.Relationship
		err := rows.Scan(
			&rel.ID,
			&rel.SourceTableID,
			&rel.SourceFieldID,
			&rel.TargetTableID,
			&rel.TargetFieldID,
			&rel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		relationships = append(relationships, rel)
	}
	return relationships, rows.Err()
}

// Create inserts a relationship. The schema's foreign keys and the
// endpoint-uniqueness constraint reject invalid or duplicate
// connections; those rejections surface as the returned error.
func (r *RelationshipRepository) Create(ctx context.Context, projectID uuid.UUID, spec models.RelationshipSpec) (*models.Relationship, error) {
	rel := &models.Relationship{
		ID:            uuid.NewString(),
		SourceTableID: spec.SourceTableID,
		SourceFieldID: spec.SourceFieldID,
		TargetTableID: spec.TargetTableID,
		TargetFieldID: spec.TargetFieldID,
	}

	query := `
		INSERT INTO relationships (id, project_id, source_table_id, source_field_id, target_table_id, target_field_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		rel.ID, projectID, rel.SourceTableID, rel.SourceFieldID, rel.TargetTableID, rel.TargetFieldID,
	).Scan(&rel.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert relationship: %w", err)
	}
	return rel, nil
}

// DeleteByIDs removes the given relationships in one statement.
func (r *RelationshipRepository) DeleteByIDs(ctx context.Context, projectID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM relationships WHERE project_id = $1 AND id = ANY($2::uuid[])`
	if _, err := r.pool.Exec(ctx, query, projectID, ids); err != nil {
		return fmt.Errorf("failed to delete relationships: %w", err)
	}
	return nil
}
