package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schemacanvas/internal/models"
)

type TableRepository struct {
	pool *pgxpool.Pool
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{
		pool: pool,
	}
}

// ListByProject returns the project's tables with their fields in
// declaration order. Table order is insertion order so repeated reads
// see a stable sequence.
func (r *TableRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Table, error) {
	return listTables(ctx, r.pool, projectID, false)
}

// Create inserts the table and its fields in one transaction.
func (r *TableRepository) Create(ctx context.Context, projectID uuid.UUID, table *models.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tables (id, project_id, name, x, y, width)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.Exec(ctx, query, table.ID, projectID, table.Name, table.X, table.Y, table.Width); err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}

	for i, field := range table.Fields {
		query := `
			INSERT INTO fields (id, table_id, name, field_type, ordinal)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, query, field.ID, table.ID, field.Name, field.Type, i); err != nil {
			return fmt.Errorf("failed to insert field %q: %w", field.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetField resolves a field on a table. Returns nil without error when
// either the table or the field does not exist.
func (r *TableRepository) GetField(ctx context.Context, projectID uuid.UUID, tableID, fieldID string) (*models.Field, error) {
	query := `
		SELECT f.id, f.name, f.field_type
		FROM fields f
		JOIN tables t ON t.id = f.table_id
		WHERE t.project_id = $1 AND f.table_id = $2 AND f.id = $3`

	var field models.Field
	err := r.pool.QueryRow(ctx, query, projectID, tableID, fieldID).
		Scan(&field.ID, &field.Name, &field.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get field: %w", err)
	}
	return &field, nil
}

// UpdateAll applies a pure transform over the project's whole table
// collection as one read-modify-write transaction: survivors get their
// position and width written back, tables the transform dropped are
// deleted (cascading their fields and relationships). One call, one
// commit, however many tables the gesture batch touched.
func (r *TableRepository) UpdateAll(ctx context.Context, projectID uuid.UUID, update func([]models.Table) []models.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := listTables(ctx, tx, projectID, true)
	if err != nil {
		return err
	}

	next := update(current)

	kept := make(map[string]bool, len(next))
	for _, table := range next {
		kept[table.ID] = true
		query := `
			UPDATE tables
			SET name = $1, x = $2, y = $3, width = $4
			WHERE project_id = $5 AND id = $6`
		if _, err := tx.Exec(ctx, query, table.Name, table.X, table.Y, table.Width, projectID, table.ID); err != nil {
			return fmt.Errorf("failed to update table %s: %w", table.ID, err)
		}
	}

	for _, table := range current {
		if kept[table.ID] {
			continue
		}
		if _, err := tx.Exec(ctx, `DELETE FROM tables WHERE project_id = $1 AND id = $2`, projectID, table.ID); err != nil {
			return fmt.Errorf("failed to delete table %s: %w", table.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, projectID uuid.UUID, tableID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tables WHERE project_id = $1 AND id = $2`, projectID, tableID)
	if err != nil {
		return false, fmt.Errorf("failed to delete table: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listTables(ctx context.Context, q querier, projectID uuid.UUID, forUpdate bool) ([]models.Table, error) {
	query := `
		SELECT id, name, x, y, width
		FROM tables
		WHERE project_id = $1
		ORDER BY created_at, id`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables := make([]models.Table, 0)
	byID := make(map[string]int)
	tableIDs := make([]string, 0)
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.X, &t.Y, &t.Width); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		t.Fields = make([]models.Field, 0)
		byID[t.ID] = len(tables)
		tableIDs = append(tableIDs, t.ID)
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(tables) == 0 {
		return tables, nil
	}

	fieldQuery := `
		SELECT table_id, id, name, field_type
		FROM fields
		WHERE table_id = ANY($1::uuid[])
		ORDER BY table_id, ordinal`
	fieldRows, err := q.Query(ctx, fieldQuery, tableIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	defer fieldRows.Close()

	for fieldRows.Next() {
		var tableID string
		var f models.Field
		if err := fieldRows.Scan(&tableID, &f.ID, &f.Name, &f.Type); err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		if i, ok := byID[tableID]; ok {
			tables[i].Fields = append(tables[i].Fields, f)
		}
	}
	return tables, fieldRows.Err()
}
