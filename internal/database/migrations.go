package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func RunMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	migrations := []string{
		createProjectsTable,
		createTablesTable,
		createFieldsTable,
		createRelationshipsTable,
	}

	for i, migration := range migrations {
		log.Info().Msgf("Running migration %d/%d", i+1, len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  name TEXT NOT NULL,
  description TEXT,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const createTablesTable = `
CREATE TABLE IF NOT EXISTS tables (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  x DOUBLE PRECISION NOT NULL DEFAULT 0,
  y DOUBLE PRECISION NOT NULL DEFAULT 0,
  width DOUBLE PRECISION,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tables_project_id ON tables(project_id);
`

const createFieldsTable = `
CREATE TABLE IF NOT EXISTS fields (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  table_id UUID NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  field_type TEXT NOT NULL,
  ordinal INT NOT NULL,
  UNIQUE (table_id, ordinal)
);

CREATE INDEX IF NOT EXISTS idx_fields_table_id ON fields(table_id);
`

// Deleting a table cascades here through the table foreign keys, which
// is what removes a table's relationships in bulk without a separate
// cleanup pass.
const createRelationshipsTable = `
CREATE TABLE IF NOT EXISTS relationships (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
  source_table_id UUID NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
  source_field_id UUID NOT NULL REFERENCES fields(id) ON DELETE CASCADE,
  target_table_id UUID NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
  target_field_id UUID NOT NULL REFERENCES fields(id) ON DELETE CASCADE,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  UNIQUE (source_table_id, source_field_id, target_table_id, target_field_id)
);

CREATE INDEX IF NOT EXISTS idx_relationships_project_id ON relationships(project_id);
CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_table_id, target_field_id);
`
