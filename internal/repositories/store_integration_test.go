package repositories_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"schemacanvas/internal/database"
	"schemacanvas/internal/models"
	"schemacanvas/internal/repositories"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("schemacanvas_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.ConnectDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool))
	return pool
}

func newTable(name string, fieldTypes ...string) *models.Table {
	table := &models.Table{ID: uuid.NewString(), Name: name}
	for _, ft := range fieldTypes {
		table.Fields = append(table.Fields, models.Field{
			ID:   uuid.NewString(),
			Name: name + "-field-" + uuid.NewString()[:8],
			Type: ft,
		})
	}
	return table
}

func TestProjectStoreAgainstPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	projectRepo := repositories.NewProjectRepository(pool)
	tableRepo := repositories.NewTableRepository(pool)
	relRepo := repositories.NewRelationshipRepository(pool)

	project := &models.Project{Name: "inventory"}
	project.Prepare()
	require.NoError(t, projectRepo.Create(ctx, project))

	store := repositories.NewProjectStore(project.ID, tableRepo, relRepo)

	users := newTable("users", "INT", "VARCHAR")
	orders := newTable("orders", "INT", "VARCHAR")
	require.NoError(t, tableRepo.Create(ctx, project.ID, users))
	require.NoError(t, tableRepo.Create(ctx, project.ID, orders))

	t.Run("list tables with fields in declaration order", func(t *testing.T) {
		tables, err := store.ListTables(ctx)
		require.NoError(t, err)
		require.Len(t, tables, 2)
		require.Equal(t, users.ID, tables[0].ID)
		require.Len(t, tables[0].Fields, 2)
		require.Equal(t, users.Fields[0].ID, tables[0].Fields[0].ID)
		require.Equal(t, "INT", tables[0].Fields[0].Type)
	})

	t.Run("get field", func(t *testing.T) {
		field, err := store.GetField(ctx, users.ID, users.Fields[1].ID)
		require.NoError(t, err)
		require.NotNil(t, field)
		require.Equal(t, "VARCHAR", field.Type)

		missing, err := store.GetField(ctx, users.ID, uuid.NewString())
		require.NoError(t, err)
		require.Nil(t, missing)

		// A field id paired with the wrong table must not resolve.
		crossed, err := store.GetField(ctx, orders.ID, users.Fields[0].ID)
		require.NoError(t, err)
		require.Nil(t, crossed)
	})

	var relationshipID string
	t.Run("create relationship and list in insertion order", func(t *testing.T) {
		rel, err := store.CreateRelationship(ctx, models.RelationshipSpec{
			SourceTableID: users.ID,
			SourceFieldID: users.Fields[0].ID,
			TargetTableID: orders.ID,
			TargetFieldID: orders.Fields[0].ID,
		})
		require.NoError(t, err)
		relationshipID = rel.ID

		// The endpoint-uniqueness constraint rejects the duplicate.
		_, err = store.CreateRelationship(ctx, models.RelationshipSpec{
			SourceTableID: users.ID,
			SourceFieldID: users.Fields[0].ID,
			TargetTableID: orders.ID,
			TargetFieldID: orders.Fields[0].ID,
		})
		require.Error(t, err)

		rels, err := store.ListRelationships(ctx)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		require.Equal(t, relationshipID, rels[0].ID)
	})

	t.Run("update tables commits move and removal in one transaction", func(t *testing.T) {
		scratch := newTable("scratch", "INT")
		require.NoError(t, tableRepo.Create(ctx, project.ID, scratch))

		err := store.UpdateTables(ctx, func(tables []models.Table) []models.Table {
			next := make([]models.Table, 0, len(tables))
			for _, table := range tables {
				if table.ID == scratch.ID {
					continue
				}
				if table.ID == users.ID {
					table.X = 640
					table.Y = 220
					w := 300.0
					table.Width = &w
				}
				next = append(next, table)
			}
			return next
		})
		require.NoError(t, err)

		tables, err := store.ListTables(ctx)
		require.NoError(t, err)
		require.Len(t, tables, 2)
		require.Equal(t, 640.0, tables[0].X)
		require.Equal(t, 220.0, tables[0].Y)
		require.NotNil(t, tables[0].Width)
		require.Equal(t, 300.0, *tables[0].Width)
	})

	t.Run("table deletion cascades relationships", func(t *testing.T) {
		deleted, err := tableRepo.Delete(ctx, project.ID, orders.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		rels, err := store.ListRelationships(ctx)
		require.NoError(t, err)
		require.Empty(t, rels)
	})

	t.Run("remove relationships by id", func(t *testing.T) {
		replacement := newTable("shipments", "INT")
		require.NoError(t, tableRepo.Create(ctx, project.ID, replacement))

		rel, err := store.CreateRelationship(ctx, models.RelationshipSpec{
			SourceTableID: users.ID,
			SourceFieldID: users.Fields[0].ID,
			TargetTableID: replacement.ID,
			TargetFieldID: replacement.Fields[0].ID,
		})
		require.NoError(t, err)

		require.NoError(t, store.RemoveRelationships(ctx, []string{rel.ID}))

		rels, err := store.ListRelationships(ctx)
		require.NoError(t, err)
		require.Empty(t, rels)
	})

	t.Run("project deletion cascades everything", func(t *testing.T) {
		deleted, err := projectRepo.Delete(ctx, project.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		tables, err := store.ListTables(ctx)
		require.NoError(t, err)
		require.Empty(t, tables)
	})
}
