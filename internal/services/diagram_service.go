package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"schemacanvas/internal/models"
	"schemacanvas/internal/utils"
)

// DomainStore is the authoritative service holding tables, fields and
// relationships. Implemented by repositories.ProjectStore in
// production and by fakes in tests.
type DomainStore interface {
	ListTables(ctx context.Context) ([]models.Table, error)
	ListRelationships(ctx context.Context) ([]models.Relationship, error)
	GetField(ctx context.Context, tableID, fieldID string) (*models.Field, error)
	CreateRelationship(ctx context.Context, spec models.RelationshipSpec) (*models.Relationship, error)
	UpdateTables(ctx context.Context, update func([]models.Table) []models.Table) error
	RemoveRelationships(ctx context.Context, ids []string) error
}

// DiagramService reconciles the canvas client's gesture events with the
// domain store and keeps the session's mirrored node/edge state
// current. One instance serves one project's diagram.
type DiagramService struct {
	store    DomainStore
	session  *DiagramSession
	notifier Notifier
	log      zerolog.Logger
}

func NewDiagramService(store DomainStore, session *DiagramSession, notifier Notifier, logger zerolog.Logger) *DiagramService {
	return &DiagramService{
		store:    store,
		session:  session,
		notifier: notifier,
		log:      logger,
	}
}

// Session exposes the mirrored canvas state.
func (s *DiagramService) Session() *DiagramSession {
	return s.session
}

// Refresh re-runs both projections from the domain store and resets the
// session's committed state. Nodes and edges are total functions of the
// domain collections, so refreshing with unchanged data is a no-op in
// everything but identity.
func (s *DiagramService) Refresh(ctx context.Context) ([]models.Node, []models.Edge, error) {
	tables, err := s.store.ListTables(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tables: %w", err)
	}
	relationships, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list relationships: %w", err)
	}

	nodes := TablesToNodes(tables)
	edges := RelationshipsToEdges(relationships)
	s.session.Reset(nodes, edges)
	return s.session.Nodes(), s.session.Edges(), nil
}

// AttemptConnect validates a user-drawn connection and, when permitted,
// creates the backing relationship and inserts its edge. Unresolvable
// handles and unknown fields abort silently: they are stale-state
// artifacts, not user errors. A type mismatch is a user error and
// raises exactly one notification. Either the relationship and its
// edge both come into existence, or neither does.
func (s *DiagramService) AttemptConnect(ctx context.Context, conn models.Connection) (*models.Edge, error) {
	sourceFieldID := FieldIDFromHandle(conn.SourceHandle)
	targetFieldID := FieldIDFromHandle(conn.TargetHandle)
	if sourceFieldID == "" || targetFieldID == "" {
		return nil, nil
	}

	sourceField, err := s.store.GetField(ctx, conn.Source, sourceFieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up source field: %w", err)
	}
	targetField, err := s.store.GetField(ctx, conn.Target, targetFieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up target field: %w", err)
	}
	if sourceField == nil || targetField == nil {
		s.log.Debug().
			Str("source_handle", conn.SourceHandle).
			Str("target_handle", conn.TargetHandle).
			Msg("connection dropped: handle does not resolve to a field")
		return nil, nil
	}

	if sourceField.Type != targetField.Type {
		s.notifier.Notify(Notification{
			Kind:     KindIncompatibleFieldTypes,
			Severity: SeverityDestructive,
			Message:  "field types do not match",
		})
		return nil, nil
	}

	// Ordinal for the new edge comes from the pre-creation relationship
	// list: an appended relationship gets the next unused slot.
	relationships, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	ordinal := BuildTargetHandleIndex(relationships)[HandleKey{
		TableID: conn.Target,
		FieldID: targetFieldID,
	}]

	rel, err := s.store.CreateRelationship(ctx, models.RelationshipSpec{
		SourceTableID: conn.Source,
		SourceFieldID: sourceFieldID,
		TargetTableID: conn.Target,
		TargetFieldID: targetFieldID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", err)
	}

	edge := models.Edge{
		ID:           rel.ID,
		Source:       rel.SourceTableID,
		Target:       rel.TargetTableID,
		SourceHandle: SourceHandle(rel.SourceFieldID),
		TargetHandle: TargetHandle(ordinal, rel.TargetFieldID),
		Relationship: rel,
	}
	s.session.InsertEdge(edge)

	s.log.Info().
		Str("relationship_id", rel.ID).
		Str("source_table", rel.SourceTableID).
		Str("target_table", rel.TargetTableID).
		Msg("relationship created from canvas connection")
	return &edge, nil
}

// ApplyNodeChanges runs one reconciliation pass over a node gesture
// batch. Committable changes are folded into a single whole-collection
// domain write; the raw batch is always forwarded to the session
// reducer afterward so in-flight visuals stay responsive.
func (s *DiagramService) ApplyNodeChanges(ctx context.Context, changes []models.NodeChange) error {
	moved := make(map[string]models.Position)
	resized := make(map[string]float64)
	removed := make(map[string]bool)

	for _, change := range changes {
		switch change.Kind {
		case models.ChangePosition:
			// Mid-drag records would flood the store with intermediate
			// positions; only the completed drag commits.
			if !change.Dragging && change.Position != nil {
				moved[change.ID] = *change.Position
			}
		case models.ChangeDimensions:
			// Width is captured live while the pointer is resizing; the
			// engine does not flag a distinct resize-complete record.
			if change.Resizing && change.Dimensions != nil {
				resized[change.ID] = change.Dimensions.Width
			}
		case models.ChangeRemove:
			removed[change.ID] = true
		}
	}

	if len(moved) > 0 || len(resized) > 0 || len(removed) > 0 {
		err := s.store.UpdateTables(ctx, func(tables []models.Table) []models.Table {
			next := make([]models.Table, 0, len(tables))
			for _, table := range tables {
				if removed[table.ID] {
					continue
				}
				if pos, ok := moved[table.ID]; ok {
					table.X = pos.X
					table.Y = pos.Y
				}
				if width, ok := resized[table.ID]; ok {
					w := width
					table.Width = &w
				}
				next = append(next, table)
			}
			return next
		})
		if err != nil {
			return fmt.Errorf("failed to commit table changes: %w", err)
		}
		s.log.Debug().
			Int("moved", len(moved)).
			Int("resized", len(resized)).
			Int("removed", len(removed)).
			Msg("committed node batch")
	}

	s.session.ApplyNodeChanges(changes)
	return nil
}

// ApplyEdgeChanges runs one reconciliation pass over an edge gesture
// batch: removals cascade to their backing relationships, selection
// rewrites the transient visual flags, and the raw batch is forwarded
// to the session reducer.
func (s *DiagramService) ApplyEdgeChanges(ctx context.Context, changes []models.EdgeChange) error {
	var removedEdges []string
	var selected []string
	hasSelection := false

	for _, change := range changes {
		switch change.Kind {
		case models.ChangeRemove:
			removedEdges = append(removedEdges, change.ID)
		case models.ChangeSelect:
			hasSelection = true
			if change.Selected {
				selected = append(selected, change.ID)
			}
		}
	}

	if len(removedEdges) > 0 {
		if err := s.removeEdges(ctx, removedEdges); err != nil {
			return err
		}
	}

	if hasSelection {
		// Full rewrite, not an incremental patch: every edge's flags are
		// recomputed from this batch alone.
		s.session.RewriteEdges(func(edges []models.Edge) []models.Edge {
			for i := range edges {
				active := utils.Contains(selected, edges[i].ID)
				edges[i].Elevated = active
				edges[i].Emphasized = active
			}
			return edges
		})
	}

	s.session.ApplyEdgeChanges(changes)
	return nil
}

// removeEdges resolves removed edges to their backing relationship ids
// and issues one batched removal. Edges without a resolvable
// relationship are skipped per item.
func (s *DiagramService) removeEdges(ctx context.Context, edgeIDs []string) error {
	relationshipIDs := make([]string, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		edge, ok := s.session.GetEdgeByID(id)
		if !ok || edge.Relationship == nil || edge.Relationship.ID == "" {
			s.log.Debug().Str("edge_id", id).Msg("removed edge has no backing relationship, skipping")
			continue
		}
		relationshipIDs = append(relationshipIDs, edge.Relationship.ID)
	}
	if len(relationshipIDs) == 0 {
		return nil
	}
	if err := s.store.RemoveRelationships(ctx, relationshipIDs); err != nil {
		return fmt.Errorf("failed to remove relationships: %w", err)
	}
	return nil
}
