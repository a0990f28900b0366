package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StoreFactory builds a project-scoped DomainStore.
type StoreFactory func(projectID uuid.UUID) DomainStore

// ProjectDiagram bundles the per-project reconciliation state: the
// service, its session mirror, and the notification buffer the
// presentation layer drains.
type ProjectDiagram struct {
	Service       *DiagramService
	Notifications *NotificationBuffer
}

// DiagramManager hands out one ProjectDiagram per project, creating it
// lazily on first use.
type DiagramManager struct {
	mu       sync.Mutex
	factory  StoreFactory
	log      zerolog.Logger
	diagrams map[uuid.UUID]*ProjectDiagram
}

func NewDiagramManager(factory StoreFactory, logger zerolog.Logger) *DiagramManager {
	return &DiagramManager{
		factory:  factory,
		log:      logger,
		diagrams: make(map[uuid.UUID]*ProjectDiagram),
	}
}

func (m *DiagramManager) ForProject(projectID uuid.UUID) *ProjectDiagram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.diagrams[projectID]; ok {
		return d
	}

	notifications := NewNotificationBuffer()
	logger := m.log.With().Str("project_id", projectID.String()).Logger()
	d := &ProjectDiagram{
		Service:       NewDiagramService(m.factory(projectID), NewDiagramSession(), notifications, logger),
		Notifications: notifications,
	}
	m.diagrams[projectID] = d
	return d
}

// Evict drops a project's cached diagram state, e.g. after the project
// is deleted.
func (m *DiagramManager) Evict(projectID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.diagrams, projectID)
}
