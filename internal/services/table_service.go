package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"schemacanvas/internal/models"
	"schemacanvas/internal/repositories"
)

type TableService struct {
	tableRepo *repositories.TableRepository
}

func NewTableService(tableRepo *repositories.TableRepository) *TableService {
	return &TableService{
		tableRepo: tableRepo,
	}
}

type FieldSpec struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type CreateTableRequest struct {
	Name   string      `json:"name" binding:"required"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  *float64    `json:"width"`
	Fields []FieldSpec `json:"fields" binding:"required,min=1,dive"`
}

func (s *TableService) CreateTable(ctx context.Context, projectID uuid.UUID, req *CreateTableRequest) (*models.Table, error) {
	if err := s.validateCreateTableRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	table := &models.Table{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(req.Name),
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Fields: make([]models.Field, 0, len(req.Fields)),
	}
	for _, f := range req.Fields {
		table.Fields = append(table.Fields, models.Field{
			ID:   uuid.NewString(),
			Name: strings.TrimSpace(f.Name),
			Type: strings.ToUpper(strings.TrimSpace(f.Type)),
		})
	}

	if err := s.tableRepo.Create(ctx, projectID, table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

func (s *TableService) ListTables(ctx context.Context, projectID uuid.UUID) ([]models.Table, error) {
	return s.tableRepo.ListByProject(ctx, projectID)
}

// DeleteTable drops the table; relationships terminating on it are
// removed by the schema's cascade constraints.
func (s *TableService) DeleteTable(ctx context.Context, projectID uuid.UUID, tableID string) error {
	deleted, err := s.tableRepo.Delete(ctx, projectID, tableID)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if !deleted {
		return errors.New("table not found")
	}
	return nil
}

func (s *TableService) validateCreateTableRequest(req *CreateTableRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("table name must not be blank")
	}
	seen := make(map[string]bool, len(req.Fields))
	for _, f := range req.Fields {
		name := strings.ToLower(strings.TrimSpace(f.Name))
		if name == "" {
			return errors.New("field name must not be blank")
		}
		if seen[name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[name] = true
	}
	return nil
}
