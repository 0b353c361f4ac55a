package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// EntityRepository defines the interface for entity storage
type EntityRepository interface {
	Create(ctx context.Context, entity *model.Entity) error
	GetByID(ctx context.Context, id string) (*model.Entity, error)
	GetByName(ctx context.Context, name string) (*model.Entity, error)
	List(ctx context.Context) ([]model.Entity, error)
	Update(ctx context.Context, entity *model.Entity) error
	Delete(ctx context.Context, id string) error
}

// EntityService handles creature template operations
type EntityService struct {
	entityRepo EntityRepository
}

// NewEntityService creates a new entity service
func NewEntityService(entityRepo EntityRepository) *EntityService {
	return &EntityService{entityRepo: entityRepo}
}

// Create creates a new entity
func (s *EntityService) Create(ctx context.Context, req model.CreateEntityRequest) (*model.Entity, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.entityRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEntityNameExists
	}

	entity := &model.Entity{
		Name:    name,
		Health:  *req.Health,
		Actions: req.Actions,
	}
	if entity.Actions == nil {
		entity.Actions = []model.Action{}
	}

	if err := s.entityRepo.Create(ctx, entity); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEntityNameExists
		}
		return nil, err
	}

	return entity, nil
}

// Get retrieves an entity by record ID
func (s *EntityService) Get(ctx context.Context, id string) (*model.Entity, error) {
	entity, err := s.entityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrEntityNotFound
	}
	return entity, nil
}

// List retrieves all entities
func (s *EntityService) List(ctx context.Context) ([]model.Entity, error) {
	return s.entityRepo.List(ctx)
}

// Update replaces an entity's fields
func (s *EntityService) Update(ctx context.Context, id string, req model.UpdateEntityRequest) (*model.Entity, error) {
	entity, err := s.entityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrEntityNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name != entity.Name {
		existing, err := s.entityRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEntityNameExists
		}
	}

	entity.Name = name
	entity.Health = *req.Health
	entity.Actions = req.Actions
	if entity.Actions == nil {
		entity.Actions = []model.Action{}
	}

	if err := s.entityRepo.Update(ctx, entity); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEntityNameExists
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete deletes an entity. Identities that embedded the entity keep their
// snapshots; regions keep the stale record id in their entities set.
func (s *EntityService) Delete(ctx context.Context, id string) error {
	entity, err := s.entityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entity == nil {
		return ErrEntityNotFound
	}

	return s.entityRepo.Delete(ctx, id)
}
