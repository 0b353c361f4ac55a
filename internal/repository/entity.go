package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// EntityRepository handles entity (creature template) data access
type EntityRepository struct {
	db database.Database
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(db database.Database) *EntityRepository {
	return &EntityRepository{db: db}
}

// Create creates a new entity
func (r *EntityRepository) Create(ctx context.Context, entity *model.Entity) error {
	query := `
		CREATE entity CONTENT {
			name: $name,
			health: $health,
			actions: $actions,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":    entity.Name,
		"health":  entity.Health,
		"actions": actionsToMaps(entity.Actions),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: entity name already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	entity.ID = created.ID
	entity.CreatedOn = created.CreatedOn
	entity.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an entity by record ID
func (r *EntityRepository) GetByID(ctx context.Context, id string) (*model.Entity, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entity, err := parseEntityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

// GetByName retrieves an entity by its unique name
func (r *EntityRepository) GetByName(ctx context.Context, name string) (*model.Entity, error) {
	query := `SELECT * FROM entity WHERE name = $name LIMIT 1`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entity, err := parseEntityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

// List retrieves all entities
func (r *EntityRepository) List(ctx context.Context) ([]model.Entity, error) {
	query := `SELECT * FROM entity ORDER BY name`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseEntityList(results)
}

// Update replaces an entity's fields
func (r *EntityRepository) Update(ctx context.Context, entity *model.Entity) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			health = $health,
			actions = $actions,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":      entity.ID,
		"name":    entity.Name,
		"health":  entity.Health,
		"actions": actionsToMaps(entity.Actions),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: entity name already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// Delete deletes an entity
func (r *EntityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// Helper functions

// actionsToMaps converts actions to plain maps for query variables
func actionsToMaps(actions []model.Action) []interface{} {
	out := make([]interface{}, 0, len(actions))
	for _, a := range actions {
		out = append(out, map[string]interface{}{
			"attack": a.Attack,
			"weapon": a.Weapon,
			"damage": a.Damage,
		})
	}
	return out
}

func parseEntityResult(result interface{}) (*model.Entity, error) {
	data, err := resultDocument(result)
	if err != nil {
		return nil, err
	}
	return entityFromDocument(data)
}

func entityFromDocument(data map[string]interface{}) (*model.Entity, error) {
	if id, ok := data["id"]; ok {
		data["_id"] = convertSurrealID(id)
		delete(data, "id")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var entity model.Entity
	if err := json.Unmarshal(jsonBytes, &entity); err != nil {
		return nil, err
	}
	if entity.Actions == nil {
		entity.Actions = []model.Action{}
	}

	return &entity, nil
}

func parseEntityList(results []interface{}) ([]model.Entity, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []model.Entity{}, nil
	}

	entities := make([]model.Entity, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		entity, err := entityFromDocument(data)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}
