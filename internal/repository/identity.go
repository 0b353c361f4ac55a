package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// IdentityRepository handles identity (player character) data access.
//
// Identity writes touch two collections: the identity document itself and
// the membership sets on region records. Those statements run in one
// SurrealDB transaction so a failure can never leave a character listed in
// a region it is not in, or vice versa.
type IdentityRepository struct {
	db database.Database
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db database.Database) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// GetByID retrieves an identity by record ID
func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*model.Identity, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	identity, err := parseIdentityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}

// GetByName retrieves an identity by its unique name
func (r *IdentityRepository) GetByName(ctx context.Context, name string) (*model.Identity, error) {
	query := `SELECT * FROM identity WHERE name = $name LIMIT 1`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	identity, err := parseIdentityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}

// List retrieves all identities
func (r *IdentityRepository) List(ctx context.Context) ([]model.Identity, error) {
	query := `SELECT * FROM identity ORDER BY name`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseIdentityList(results)
}

// Membership statements shared by the create and update flows. The pull is
// a no-op when no region lists the name; the union is a no-op when the
// target region already lists it.
const (
	pullIdentityQuery = `UPDATE region SET identities -= $name, updated_on = time::now() WHERE $name IN identities`

	addMembershipQuery = `UPDATE type::record($region_id) SET
		identities = array::union(identities, [$name]),
		entities = array::union(entities, [type::record($entity_id)]),
		updated_on = time::now()`
)

// CreateInRegion creates the identity and records its membership in the
// target region in one transaction. The identity's name is first pulled
// from any region currently listing it; the pull is scoped to regions that
// actually contain the name rather than scanning the whole collection.
func (r *IdentityRepository) CreateInRegion(ctx context.Context, identity *model.Identity, regionID, entityID string) error {
	tb := database.NewTxBuilder()

	tb.Add(pullIdentityQuery, map[string]interface{}{"name": identity.Name})
	tb.Add(addMembershipQuery, map[string]interface{}{
		"region_id": regionID,
		"name":      identity.Name,
		"entity_id": entityID,
	})
	tb.Add(`
		CREATE identity CONTENT {
			name: $name,
			title: $title,
			appearance: $appearance,
			personality: $personality,
			entity: $entity,
			alignment: $alignment,
			money: $money,
			location: $location,
			created_on: time::now(),
			updated_on: time::now()
		}
	`, identityVars(identity))

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: identity name already exists", database.ErrDuplicate)
		}
		return err
	}

	if len(results) < 3 {
		return errors.New("unexpected transaction result")
	}
	created, err := extractCreatedRecord(results[2:])
	if err != nil {
		return err
	}

	identity.ID = created.ID
	identity.CreatedOn = created.CreatedOn
	identity.UpdatedOn = created.UpdatedOn
	return nil
}

// UpdateInRegion replaces the identity and moves its membership to the
// target region in one transaction. oldName is the name the identity held
// before this update; on a rename both names are pulled so no region keeps
// listing the stale one.
func (r *IdentityRepository) UpdateInRegion(ctx context.Context, identity *model.Identity, oldName, regionID, entityID string) error {
	tb := database.NewTxBuilder()

	if oldName != identity.Name {
		tb.Add(pullIdentityQuery, map[string]interface{}{"name": oldName})
	}
	tb.Add(pullIdentityQuery, map[string]interface{}{"name": identity.Name})
	tb.Add(addMembershipQuery, map[string]interface{}{
		"region_id": regionID,
		"name":      identity.Name,
		"entity_id": entityID,
	})
	vars := identityVars(identity)
	vars["id"] = identity.ID
	tb.Add(`
		UPDATE type::record($id) SET
			name = $name,
			title = $title,
			appearance = $appearance,
			personality = $personality,
			entity = $entity,
			alignment = $alignment,
			money = $money,
			location = $location,
			updated_on = time::now()
	`, vars)

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: identity name already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// DeleteWithMembership deletes the identity and pulls its name from any
// region listing it, atomically.
func (r *IdentityRepository) DeleteWithMembership(ctx context.Context, id, name string) error {
	return WithTransaction(ctx, r.db, func(tx database.Transaction) error {
		if err := tx.Execute(ctx, pullIdentityQuery, map[string]interface{}{"name": name}); err != nil {
			return err
		}
		return tx.Execute(ctx, `DELETE type::record($identity_id)`, map[string]interface{}{"identity_id": id})
	})
}

// Helper functions

func identityVars(identity *model.Identity) map[string]interface{} {
	return map[string]interface{}{
		"name":        identity.Name,
		"title":       identity.Title,
		"appearance":  identity.Appearance,
		"personality": identity.Personality,
		"entity": map[string]interface{}{
			"name":    identity.Entity.Name,
			"health":  identity.Entity.Health,
			"actions": actionsToMaps(identity.Entity.Actions),
		},
		"alignment": identity.Alignment,
		"money":     identity.Money,
		"location":  identity.Location,
	}
}

func parseIdentityResult(result interface{}) (*model.Identity, error) {
	data, err := resultDocument(result)
	if err != nil {
		return nil, err
	}
	return identityFromDocument(data)
}

func identityFromDocument(data map[string]interface{}) (*model.Identity, error) {
	if id, ok := data["id"]; ok {
		data["_id"] = convertSurrealID(id)
		delete(data, "id")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal(jsonBytes, &identity); err != nil {
		return nil, err
	}
	if identity.Entity.Actions == nil {
		identity.Entity.Actions = []model.Action{}
	}

	return &identity, nil
}

func parseIdentityList(results []interface{}) ([]model.Identity, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []model.Identity{}, nil
	}

	identities := make([]model.Identity, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		identity, err := identityFromDocument(data)
		if err != nil {
			return nil, err
		}
		identities = append(identities, *identity)
	}
	return identities, nil
}
