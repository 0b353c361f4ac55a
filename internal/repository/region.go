package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// RegionRepository handles region data access. The identities and entities
// membership sets on a region are written by the identity flows in
// IdentityRepository; this repository only reads them back and expands them.
type RegionRepository struct {
	db database.Database
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db database.Database) *RegionRepository {
	return &RegionRepository{db: db}
}

// Create creates a new region with empty membership sets
func (r *RegionRepository) Create(ctx context.Context, region *model.Region) error {
	query := `
		CREATE region CONTENT {
			name: $name,
			climate: $climate,
			population: $population,
			cities: $cities,
			entities: [],
			identities: [],
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":       region.Name,
		"climate":    region.Climate,
		"population": populationToMap(region.Population),
		"cities":     stringsToSlice(region.Cities),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: region name already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	region.ID = created.ID
	region.Entities = []string{}
	region.Identities = []string{}
	region.CreatedOn = created.CreatedOn
	region.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a region by record ID
func (r *RegionRepository) GetByID(ctx context.Context, id string) (*model.Region, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	region, err := parseRegionResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return region, nil
}

// GetByName retrieves a region by its unique name
func (r *RegionRepository) GetByName(ctx context.Context, name string) (*model.Region, error) {
	query := `SELECT * FROM region WHERE name = $name LIMIT 1`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	region, err := parseRegionResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return region, nil
}

// List retrieves all regions
func (r *RegionRepository) List(ctx context.Context) ([]model.Region, error) {
	query := `SELECT * FROM region ORDER BY name`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseRegionList(results)
}

// Update replaces a region's descriptive fields. Membership sets are left
// untouched.
func (r *RegionRepository) Update(ctx context.Context, region *model.Region) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			climate = $climate,
			population = $population,
			cities = $cities,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":         region.ID,
		"name":       region.Name,
		"climate":    region.Climate,
		"population": populationToMap(region.Population),
		"cities":     stringsToSlice(region.Cities),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: region name already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// Delete deletes a region. Member identities and entities are independent
// records and are not cascaded.
func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// GetEntities expands the region's entity membership into full documents.
// The entities set stores record values (written via type::record by the
// identity flow), so the membership test compares records, not strings.
func (r *RegionRepository) GetEntities(ctx context.Context, regionID string) ([]model.Entity, error) {
	query := `SELECT * FROM entity WHERE id IN (SELECT VALUE entities FROM ONLY type::record($id)) ORDER BY name`
	vars := map[string]interface{}{"id": regionID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseEntityList(results)
}

// GetIdentities expands the region's identity membership into full documents
func (r *RegionRepository) GetIdentities(ctx context.Context, regionID string) ([]model.Identity, error) {
	query := `SELECT * FROM identity WHERE name IN (SELECT VALUE identities FROM ONLY type::record($id)) ORDER BY name`
	vars := map[string]interface{}{"id": regionID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseIdentityList(results)
}

// Helper functions

func populationToMap(p model.Population) map[string]interface{} {
	return map[string]interface{}{
		"faction":     p.Faction,
		"language":    p.Language,
		"religion":    p.Religion,
		"disposition": p.Disposition,
	}
}

// stringsToSlice converts a string slice to query variable form, mapping nil
// to an empty array so the stored field is always a set
func stringsToSlice(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func parseRegionResult(result interface{}) (*model.Region, error) {
	data, err := resultDocument(result)
	if err != nil {
		return nil, err
	}
	return regionFromDocument(data)
}

func regionFromDocument(data map[string]interface{}) (*model.Region, error) {
	if id, ok := data["id"]; ok {
		data["_id"] = convertSurrealID(id)
		delete(data, "id")
	}

	// entities holds record ids which the client may decode as complex
	// objects; normalize to strings before the JSON roundtrip
	entities := getIDSlice(data, "entities")
	delete(data, "entities")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var region model.Region
	if err := json.Unmarshal(jsonBytes, &region); err != nil {
		return nil, err
	}

	region.Entities = entities
	if region.Entities == nil {
		region.Entities = []string{}
	}
	if region.Identities == nil {
		region.Identities = []string{}
	}
	if region.Cities == nil {
		region.Cities = []string{}
	}

	return &region, nil
}

func parseRegionList(results []interface{}) ([]model.Region, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []model.Region{}, nil
	}

	regions := make([]model.Region, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		region, err := regionFromDocument(data)
		if err != nil {
			return nil, err
		}
		regions = append(regions, *region)
	}
	return regions, nil
}
