package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

func testRegionModel() *model.Region {
	return &model.Region{
		Name:    "Ironhold",
		Climate: "alpine",
		Population: model.Population{
			Faction:     "Mountain Clans",
			Language:    "Dwarvish",
			Religion:    "Forge cult",
			Disposition: "wary",
		},
		Cities: []string{"Deephall"},
	}
}

func TestRegionRepository_Create_InitializesEmptyMembership(t *testing.T) {
	db := &fakeDB{
		queryResults: [][]interface{}{{
			okResult(map[string]interface{}{
				"id":         "region:ironhold",
				"created_on": "2026-01-10T12:00:00Z",
				"updated_on": "2026-01-10T12:00:00Z",
			}),
		}},
	}
	repo := NewRegionRepository(db)

	region := testRegionModel()
	if err := repo.Create(context.Background(), region); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	query := db.queries[0]
	if !strings.Contains(query, "entities: []") || !strings.Contains(query, "identities: []") {
		t.Error("new regions must start with empty membership sets")
	}

	if region.ID != "region:ironhold" {
		t.Errorf("expected created record id, got %q", region.ID)
	}
	if region.Entities == nil || region.Identities == nil {
		t.Error("membership sets must be non-nil after create")
	}
}

func TestRegionRepository_Create_DuplicateName(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("index idx_region_name already exists")}
	repo := NewRegionRepository(db)

	err := repo.Create(context.Background(), testRegionModel())
	if !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestRegionRepository_GetByID_MissingIsNil(t *testing.T) {
	db := &fakeDB{queryOneErr: database.ErrNotFound}
	repo := NewRegionRepository(db)

	region, err := repo.GetByID(context.Background(), "region:gone")
	if err != nil {
		t.Fatalf("expected no error for a missing region, got %v", err)
	}
	if region != nil {
		t.Error("expected nil for a missing region")
	}
}

// The entities membership set stores record values, so the expansion must
// compare records against records. A string cast on either side makes the
// comparison type-mismatch and silently match nothing.
func TestRegionRepository_GetEntities_ComparesRecords(t *testing.T) {
	db := &fakeDB{
		queryResults: [][]interface{}{{
			okResult(map[string]interface{}{
				"id":      "entity:goblin",
				"name":    "Goblin",
				"health":  float64(7),
				"actions": []interface{}{},
			}),
		}},
	}
	repo := NewRegionRepository(db)

	entities, err := repo.GetEntities(context.Background(), "region:ironhold")
	if err != nil {
		t.Fatalf("GetEntities failed: %v", err)
	}

	query := db.queries[0]
	if !strings.Contains(query, "WHERE id IN (SELECT VALUE entities") {
		t.Errorf("expected record membership test, got: %s", query)
	}
	if strings.Contains(query, "<string>") {
		t.Errorf("membership test must not cast ids to strings, got: %s", query)
	}
	if db.vars[0]["id"] != "region:ironhold" {
		t.Errorf("expected region id variable, got %v", db.vars[0])
	}

	if len(entities) != 1 || entities[0].Name != "Goblin" {
		t.Errorf("expected the expanded member, got %+v", entities)
	}
}

func TestRegionRepository_GetIdentities_ComparesNames(t *testing.T) {
	db := &fakeDB{
		queryResults: [][]interface{}{{
			okResult(map[string]interface{}{
				"id":        "identity:grim",
				"name":      "Grim",
				"title":     "Warden of the Deep",
				"alignment": "lawful good",
				"location":  "Ironhold",
			}),
		}},
	}
	repo := NewRegionRepository(db)

	identities, err := repo.GetIdentities(context.Background(), "region:ironhold")
	if err != nil {
		t.Fatalf("GetIdentities failed: %v", err)
	}

	// The identities set stores plain names, not records
	if !strings.Contains(db.queries[0], "WHERE name IN (SELECT VALUE identities") {
		t.Errorf("expected name membership test, got: %s", db.queries[0])
	}

	if len(identities) != 1 || identities[0].Name != "Grim" {
		t.Errorf("expected the expanded member, got %+v", identities)
	}
}

func TestRegionRepository_Update_LeavesMembershipAlone(t *testing.T) {
	db := &fakeDB{}
	repo := NewRegionRepository(db)

	region := testRegionModel()
	region.ID = "region:ironhold"
	if err := repo.Update(context.Background(), region); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	query := db.queries[0]
	if strings.Contains(query, "entities") || strings.Contains(query, "identities") {
		t.Errorf("region updates must not touch membership sets, got: %s", query)
	}
}
