package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ravenhold/realm-api/internal/model"
)

type mockIdentityRepo struct {
	identities map[string]*model.Identity
	nameIndex  map[string]*model.Identity

	// identity name -> region record id, mirroring what the membership
	// statements would leave behind
	memberships map[string]string
}

func newMockIdentityRepo() *mockIdentityRepo {
	return &mockIdentityRepo{
		identities:  make(map[string]*model.Identity),
		nameIndex:   make(map[string]*model.Identity),
		memberships: make(map[string]string),
	}
}

func (m *mockIdentityRepo) GetByID(ctx context.Context, id string) (*model.Identity, error) {
	return m.identities[id], nil
}

func (m *mockIdentityRepo) GetByName(ctx context.Context, name string) (*model.Identity, error) {
	return m.nameIndex[name], nil
}

func (m *mockIdentityRepo) List(ctx context.Context) ([]model.Identity, error) {
	result := make([]model.Identity, 0, len(m.identities))
	for _, i := range m.identities {
		result = append(result, *i)
	}
	return result, nil
}

func (m *mockIdentityRepo) CreateInRegion(ctx context.Context, identity *model.Identity, regionID, entityID string) error {
	identity.ID = "identity:" + identity.Name
	identity.CreatedOn = time.Now()
	identity.UpdatedOn = time.Now()
	m.identities[identity.ID] = identity
	m.nameIndex[identity.Name] = identity
	m.memberships[identity.Name] = regionID
	return nil
}

func (m *mockIdentityRepo) UpdateInRegion(ctx context.Context, identity *model.Identity, oldName, regionID, entityID string) error {
	if oldName != identity.Name {
		delete(m.nameIndex, oldName)
		delete(m.memberships, oldName)
	}
	identity.UpdatedOn = time.Now()
	m.identities[identity.ID] = identity
	m.nameIndex[identity.Name] = identity
	m.memberships[identity.Name] = regionID
	return nil
}

func (m *mockIdentityRepo) DeleteWithMembership(ctx context.Context, id, name string) error {
	delete(m.identities, id)
	delete(m.nameIndex, name)
	delete(m.memberships, name)
	return nil
}

// Test helper wiring the identity service to seeded entity and region mocks
func setupIdentityService(t *testing.T) (*IdentityService, *mockIdentityRepo, *mockEntityRepo, *mockRegionRepo) {
	t.Helper()

	identityRepo := newMockIdentityRepo()
	entityRepo := newMockEntityRepo()
	regionRepo := newMockRegionRepo()

	entityRepo.Create(context.Background(), &model.Entity{
		Name:   "Goblin",
		Health: 30,
		Actions: []model.Action{
			{Attack: "Stab", Weapon: "Rusty Dagger", Damage: 4},
		},
	})
	regionRepo.Create(context.Background(), &model.Region{
		Name:    "Ironhold",
		Climate: "alpine",
	})
	regionRepo.Create(context.Background(), &model.Region{
		Name:    "Mirelands",
		Climate: "swamp",
	})

	return NewIdentityService(identityRepo, entityRepo, regionRepo), identityRepo, entityRepo, regionRepo
}

func validIdentityRequest() model.CreateIdentityRequest {
	return model.CreateIdentityRequest{
		Name:        "Grim",
		Title:       "Sellsword",
		Appearance:  "scarred, one eye",
		Personality: "blunt",
		Entity:      "Goblin",
		Alignment:   "chaotic neutral",
		Money:       intPtr(25),
		Location:    "Ironhold",
	}
}

func TestIdentityService_Create_Success(t *testing.T) {
	identityService, identityRepo, _, _ := setupIdentityService(t)
	ctx := context.Background()

	identity, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if identity.ID == "" {
		t.Error("expected record id to be assigned")
	}
	if identity.Location != "Ironhold" {
		t.Errorf("expected location Ironhold, got %s", identity.Location)
	}
	if identity.Entity.Name != "Goblin" || identity.Entity.Health != 30 {
		t.Errorf("expected embedded entity snapshot, got %+v", identity.Entity)
	}
	if len(identity.Entity.Actions) != 1 {
		t.Errorf("expected snapshot to carry actions, got %d", len(identity.Entity.Actions))
	}
	if identityRepo.memberships["Grim"] != "region:Ironhold" {
		t.Errorf("expected membership in region:Ironhold, got %s", identityRepo.memberships["Grim"])
	}
}

func TestIdentityService_Create_SnapshotIsDetached(t *testing.T) {
	identityService, _, entityRepo, _ := setupIdentityService(t)
	ctx := context.Background()

	identity, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A later template edit must not rewrite the character
	entityRepo.nameIndex["Goblin"].Health = 99

	if identity.Entity.Health != 30 {
		t.Errorf("snapshot should keep the health at write time, got %d", identity.Entity.Health)
	}
}

func TestIdentityService_Create_DuplicateName(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	if _, err := identityService.Create(ctx, validIdentityRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := identityService.Create(ctx, validIdentityRequest())
	if !errors.Is(err, ErrIdentityNameExists) {
		t.Errorf("expected ErrIdentityNameExists, got %v", err)
	}
}

func TestIdentityService_Create_UnknownRegion(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	req := validIdentityRequest()
	req.Location = "Atlantis"

	_, err := identityService.Create(ctx, req)
	if !errors.Is(err, ErrUnknownRegionRef) {
		t.Errorf("expected ErrUnknownRegionRef, got %v", err)
	}
}

func TestIdentityService_Create_UnknownEntity(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	req := validIdentityRequest()
	req.Entity = "Dragon"

	_, err := identityService.Create(ctx, req)
	if !errors.Is(err, ErrUnknownEntityRef) {
		t.Errorf("expected ErrUnknownEntityRef, got %v", err)
	}
}

func TestIdentityService_Get_NotFound(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	_, err := identityService.Get(ctx, "identity:missing")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestIdentityService_List_RedactsPrivateFields(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	if _, err := identityService.Create(ctx, validIdentityRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	summaries, err := identityService.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 identity, got %d", len(summaries))
	}
	summary := summaries[0]
	if summary.Name != "Grim" || summary.Title != "Sellsword" {
		t.Errorf("expected public fields in summary, got %+v", summary)
	}
	if summary.Entity.Name != "Goblin" {
		t.Errorf("expected entity snapshot in summary, got %+v", summary.Entity)
	}
}

func TestIdentityService_Update_MovesRegionMembership(t *testing.T) {
	identityService, identityRepo, _, _ := setupIdentityService(t)
	ctx := context.Background()

	created, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := model.UpdateIdentityRequest(validIdentityRequest())
	req.Location = "Mirelands"

	updated, err := identityService.Update(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Location != "Mirelands" {
		t.Errorf("expected location Mirelands, got %s", updated.Location)
	}
	if identityRepo.memberships["Grim"] != "region:Mirelands" {
		t.Errorf("expected membership moved to region:Mirelands, got %s", identityRepo.memberships["Grim"])
	}
}

func TestIdentityService_Update_RenameReleasesOldName(t *testing.T) {
	identityService, identityRepo, _, _ := setupIdentityService(t)
	ctx := context.Background()

	created, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := model.UpdateIdentityRequest(validIdentityRequest())
	req.Name = "Grimnir"

	updated, err := identityService.Update(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Grimnir" {
		t.Errorf("expected renamed identity, got %s", updated.Name)
	}
	if _, ok := identityRepo.memberships["Grim"]; ok {
		t.Error("old name must be pulled from region membership on rename")
	}
	if identityRepo.memberships["Grimnir"] != "region:Ironhold" {
		t.Errorf("expected new name in membership, got %s", identityRepo.memberships["Grimnir"])
	}
}

func TestIdentityService_Update_RenameToTakenName(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	created, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := validIdentityRequest()
	other.Name = "Vex"
	if _, err := identityService.Create(ctx, other); err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	req := model.UpdateIdentityRequest(validIdentityRequest())
	req.Name = "Vex"

	_, err = identityService.Update(ctx, created.ID, req)
	if !errors.Is(err, ErrIdentityNameExists) {
		t.Errorf("expected ErrIdentityNameExists, got %v", err)
	}
}

func TestIdentityService_Update_UnknownEntity(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	created, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := model.UpdateIdentityRequest(validIdentityRequest())
	req.Entity = "Lich"

	_, err = identityService.Update(ctx, created.ID, req)
	if !errors.Is(err, ErrUnknownEntityRef) {
		t.Errorf("expected ErrUnknownEntityRef, got %v", err)
	}
}

func TestIdentityService_Update_NotFound(t *testing.T) {
	identityService, _, _, _ := setupIdentityService(t)
	ctx := context.Background()

	req := model.UpdateIdentityRequest(validIdentityRequest())
	_, err := identityService.Update(ctx, "identity:missing", req)
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestIdentityService_Delete(t *testing.T) {
	identityService, identityRepo, _, _ := setupIdentityService(t)
	ctx := context.Background()

	created, err := identityService.Create(ctx, validIdentityRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := identityService.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := identityRepo.memberships["Grim"]; ok {
		t.Error("membership must be pulled when the identity is deleted")
	}

	if err := identityService.Delete(ctx, created.ID); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("expected ErrIdentityNotFound on second delete, got %v", err)
	}
}
