package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// IdentityRepository defines the interface for identity storage
type IdentityRepository interface {
	GetByID(ctx context.Context, id string) (*model.Identity, error)
	GetByName(ctx context.Context, name string) (*model.Identity, error)
	List(ctx context.Context) ([]model.Identity, error)
	CreateInRegion(ctx context.Context, identity *model.Identity, regionID, entityID string) error
	UpdateInRegion(ctx context.Context, identity *model.Identity, oldName, regionID, entityID string) error
	DeleteWithMembership(ctx context.Context, id, name string) error
}

// IdentityService handles player character operations.
//
// Identity writes resolve two references by name before anything is
// persisted: the creature template (snapshotted into the identity) and the
// region the character lives in (which tracks the character's name in its
// membership set). The repository runs the resulting writes in a single
// transaction.
type IdentityService struct {
	identityRepo IdentityRepository
	entityRepo   EntityRepository
	regionRepo   RegionRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(identityRepo IdentityRepository, entityRepo EntityRepository, regionRepo RegionRepository) *IdentityService {
	return &IdentityService{
		identityRepo: identityRepo,
		entityRepo:   entityRepo,
		regionRepo:   regionRepo,
	}
}

// Create creates a new identity in its region
func (s *IdentityService) Create(ctx context.Context, req model.CreateIdentityRequest) (*model.Identity, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.identityRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrIdentityNameExists
	}

	region, entity, err := s.resolveRefs(ctx, req.Location, req.Entity)
	if err != nil {
		return nil, err
	}

	identity := &model.Identity{
		Name:        name,
		Title:       req.Title,
		Appearance:  req.Appearance,
		Personality: req.Personality,
		Entity:      entity.Snapshot(),
		Alignment:   req.Alignment,
		Money:       *req.Money,
		Location:    region.Name,
	}

	if err := s.identityRepo.CreateInRegion(ctx, identity, region.ID, entity.ID); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrIdentityNameExists
		}
		return nil, err
	}

	return identity, nil
}

// Get retrieves an identity by record ID
func (s *IdentityService) Get(ctx context.Context, id string) (*model.Identity, error) {
	identity, err := s.identityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrIdentityNotFound
	}
	return identity, nil
}

// List retrieves the redacted listing projection of all identities
func (s *IdentityService) List(ctx context.Context) ([]model.IdentitySummary, error) {
	identities, err := s.identityRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.IdentitySummary, 0, len(identities))
	for i := range identities {
		summaries = append(summaries, identities[i].Summary())
	}
	return summaries, nil
}

// Update replaces an identity, re-resolving its references and moving its
// region membership when the location changed
func (s *IdentityService) Update(ctx context.Context, id string, req model.UpdateIdentityRequest) (*model.Identity, error) {
	identity, err := s.identityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrIdentityNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name != identity.Name {
		existing, err := s.identityRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrIdentityNameExists
		}
	}

	region, entity, err := s.resolveRefs(ctx, req.Location, req.Entity)
	if err != nil {
		return nil, err
	}

	oldName := identity.Name

	identity.Name = name
	identity.Title = req.Title
	identity.Appearance = req.Appearance
	identity.Personality = req.Personality
	identity.Entity = entity.Snapshot()
	identity.Alignment = req.Alignment
	identity.Money = *req.Money
	identity.Location = region.Name

	if err := s.identityRepo.UpdateInRegion(ctx, identity, oldName, region.ID, entity.ID); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrIdentityNameExists
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete deletes an identity and removes it from its region's membership
func (s *IdentityService) Delete(ctx context.Context, id string) error {
	identity, err := s.identityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if identity == nil {
		return ErrIdentityNotFound
	}

	return s.identityRepo.DeleteWithMembership(ctx, id, identity.Name)
}

// resolveRefs resolves the location and entity names an identity payload
// points at. Either failing to resolve is an unprocessable reference, not
// a missing resource.
func (s *IdentityService) resolveRefs(ctx context.Context, location, entityName string) (*model.Region, *model.Entity, error) {
	region, err := s.regionRepo.GetByName(ctx, strings.TrimSpace(location))
	if err != nil {
		return nil, nil, err
	}
	if region == nil {
		return nil, nil, ErrUnknownRegionRef
	}

	entity, err := s.entityRepo.GetByName(ctx, strings.TrimSpace(entityName))
	if err != nil {
		return nil, nil, err
	}
	if entity == nil {
		return nil, nil, ErrUnknownEntityRef
	}

	return region, entity, nil
}
