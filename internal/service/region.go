package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// RegionRepository defines the interface for region storage
type RegionRepository interface {
	Create(ctx context.Context, region *model.Region) error
	GetByID(ctx context.Context, id string) (*model.Region, error)
	GetByName(ctx context.Context, name string) (*model.Region, error)
	List(ctx context.Context) ([]model.Region, error)
	Update(ctx context.Context, region *model.Region) error
	Delete(ctx context.Context, id string) error
	GetEntities(ctx context.Context, regionID string) ([]model.Entity, error)
	GetIdentities(ctx context.Context, regionID string) ([]model.Identity, error)
}

// RegionService handles world location operations
type RegionService struct {
	regionRepo RegionRepository
}

// NewRegionService creates a new region service
func NewRegionService(regionRepo RegionRepository) *RegionService {
	return &RegionService{regionRepo: regionRepo}
}

// Create creates a new region
func (s *RegionService) Create(ctx context.Context, req model.CreateRegionRequest) (*model.Region, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.regionRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRegionNameExists
	}

	region := &model.Region{
		Name:       name,
		Climate:    req.Climate,
		Population: *req.Population,
		Cities:     req.Cities,
	}
	if region.Cities == nil {
		region.Cities = []string{}
	}

	if err := s.regionRepo.Create(ctx, region); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrRegionNameExists
		}
		return nil, err
	}

	return region, nil
}

// Get retrieves a region by record ID
func (s *RegionService) Get(ctx context.Context, id string) (*model.Region, error) {
	region, err := s.regionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, ErrRegionNotFound
	}
	return region, nil
}

// List retrieves the lightweight listing projection of all regions
func (s *RegionService) List(ctx context.Context) ([]model.RegionSummary, error) {
	regions, err := s.regionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.RegionSummary, 0, len(regions))
	for i := range regions {
		summaries = append(summaries, regions[i].Summary())
	}
	return summaries, nil
}

// Update replaces a region's descriptive fields. Membership sets are owned
// by the identity write flow and are never touched here.
func (s *RegionService) Update(ctx context.Context, id string, req model.UpdateRegionRequest) (*model.Region, error) {
	region, err := s.regionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, ErrRegionNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name != region.Name {
		existing, err := s.regionRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrRegionNameExists
		}
	}

	region.Name = name
	region.Climate = req.Climate
	region.Population = *req.Population
	region.Cities = req.Cities
	if region.Cities == nil {
		region.Cities = []string{}
	}

	if err := s.regionRepo.Update(ctx, region); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrRegionNameExists
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete deletes a region. Member identities and entities are not cascaded;
// they simply stop being listed anywhere.
func (s *RegionService) Delete(ctx context.Context, id string) error {
	region, err := s.regionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if region == nil {
		return ErrRegionNotFound
	}

	return s.regionRepo.Delete(ctx, id)
}

// GetEntities expands the region's entity membership into full documents.
// An existing region with no members yields an empty list, not an error.
func (s *RegionService) GetEntities(ctx context.Context, id string) (*model.RegionEntities, error) {
	region, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entities, err := s.regionRepo.GetEntities(ctx, region.ID)
	if err != nil {
		return nil, err
	}

	return &model.RegionEntities{ID: region.ID, Entities: entities}, nil
}

// GetIdentities expands the region's identity membership into full documents
func (s *RegionService) GetIdentities(ctx context.Context, id string) (*model.RegionIdentities, error) {
	region, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	identities, err := s.regionRepo.GetIdentities(ctx, region.ID)
	if err != nil {
		return nil, err
	}

	return &model.RegionIdentities{ID: region.ID, Identities: identities}, nil
}
