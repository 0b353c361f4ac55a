package model

import (
	"strings"
	"time"
)

// Population describes who lives in a region
type Population struct {
	Faction     string `json:"faction"`
	Language    string `json:"language"`
	Religion    string `json:"religion"`
	Disposition string `json:"disposition"`
}

// Region represents a world location. Entities holds entity record ids;
// Identities holds identity names. Both are sets maintained by the identity
// write flow, never by region updates directly.
type Region struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Climate    string     `json:"climate"`
	Population Population `json:"population"`
	Cities     []string   `json:"cities"`
	Entities   []string   `json:"entities"`
	Identities []string   `json:"identities"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}

// RegionSummary is the lightweight listing projection. Membership and city
// detail are omitted to keep the listing cheap.
type RegionSummary struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Climate    string     `json:"climate"`
	Population Population `json:"population"`
	Identities []string   `json:"identities"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}

// Summary returns the listing projection of the region
func (r *Region) Summary() RegionSummary {
	return RegionSummary{
		ID:         r.ID,
		Name:       r.Name,
		Climate:    r.Climate,
		Population: r.Population,
		Identities: r.Identities,
		CreatedOn:  r.CreatedOn,
		UpdatedOn:  r.UpdatedOn,
	}
}

// CreateRegionRequest represents a request to create a region
type CreateRegionRequest struct {
	Name       string      `json:"name"`
	Climate    string      `json:"climate"`
	Population *Population `json:"population"`
	Cities     []string    `json:"cities,omitempty"`
}

// Validate checks the region payload
func (r *CreateRegionRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(r.Climate) == "" {
		errors = append(errors, FieldError{Field: "climate", Message: "climate is required"})
	}
	if r.Population == nil {
		errors = append(errors, FieldError{Field: "population", Message: "population is required"})
	} else {
		if strings.TrimSpace(r.Population.Faction) == "" {
			errors = append(errors, FieldError{Field: "population.faction", Message: "faction is required"})
		}
		if strings.TrimSpace(r.Population.Language) == "" {
			errors = append(errors, FieldError{Field: "population.language", Message: "language is required"})
		}
		if strings.TrimSpace(r.Population.Religion) == "" {
			errors = append(errors, FieldError{Field: "population.religion", Message: "religion is required"})
		}
		if strings.TrimSpace(r.Population.Disposition) == "" {
			errors = append(errors, FieldError{Field: "population.disposition", Message: "disposition is required"})
		}
	}

	return errors
}

// UpdateRegionRequest represents a request to replace a region's descriptive
// fields. Membership sets are not updatable through this payload.
type UpdateRegionRequest struct {
	Name       string      `json:"name"`
	Climate    string      `json:"climate"`
	Population *Population `json:"population"`
	Cities     []string    `json:"cities,omitempty"`
}

// Validate checks the region update payload
func (r *UpdateRegionRequest) Validate() []FieldError {
	create := CreateRegionRequest{Name: r.Name, Climate: r.Climate, Population: r.Population, Cities: r.Cities}
	return create.Validate()
}

// RegionEntities is the membership expansion for GET /regions/{id}/entities
type RegionEntities struct {
	ID       string   `json:"_id"`
	Entities []Entity `json:"entities"`
}

// RegionIdentities is the membership expansion for GET /regions/{id}/identities
type RegionIdentities struct {
	ID         string     `json:"_id"`
	Identities []Identity `json:"identities"`
}
