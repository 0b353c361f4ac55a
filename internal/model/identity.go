package model

import (
	"strings"
	"time"
)

// Identity represents a player character. Entity is a snapshot of the
// creature template taken when the identity was written; Location is the
// name of the region the identity currently belongs to.
type Identity struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Appearance  string         `json:"appearance"`
	Personality string         `json:"personality"`
	Entity      EntitySnapshot `json:"entity"`
	Alignment   string         `json:"alignment"`
	Money       int            `json:"money"`
	Location    string         `json:"location"`
	CreatedOn   time.Time      `json:"created_on"`
	UpdatedOn   time.Time      `json:"updated_on"`
}

// IdentitySummary is the redacted listing projection. Appearance,
// personality and money stay private to the owning player.
type IdentitySummary struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Title     string         `json:"title"`
	Entity    EntitySnapshot `json:"entity"`
	Alignment string         `json:"alignment"`
	Location  string         `json:"location"`
	CreatedOn time.Time      `json:"created_on"`
	UpdatedOn time.Time      `json:"updated_on"`
}

// Summary returns the redacted projection of the identity
func (i *Identity) Summary() IdentitySummary {
	return IdentitySummary{
		ID:        i.ID,
		Name:      i.Name,
		Title:     i.Title,
		Entity:    i.Entity,
		Alignment: i.Alignment,
		Location:  i.Location,
		CreatedOn: i.CreatedOn,
		UpdatedOn: i.UpdatedOn,
	}
}

// CreateIdentityRequest represents a request to create an identity. Entity
// and Location are names resolved against the entity and region tables.
type CreateIdentityRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Appearance  string `json:"appearance"`
	Personality string `json:"personality"`
	Entity      string `json:"entity"`
	Alignment   string `json:"alignment"`
	Money       *int   `json:"money"`
	Location    string `json:"location"`
}

// Validate checks the identity payload shape. Reference resolution happens
// in the service, after this passes.
func (r *CreateIdentityRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(r.Appearance) == "" {
		errors = append(errors, FieldError{Field: "appearance", Message: "appearance is required"})
	}
	if strings.TrimSpace(r.Personality) == "" {
		errors = append(errors, FieldError{Field: "personality", Message: "personality is required"})
	}
	if strings.TrimSpace(r.Entity) == "" {
		errors = append(errors, FieldError{Field: "entity", Message: "entity is required"})
	}
	if strings.TrimSpace(r.Alignment) == "" {
		errors = append(errors, FieldError{Field: "alignment", Message: "alignment is required"})
	}
	if r.Money == nil {
		errors = append(errors, FieldError{Field: "money", Message: "money is required"})
	} else if *r.Money < 0 {
		errors = append(errors, FieldError{Field: "money", Message: "money must be 0 or greater"})
	}
	if strings.TrimSpace(r.Location) == "" {
		errors = append(errors, FieldError{Field: "location", Message: "location is required"})
	}

	return errors
}

// UpdateIdentityRequest represents a request to replace an identity
type UpdateIdentityRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Appearance  string `json:"appearance"`
	Personality string `json:"personality"`
	Entity      string `json:"entity"`
	Alignment   string `json:"alignment"`
	Money       *int   `json:"money"`
	Location    string `json:"location"`
}

// Validate checks the identity update payload
func (r *UpdateIdentityRequest) Validate() []FieldError {
	create := CreateIdentityRequest{
		Name:        r.Name,
		Title:       r.Title,
		Appearance:  r.Appearance,
		Personality: r.Personality,
		Entity:      r.Entity,
		Alignment:   r.Alignment,
		Money:       r.Money,
		Location:    r.Location,
	}
	return create.Validate()
}
