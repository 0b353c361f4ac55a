package model

import (
	"fmt"
	"strings"
	"time"
)

// Action represents a single combat move available to an entity
type Action struct {
	Attack string `json:"attack"`
	Weapon string `json:"weapon"`
	Damage int    `json:"damage"`
}

// Entity represents a creature template. Identities embed a snapshot of an
// entity at write time, so later edits here do not rewrite characters.
type Entity struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Health    int       `json:"health"`
	Actions   []Action  `json:"actions"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// EntitySnapshot is the denormalized form embedded in an identity
type EntitySnapshot struct {
	Name    string   `json:"name"`
	Health  int      `json:"health"`
	Actions []Action `json:"actions"`
}

// Snapshot returns the embeddable form of the entity
func (e *Entity) Snapshot() EntitySnapshot {
	return EntitySnapshot{
		Name:    e.Name,
		Health:  e.Health,
		Actions: e.Actions,
	}
}

// CreateEntityRequest represents a request to create an entity
type CreateEntityRequest struct {
	Name    string   `json:"name"`
	Health  *int     `json:"health"`
	Actions []Action `json:"actions"`
}

// Validate checks the entity payload
func (r *CreateEntityRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if r.Health == nil {
		errors = append(errors, FieldError{Field: "health", Message: "health is required"})
	} else if *r.Health < 0 {
		errors = append(errors, FieldError{Field: "health", Message: "health must be 0 or greater"})
	}
	if r.Actions == nil {
		errors = append(errors, FieldError{Field: "actions", Message: "actions is required"})
	}
	errors = append(errors, validateActions(r.Actions)...)

	return errors
}

// UpdateEntityRequest represents a request to replace an entity's fields
type UpdateEntityRequest struct {
	Name    string   `json:"name"`
	Health  *int     `json:"health"`
	Actions []Action `json:"actions"`
}

// Validate checks the entity update payload
func (r *UpdateEntityRequest) Validate() []FieldError {
	create := CreateEntityRequest{Name: r.Name, Health: r.Health, Actions: r.Actions}
	return create.Validate()
}

func validateActions(actions []Action) []FieldError {
	var errors []FieldError
	for i, a := range actions {
		field := fmt.Sprintf("actions[%d]", i)
		if strings.TrimSpace(a.Attack) == "" {
			errors = append(errors, FieldError{Field: field, Message: "attack is required"})
		}
		if strings.TrimSpace(a.Weapon) == "" {
			errors = append(errors, FieldError{Field: field, Message: "weapon is required"})
		}
		if a.Damage < 0 {
			errors = append(errors, FieldError{Field: field, Message: "damage must be 0 or greater"})
		}
	}
	return errors
}
