// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved location in a tutor's address book. It is used to
// pre-fill location-dependent flows such as home visits and emergency
// requests.
type Address struct {
	ID          uuid.UUID `json:"id"`           // The unique identifier for the address.
	OwnerID     uuid.UUID `json:"owner_id"`     // The tutor that owns this address. Immutable after creation.
	Label       string    `json:"label"`        // A user-defined label, e.g., "Casa", "Trabajo".
	FullAddress string    `json:"full_address"` // The full, human-readable street address.
	Latitude    float64   `json:"latitude"`     // The geographic latitude.
	Longitude   float64   `json:"longitude"`    // The geographic longitude.
	AccessNotes string    `json:"access_notes"` // Free-text instructions for reaching the location (gate codes, bell, etc.).
	Commune     string    `json:"commune"`      // Chilean commune, e.g., "Providencia".
	Region      string    `json:"region"`       // Chilean region, e.g., "Región Metropolitana".
	IsDefault   bool      `json:"is_default"`   // At most one address per owner carries this flag.
	CreatedAt   time.Time `json:"created_at"`   // Timestamp of when this address was created.
	UpdatedAt   time.Time `json:"updated_at"`   // Timestamp of the last modification.
}
