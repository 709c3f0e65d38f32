package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
// The partial unique index on (owner_id) WHERE is_default rejects a second
// default row per owner at commit time; application code still clears
// siblings explicitly inside the same transaction.
type AddressModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_addresses_on_owner;uniqueIndex:uq_addresses_owner_default,where:is_default"`
	Label       string    `gorm:"type:varchar(100);not null"`
	FullAddress string    `gorm:"type:text;not null"`
	Latitude    float64   `gorm:"type:decimal(10,8);not null"`
	Longitude   float64   `gorm:"type:decimal(11,8);not null"`
	AccessNotes string    `gorm:"type:text"`
	Commune     string    `gorm:"type:varchar(100)"`
	Region      string    `gorm:"type:varchar(100)"`
	IsDefault   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
