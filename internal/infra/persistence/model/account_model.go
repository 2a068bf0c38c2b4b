// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. Email is unique; external_id is
// nullable with a unique index, so uniqueness applies only to present values
// (multiple rows may leave it absent). PostgreSQL generates the UUIDs.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	Name         string    `gorm:"type:varchar(100)"`
	AvatarURL    string    `gorm:"type:text"`
	AuthProvider string    `gorm:"type:varchar(50);not null;default:local"`
	ExternalID   *string   `gorm:"type:varchar(255);uniqueIndex"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
