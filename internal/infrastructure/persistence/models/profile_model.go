package models

import (
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
)

// ProfileModel is the GORM database model for profiles (infrastructure
// concern). DisplayName and PasswordHash are pointers because the hosted
// schema leaves them nullable, and password maintenance keys off NULL hashes.
type ProfileModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	DisplayName  *string   `gorm:"type:varchar(100)"`
	Role         string    `gorm:"not null;index;type:varchar(20)"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *accounts.Profile {
	profile := &accounts.Profile{
		ID:        m.ID,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DisplayName != nil {
		profile.DisplayName = *m.DisplayName
	}
	if m.PasswordHash != nil {
		profile.PasswordHash = *m.PasswordHash
	}
	return profile
}

// FromDomain converts domain entity to GORM model
func (m *ProfileModel) FromDomain(p *accounts.Profile) {
	m.ID = p.ID
	m.Email = p.Email
	m.Role = p.Role
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	if p.DisplayName != "" {
		displayName := p.DisplayName
		m.DisplayName = &displayName
	} else {
		m.DisplayName = nil
	}
	if p.PasswordHash != "" {
		hash := p.PasswordHash
		m.PasswordHash = &hash
	} else {
		m.PasswordHash = nil
	}
}
