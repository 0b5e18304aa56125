package models

import (
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
)

// MigrationRecordModel is the GORM database model for the migration ledger
// (infrastructure concern). Statements and Failed pin type:integer so the
// Postgres columns match the expected catalog instead of gorm's default
// bigint mapping.
type MigrationRecordModel struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Checksum   string    `gorm:"not null;type:varchar(64)"`
	Statements int       `gorm:"not null;type:integer"`
	Failed     int       `gorm:"not null;type:integer"`
	AppliedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MigrationRecordModel) TableName() string {
	return "ops_migrations"
}

// ToDomain converts GORM model to domain entity
func (m *MigrationRecordModel) ToDomain() *migrations.Record {
	return &migrations.Record{
		Name:       m.Name,
		Checksum:   m.Checksum,
		Statements: m.Statements,
		Failed:     m.Failed,
		AppliedAt:  m.AppliedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MigrationRecordModel) FromDomain(r *migrations.Record) {
	m.Name = r.Name
	m.Checksum = r.Checksum
	m.Statements = r.Statements
	m.Failed = r.Failed
	m.AppliedAt = r.AppliedAt
}
