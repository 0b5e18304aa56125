package models

import (
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
)

// SettingModel is the GORM database model for app_settings (infrastructure
// concern). The row id is generated by the repository; the domain entry is
// keyed by Key alone.
type SettingModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Key       string    `gorm:"not null;uniqueIndex;type:varchar(100)"`
	Value     *string   `gorm:"type:text"`
	Category  string    `gorm:"not null;index;type:varchar(50)"`
	Sensitive bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SettingModel) TableName() string {
	return "app_settings"
}

// ToDomain converts GORM model to domain entity
func (m *SettingModel) ToDomain() *seeds.Entry {
	value := ""
	if m.Value != nil {
		value = *m.Value
	}
	return &seeds.Entry{
		Key:       m.Key,
		Value:     value,
		Category:  m.Category,
		Sensitive: m.Sensitive,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SettingModel) FromDomain(e *seeds.Entry) {
	m.Key = e.Key
	if e.Value != "" {
		value := e.Value
		m.Value = &value
	} else {
		m.Value = nil
	}
	m.Category = e.Category
	m.Sensitive = e.Sensitive
}
