package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
)

// AuditLogModel is the GORM database model for admin_audit_logs
// (infrastructure concern). Metadata is stored as a serialized JSON document
// so the hosted dashboard can query it with jsonb operators.
type AuditLogModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	Category    string    `gorm:"not null;index;type:varchar(50)"`
	Action      string    `gorm:"not null;type:varchar(100)"`
	Actor       *string   `gorm:"type:varchar(100)"`
	TargetTable *string   `gorm:"type:varchar(63)"`
	Severity    string    `gorm:"not null;type:varchar(20)"`
	Message     *string   `gorm:"type:text"`
	Metadata    *string   `gorm:"type:jsonb"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return "admin_audit_logs"
}

// ToDomain converts GORM model to domain entity
func (m *AuditLogModel) ToDomain() (*audit.Event, error) {
	event := &audit.Event{
		ID:        m.ID,
		Category:  m.Category,
		Action:    m.Action,
		Severity:  m.Severity,
		Timestamp: m.CreatedAt,
	}
	if m.Actor != nil {
		event.Actor = *m.Actor
	}
	if m.TargetTable != nil {
		event.TargetTable = *m.TargetTable
	}
	if m.Message != nil {
		event.Message = *m.Message
	}
	if m.Metadata != nil && *m.Metadata != "" {
		if err := json.Unmarshal([]byte(*m.Metadata), &event.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode event metadata: %w", err)
		}
	}
	return event, nil
}

// FromDomain converts domain entity to GORM model
func (m *AuditLogModel) FromDomain(e *audit.Event) error {
	m.ID = e.ID
	m.Category = e.Category
	m.Action = e.Action
	m.Severity = e.Severity
	m.CreatedAt = e.Timestamp

	m.Actor = nil
	if e.Actor != "" {
		actor := e.Actor
		m.Actor = &actor
	}
	m.TargetTable = nil
	if e.TargetTable != "" {
		table := e.TargetTable
		m.TargetTable = &table
	}
	m.Message = nil
	if e.Message != "" {
		message := e.Message
		m.Message = &message
	}
	m.Metadata = nil
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode event metadata: %w", err)
		}
		encoded := string(raw)
		m.Metadata = &encoded
	}
	return nil
}
