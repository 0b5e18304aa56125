// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with databases, managing
// the migration ledger, app settings, profiles and the audit mirror.
// The package includes validation and logging for traceability and
// error handling.
package persistence
