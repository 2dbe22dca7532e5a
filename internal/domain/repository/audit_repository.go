// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"shophub/internal/domain/entity"
)

// AuditRepository defines the interface for the shared payment audit log.
// Every gateway call is recorded here regardless of outcome. The log is
// bounded: once it holds entity.MaxAuditEntries records, appending evicts
// the oldest entry.
type AuditRepository interface {
	// Append records a gateway call outcome.
	Append(ctx context.Context, entry entity.AuditEntry) error

	// List returns all retained entries in insertion order, oldest first.
	List(ctx context.Context) ([]entity.AuditEntry, error)
}
