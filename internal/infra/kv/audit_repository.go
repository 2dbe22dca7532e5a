package kv

import (
	"context"
	"sync"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"
	"shophub/internal/errors"
)

const auditLogKey = "audit/transaction-log.json"

// auditRepository persists the bounded payment audit log as one document in
// insertion order, oldest first.
type auditRepository struct {
	store *Store
	mu    sync.Mutex
}

// NewAuditRepository creates an audit log repository backed by the KV store.
func NewAuditRepository(store *Store) repository.AuditRepository {
	return &auditRepository{store: store}
}

func (r *auditRepository) Append(ctx context.Context, entry entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var log []entity.AuditEntry
	if err := r.store.GetJSON(ctx, auditLogKey, &log); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return err
	}

	log = append(log, entry)
	if len(log) > entity.MaxAuditEntries {
		log = log[len(log)-entity.MaxAuditEntries:]
	}

	return r.store.SetJSON(ctx, auditLogKey, log)
}

func (r *auditRepository) List(ctx context.Context) ([]entity.AuditEntry, error) {
	var log []entity.AuditEntry
	if err := r.store.GetJSON(ctx, auditLogKey, &log); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	return log, nil
}
