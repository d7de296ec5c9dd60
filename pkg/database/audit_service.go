// Package database - append-only moderation audit archive.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
)

const auditCollection = "audit_log"

// AuditService escribe entradas de auditoría en la colección "audit_log".
// La colección es de solo inserción: este servicio nunca lee ni borra.
type AuditService struct {
	db *Database
}

// NewAuditService creates an AuditService backed by the given database
func NewAuditService(db *Database) *AuditService {
	return &AuditService{db: db}
}

// Append stores an audit entry. When the database is offline the entry is
// queued and flushed on reconnection; a failed append never propagates an
// error to moderation flows.
func (s *AuditService) Append(entry models.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if s.db == nil || !s.db.Connected() {
		logger.Warn(fmt.Sprintf("DB offline. Encolando entrada de auditoría '%s'", entry.Action), "Audit")
		if s.db != nil {
			s.db.AddToWriteQueue(QueuedInsert{
				CollectionName: auditCollection,
				Document:       entry,
			})
		}
		return
	}

	col := s.db.GetCollection(auditCollection)
	if col == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := col.InsertOne(ctx, entry); err != nil {
		logger.Error(fmt.Sprintf("Error insertando auditoría '%s'. Encolando por seguridad.", entry.Action), "Audit")
		s.db.AddToWriteQueue(QueuedInsert{
			CollectionName: auditCollection,
			Document:       entry,
		})
	}
}
