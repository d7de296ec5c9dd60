// Package moderation implements the warning ledger and the punitive action
// pipeline for the Trapo Cloud community.
package moderation

import (
	"sync"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
)

// WarningLedger is the volatile per-user warning store. Warnings live for the
// lifetime of the process; a user without an entry has zero warnings.
type WarningLedger struct {
	mu       sync.RWMutex
	warnings map[string][]models.WarnRecord
}

// NewWarningLedger creates an empty ledger
func NewWarningLedger() *WarningLedger {
	return &WarningLedger{
		warnings: make(map[string][]models.WarnRecord),
	}
}

// AddWarning appends a warning for the user and returns the new total
func (l *WarningLedger) AddWarning(userID, moderator, reason string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnings[userID] = append(l.warnings[userID], models.WarnRecord{
		Moderator: moderator,
		Reason:    reason,
		IssuedAt:  time.Now(),
	})
	return len(l.warnings[userID])
}

// ListWarnings returns the user's warnings in the order they were issued.
// The returned slice is a copy; mutating it does not affect the ledger.
func (l *WarningLedger) ListWarnings(userID string) []models.WarnRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := l.warnings[userID]
	out := make([]models.WarnRecord, len(records))
	copy(out, records)
	return out
}

// CountWarnings returns the number of warnings for the user
func (l *WarningLedger) CountWarnings(userID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.warnings[userID])
}

// ClearWarnings removes the user's entry entirely and reports whether one existed
func (l *WarningLedger) ClearWarnings(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, existed := l.warnings[userID]
	delete(l.warnings, userID)
	return existed
}
