// Package audit delivers moderation events to the guild's mod-logs channel,
// the Mongo audit archive and the MQTT telemetry topic. Every leg is
// best-effort: a failing sink is logged and never blocks a moderation action.
package audit

import (
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
)

// Sink consumes moderation audit entries. Implementations must be write-only
// and must never fail the caller.
type Sink interface {
	Log(entry models.AuditEntry)
}

// Fanout delivers each entry to every configured sink
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a Fanout over the given sinks (nil sinks are skipped)
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Log sends the entry to every sink
func (f *Fanout) Log(entry models.AuditEntry) {
	for _, s := range f.sinks {
		s.Log(entry)
	}
}
