// Package nickname implements the rate-limited bulk nickname migration for
// the community prefix rollout.
package nickname

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/audit"
	boterrors "github.com/TrapoCloud/TrapoBotGo/pkg/errors"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// ErrRunInProgress is returned when a migration is already running for the guild
var ErrRunInProgress = errors.New("a nickname migration is already running for this guild")

// progressEvery is how many processed members trigger a progress publish
const progressEvery = 50

// progressInterval is the time-based fallback for progress publishes
const progressInterval = 5 * time.Second

// MemberDirectory lists and mutates guild members. The production
// implementation pages through the Discord member list; tests use a fake.
type MemberDirectory interface {
	Members(guildID string) ([]*discordgo.Member, error)
	OwnerID(guildID string) (string, error)
	SetNickname(guildID, userID, nick string) error
}

// Limiter paces the rename calls. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// ProgressSink receives run snapshots while a migration advances. The final
// snapshot is always delivered with final set, including on cancellation.
type ProgressSink interface {
	Publish(run models.MigrationRun, final bool)
}

// MultiSink fans a snapshot out to several sinks, skipping nil entries
type MultiSink []ProgressSink

// Publish delivers the snapshot to every sink
func (m MultiSink) Publish(run models.MigrationRun, final bool) {
	for _, sink := range m {
		if sink != nil {
			sink.Publish(run, final)
		}
	}
}

// RunRequest describes one migration run
type RunRequest struct {
	GuildID      string
	GuildName    string
	Mode         models.MigrationMode
	ModeratorID  string
	ModeratorTag string

	// Sink, when set, receives this run's snapshots in addition to the
	// engine-wide sink (used for in-channel progress edits)
	Sink ProgressSink
}

// Engine walks the guild's member list applying the nickname prefix, pacing
// renames through the limiter and publishing progress snapshots. At most one
// run per guild is active at a time.
type Engine struct {
	directory MemberDirectory
	limiter   Limiter
	prefix    string
	sink      ProgressSink
	auditSink audit.Sink

	mu      sync.Mutex
	running map[string]*models.MigrationRun
}

// NewEngine creates an Engine applying the given prefix
func NewEngine(directory MemberDirectory, limiter Limiter, prefix string, sink ProgressSink, auditSink audit.Sink) *Engine {
	return &Engine{
		directory: directory,
		limiter:   limiter,
		prefix:    prefix,
		sink:      sink,
		auditSink: auditSink,
		running:   make(map[string]*models.MigrationRun),
	}
}

// Running reports whether a migration is active for the guild
func (e *Engine) Running(guildID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.running[guildID]
	return ok
}

// CurrentRun returns a snapshot of the active run for the guild, if any
func (e *Engine) CurrentRun(guildID string) (models.MigrationRun, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	run, ok := e.running[guildID]
	if !ok {
		return models.MigrationRun{}, false
	}
	return *run, true
}

// ActiveRuns returns snapshots of every migration currently running
func (e *Engine) ActiveRuns() []models.MigrationRun {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.MigrationRun, 0, len(e.running))
	for _, run := range e.running {
		out = append(out, *run)
	}
	return out
}

// Run executes a migration for the guild. It returns ErrRunInProgress when
// one is already active, and the context error when cancelled mid-run; the
// returned snapshot always reflects the work actually performed.
func (e *Engine) Run(ctx context.Context, req RunRequest) (models.MigrationRun, error) {
	run := &models.MigrationRun{
		GuildID:   req.GuildID,
		Mode:      req.Mode,
		StartedAt: time.Now(),
	}

	e.mu.Lock()
	if _, active := e.running[req.GuildID]; active {
		e.mu.Unlock()
		return models.MigrationRun{}, ErrRunInProgress
	}
	e.running[req.GuildID] = run
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.running, req.GuildID)
		e.mu.Unlock()
	}()

	sink := e.sink
	if req.Sink != nil {
		sink = MultiSink{e.sink, req.Sink}
	}

	// The final snapshot goes out on every exit path, fetch failures included
	defer func() {
		sink.Publish(e.snapshot(run), true)
		e.logRun(req, run)
	}()

	members, err := e.directory.Members(req.GuildID)
	if err != nil {
		boterrors.Track(boterrors.SourceMigration)
		return *run, fmt.Errorf("member list: %w", err)
	}
	ownerID, err := e.directory.OwnerID(req.GuildID)
	if err != nil {
		boterrors.Track(boterrors.SourceMigration)
		return *run, fmt.Errorf("guild owner: %w", err)
	}

	e.setTotal(run, len(members))
	logger.Info(fmt.Sprintf("Migración de apodos iniciada en %s: %d miembros (modo %s)", req.GuildID, len(members), req.Mode), "Nickname")

	lastPublish := time.Now()
	for _, member := range members {
		if err := ctx.Err(); err != nil {
			return e.snapshot(run), err
		}

		updated := e.processMember(run, member, ownerID, req.Mode)

		if e.snapshot(run).Processed%progressEvery == 0 || time.Since(lastPublish) >= progressInterval {
			sink.Publish(e.snapshot(run), false)
			lastPublish = time.Now()
		}

		// Only successful renames are paced; skips cost nothing
		if updated {
			if err := e.limiter.Wait(ctx); err != nil {
				return e.snapshot(run), err
			}
		}
	}

	logger.Success(fmt.Sprintf("Migración completada en %s: %d actualizados, %d omitidos, %d fallidos",
		req.GuildID, run.Updated, run.Skipped, run.Failed), "Nickname")
	return e.snapshot(run), nil
}

// processMember applies the skip rules and the rename to one member. It
// reports whether the member was renamed.
func (e *Engine) processMember(run *models.MigrationRun, member *discordgo.Member, ownerID string, mode models.MigrationMode) bool {
	e.mu.Lock()
	run.Processed++
	e.mu.Unlock()

	switch {
	case member.User == nil || member.User.Bot:
		e.markSkipped(run)
		return false
	case member.User.ID == ownerID:
		// The bot cannot rename the guild owner
		e.markSkipped(run)
		return false
	case strings.HasPrefix(member.Nick, e.prefix):
		e.markSkipped(run)
		return false
	case mode != models.MigrationForce && member.Nick != "":
		e.markSkipped(run)
		return false
	}

	nick := fmt.Sprintf("%s %s", e.prefix, member.User.Username)
	if err := e.directory.SetNickname(run.GuildID, member.User.ID, nick); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo renombrar a %s: %v", member.User.ID, err), "Nickname")
		e.mu.Lock()
		run.Failed++
		e.mu.Unlock()
		return false
	}

	e.mu.Lock()
	run.Updated++
	e.mu.Unlock()
	return true
}

// markSkipped counts a skipped member
func (e *Engine) markSkipped(run *models.MigrationRun) {
	e.mu.Lock()
	run.Skipped++
	e.mu.Unlock()
}

// setTotal records the member count once the listing is complete
func (e *Engine) setTotal(run *models.MigrationRun, total int) {
	e.mu.Lock()
	run.Total = total
	e.mu.Unlock()
}

// snapshot copies the run under the lock
func (e *Engine) snapshot(run *models.MigrationRun) models.MigrationRun {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *run
}

// logRun writes the completed run to the audit sink
func (e *Engine) logRun(req RunRequest, run *models.MigrationRun) {
	snap := e.snapshot(run)
	e.auditSink.Log(models.AuditEntry{
		GuildID:     req.GuildID,
		Action:      "BULK NICKNAME UPDATE",
		TargetID:    req.GuildID,
		TargetTag:   req.GuildName,
		ModeratorID: req.ModeratorID,
		Moderator:   req.ModeratorTag,
		Reason:      fmt.Sprintf("Applied the '%s' nickname prefix (mode: %s)", e.prefix, req.Mode),
		Fields: []models.AuditField{
			{Name: "👥 Total Members", Value: strconv.Itoa(snap.Total), Inline: true},
			{Name: "✅ Updated", Value: strconv.Itoa(snap.Updated), Inline: true},
			{Name: "⏭️ Skipped", Value: strconv.Itoa(snap.Skipped), Inline: true},
			{Name: "❌ Failed", Value: strconv.Itoa(snap.Failed), Inline: true},
		},
		CreatedAt: time.Now(),
	})
}
