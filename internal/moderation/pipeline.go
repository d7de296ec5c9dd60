package moderation

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/audit"
	"github.com/TrapoCloud/TrapoBotGo/pkg/errors"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// ActionKind identifies a punitive action
type ActionKind string

const (
	KindWarn    ActionKind = "WARN"
	KindKick    ActionKind = "KICK"
	KindBan     ActionKind = "BAN"
	KindTimeout ActionKind = "TIMEOUT"
)

// DefaultReason is used when the moderator gives no reason
const DefaultReason = "No reason provided"

// DefaultTimeoutMinutes is applied when the duration argument is absent or
// not a positive number
const DefaultTimeoutMinutes = 10

// Notifier delivers best-effort direct messages to users
type Notifier interface {
	SendDM(userID, content string) error
}

// Enforcer performs the platform-side punitive actions
type Enforcer interface {
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string) error
	Timeout(guildID, userID string, until time.Time, reason string) error
}

// TicketOpener opens a support ticket for a subject user
type TicketOpener interface {
	Create(guildID string, subject *discordgo.User, reason, initiatorID string) (*models.Ticket, error)
}

// Request carries the resolved inputs of one punitive action. The caller has
// already checked the invoker's permissions and resolved the target.
type Request struct {
	GuildID         string
	GuildName       string
	Target          *discordgo.User
	Moderator       *discordgo.User
	Reason          string
	DurationMinutes int
}

// Result is the composite outcome of one punitive action. Ticket and DM
// failures degrade the result without flipping Succeeded.
type Result struct {
	Kind            ActionKind
	Target          *discordgo.User
	Moderator       *discordgo.User
	Reason          string
	Ticket          *models.Ticket
	Notified        bool
	Succeeded       bool
	FailureReason   string
	WarnCount       int
	DurationMinutes int
}

// Pipeline orchestrates a punitive action end to end: ticket, notification,
// platform action and audit entry, with the ordering and partial-failure
// rules each action kind requires.
type Pipeline struct {
	Ledger   *WarningLedger
	Tickets  TicketOpener
	Notifier Notifier
	Enforcer Enforcer
	Audit    audit.Sink

	// actions against the same target are serialized so two moderators
	// cannot interleave ledger/ticket mutations for one member
	targetMu sync.Mutex
	targets  map[string]*sync.Mutex
}

// NewPipeline wires a Pipeline from its collaborators
func NewPipeline(ledger *WarningLedger, tickets TicketOpener, notifier Notifier, enforcer Enforcer, sink audit.Sink) *Pipeline {
	return &Pipeline{
		Ledger:   ledger,
		Tickets:  tickets,
		Notifier: notifier,
		Enforcer: enforcer,
		Audit:    sink,
		targets:  make(map[string]*sync.Mutex),
	}
}

// ParseTimeoutMinutes parses a user-supplied duration argument, falling back
// to the default for absent, non-numeric or non-positive input
func ParseTimeoutMinutes(arg string) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return DefaultTimeoutMinutes
	}
	return n
}

// Execute runs the punitive action and returns its composite result. The
// returned error is non-nil only for aborting failures (validation or a
// platform rejection); in that case the Result still describes the partial
// side effects that remain in place.
func (p *Pipeline) Execute(kind ActionKind, req Request) (*Result, error) {
	if req.Target == nil {
		return nil, NewValidationError("❌ Please mention a user.")
	}
	if req.Moderator == nil {
		return nil, NewValidationError("❌ Unknown moderator.")
	}

	unlock := p.lockTarget(req.Target.ID)
	defer unlock()

	if req.Reason == "" {
		req.Reason = DefaultReason
	}

	result := &Result{
		Kind:      kind,
		Target:    req.Target,
		Moderator: req.Moderator,
		Reason:    req.Reason,
	}

	switch kind {
	case KindWarn:
		p.executeWarn(req, result)
	case KindKick:
		if err := p.executeRemoval(kind, req, result); err != nil {
			return result, err
		}
	case KindBan:
		if err := p.executeRemoval(kind, req, result); err != nil {
			return result, err
		}
	case KindTimeout:
		if err := p.executeTimeout(req, result); err != nil {
			return result, err
		}
	default:
		return nil, NewValidationError("❌ Unknown moderation action.")
	}

	result.Succeeded = true
	return result, nil
}

// executeWarn appends to the ledger first (the warning is the action), then
// performs the best-effort ticket, DM and audit steps
func (p *Pipeline) executeWarn(req Request, result *Result) {
	result.WarnCount = p.Ledger.AddWarning(req.Target.ID, userTag(req.Moderator), req.Reason)

	result.Ticket = p.openTicket(req, fmt.Sprintf("User was warned: %s", req.Reason))
	result.Notified = p.notify(req.Target.ID, fmt.Sprintf(
		"⚠️ You have been warned in **%s**\n**Reason:** %s\n**Total Warnings:** %d\n\nA support ticket has been created for you to discuss this action.",
		req.GuildName, req.Reason, result.WarnCount,
	))

	p.logAction(KindWarn, req, models.AuditField{
		Name:   "📊 Total Warnings",
		Value:  strconv.Itoa(result.WarnCount),
		Inline: true,
	})
}

// executeRemoval handles kick and ban: ticket and DM go out while the user
// can still see them, then the removal is enacted. A platform rejection
// aborts the action; the ticket and DM deliberately stay in place.
func (p *Pipeline) executeRemoval(kind ActionKind, req Request, result *Result) error {
	var ticketReason, dmText string
	if kind == KindKick {
		ticketReason = fmt.Sprintf("User was kicked: %s", req.Reason)
		dmText = fmt.Sprintf(
			"👢 You have been kicked from **%s**\n**Reason:** %s\n\nA support ticket has been created. You may rejoin and appeal this action.",
			req.GuildName, req.Reason,
		)
	} else {
		ticketReason = fmt.Sprintf("User was banned: %s", req.Reason)
		dmText = fmt.Sprintf(
			"🔨 You have been banned from **%s**\n**Reason:** %s\n\nA support ticket has been created for appeals.",
			req.GuildName, req.Reason,
		)
	}

	result.Ticket = p.openTicket(req, ticketReason)
	result.Notified = p.notify(req.Target.ID, dmText)

	var err error
	if kind == KindKick {
		err = p.Enforcer.Kick(req.GuildID, req.Target.ID, req.Reason)
	} else {
		err = p.Enforcer.Ban(req.GuildID, req.Target.ID, req.Reason)
	}
	if err != nil {
		result.FailureReason = err.Error()
		errors.Track(errors.SourcePrivilege)
		return &InsufficientPrivilegeError{Action: string(kind), Cause: err}
	}

	p.logAction(kind, req)
	return nil
}

// executeTimeout enacts the timeout directly (the member stays in the guild),
// then opens the ticket, logs and notifies
func (p *Pipeline) executeTimeout(req Request, result *Result) error {
	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = DefaultTimeoutMinutes
	}
	result.DurationMinutes = minutes

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := p.Enforcer.Timeout(req.GuildID, req.Target.ID, until, req.Reason); err != nil {
		result.FailureReason = err.Error()
		errors.Track(errors.SourcePrivilege)
		return &InsufficientPrivilegeError{Action: string(KindTimeout), Cause: err}
	}

	result.Ticket = p.openTicket(req, fmt.Sprintf("User was timed out for %d minutes: %s", minutes, req.Reason))

	p.logAction(KindTimeout, req, models.AuditField{
		Name:   "⏰ Duration",
		Value:  fmt.Sprintf("%d minutes", minutes),
		Inline: true,
	})

	result.Notified = p.notify(req.Target.ID, fmt.Sprintf(
		"⏱️ You have been timed out in **%s** for %d minutes\n**Reason:** %s\n\nA support ticket has been created for you.",
		req.GuildName, minutes, req.Reason,
	))
	return nil
}

// openTicket is best-effort: a creation failure is logged and the pipeline
// continues without a ticket
func (p *Pipeline) openTicket(req Request, reason string) *models.Ticket {
	ticket, err := p.Tickets.Create(req.GuildID, req.Target, reason, req.Moderator.ID)
	if err != nil {
		resErr := &ResourceCreationError{Resource: "support ticket", Cause: err}
		logger.Error(resErr.Error(), "Pipeline")
		errors.Track(errors.SourceResource)
		return nil
	}
	return ticket
}

// notify is best-effort: closed DMs are logged, never fatal
func (p *Pipeline) notify(userID, content string) bool {
	if err := p.Notifier.SendDM(userID, content); err != nil {
		dmErr := &NotificationDeliveryError{UserID: userID, Cause: err}
		logger.Debug(dmErr.Error(), "Pipeline")
		return false
	}
	return true
}

// logAction emits the audit entry for the action
func (p *Pipeline) logAction(kind ActionKind, req Request, extra ...models.AuditField) {
	p.Audit.Log(models.AuditEntry{
		GuildID:     req.GuildID,
		Action:      string(kind),
		TargetID:    req.Target.ID,
		TargetTag:   userTag(req.Target),
		ModeratorID: req.Moderator.ID,
		Moderator:   userTag(req.Moderator),
		Reason:      req.Reason,
		Fields:      extra,
		CreatedAt:   time.Now(),
	})
}

// lockTarget acquires the per-target mutex, creating it on first use
func (p *Pipeline) lockTarget(userID string) func() {
	p.targetMu.Lock()
	mu, ok := p.targets[userID]
	if !ok {
		mu = &sync.Mutex{}
		p.targets[userID] = mu
	}
	p.targetMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// userTag renders a user the way moderators see them in the client
func userTag(u *discordgo.User) string {
	if u.Discriminator != "" && u.Discriminator != "0" {
		return u.Username + "#" + u.Discriminator
	}
	return u.Username
}
