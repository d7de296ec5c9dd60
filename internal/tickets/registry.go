// Package tickets tracks the open support-ticket channels of the community.
// The registry is volatile: it only knows about tickets opened during the
// current process lifetime, and closed tickets are removed entirely.
package tickets

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// closeGraceDelay is how long the closing notice stays visible before the
// backing channel is deleted
const closeGraceDelay = 5 * time.Second

// ChannelProvider performs the platform-side channel operations the registry
// drives. The production implementation talks to Discord; tests use a fake.
type ChannelProvider interface {
	// EnsureCategory returns the ID of the named category, creating it if absent
	EnsureCategory(guildID, name string) (string, error)
	// CreateTicketChannel creates a channel visible only to the subject and staff
	CreateTicketChannel(guildID, parentID, name, subjectUserID string) (string, error)
	// PostNotice posts the opening notice with the close affordance
	PostNotice(channelID string, ticket *models.Ticket, initiatorID string) error
	// DeleteChannel removes the backing channel
	DeleteChannel(channelID string) error
}

// Registry owns the open tickets, keyed by backing channel ID
type Registry struct {
	provider     ChannelProvider
	categoryName string

	mu   sync.RWMutex
	open map[string]*models.Ticket

	// schedule defers channel deletion past the closing notice; tests
	// substitute a synchronous version
	schedule func(delay time.Duration, fn func())
}

// NewRegistry creates a Registry using the given provider and category name
func NewRegistry(provider ChannelProvider, categoryName string) *Registry {
	return &Registry{
		provider:     provider,
		categoryName: categoryName,
		open:         make(map[string]*models.Ticket),
		schedule: func(delay time.Duration, fn func()) {
			time.AfterFunc(delay, fn)
		},
	}
}

// Create opens a ticket for the subject user. The backing channel is created
// under the support category and restricted to the subject plus staff.
func (r *Registry) Create(guildID string, subject *discordgo.User, reason, initiatorID string) (*models.Ticket, error) {
	categoryID, err := r.provider.EnsureCategory(guildID, r.categoryName)
	if err != nil {
		return nil, fmt.Errorf("ticket category: %w", err)
	}

	name := fmt.Sprintf("ticket-%s-%d", strings.ToLower(subject.Username), time.Now().UnixMilli())
	channelID, err := r.provider.CreateTicketChannel(guildID, categoryID, name, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("ticket channel: %w", err)
	}

	ticket := &models.Ticket{
		ChannelID: channelID,
		UserID:    subject.ID,
		Reason:    reason,
		CreatedAt: time.Now(),
		Status:    models.TicketOpen,
	}

	r.mu.Lock()
	r.open[channelID] = ticket
	r.mu.Unlock()

	// The notice is presentation: a failed send leaves a working ticket
	if err := r.provider.PostNotice(channelID, ticket, initiatorID); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo enviar el aviso inicial del ticket %s: %v", channelID, err), "Tickets")
	}

	logger.Info(fmt.Sprintf("Ticket abierto: %s (usuario %s)", name, subject.ID), "Tickets")
	return ticket, nil
}

// Close marks the ticket Closed, removes it from the registry and schedules
// deletion of the backing channel after a short grace period. It returns
// false for unknown or already-closed channels and is safe to call twice.
func (r *Registry) Close(channelID string) bool {
	r.mu.Lock()
	ticket, ok := r.open[channelID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	ticket.Status = models.TicketClosed
	delete(r.open, channelID)
	r.mu.Unlock()

	r.schedule(closeGraceDelay, func() {
		if err := r.provider.DeleteChannel(channelID); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando canal de ticket %s: %v", channelID, err), "Tickets")
		}
	})

	logger.Info("Ticket cerrado: "+channelID, "Tickets")
	return true
}

// Get returns the open ticket for a channel, if any
func (r *Registry) Get(channelID string) (*models.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.open[channelID]
	return ticket, ok
}

// OpenCount returns the number of open tickets
func (r *Registry) OpenCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.open)
}

// OpenTickets returns a snapshot of the open tickets
func (r *Registry) OpenTickets() []*models.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Ticket, 0, len(r.open))
	for _, t := range r.open {
		copied := *t
		out = append(out, &copied)
	}
	return out
}
