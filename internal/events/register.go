// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, member, interaction)
package events

import (
	"github.com/TrapoCloud/TrapoBotGo/internal/audit"
	"github.com/TrapoCloud/TrapoBotGo/internal/tickets"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
)

// Deps holds the collaborators the event handlers act on
type Deps struct {
	Tickets *tickets.Registry
	ModLog  *audit.ChannelSink
}

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, deps Deps) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Member events (join/leave)
	RegisterMemberEvents(client, deps)

	// Interaction events (ticket close button)
	RegisterInteractionEvents(client, deps)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
