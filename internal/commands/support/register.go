// Package support provides the support-ticket commands of the bot.
package support

import (
	"github.com/TrapoCloud/TrapoBotGo/internal/tickets"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
)

// RegisterSupportCommands registers the ticket commands
func RegisterSupportCommands(client *discord.ExtendedClient, registry *tickets.Registry) {
	client.CommandHandler.RegisterCommand(createTicketCommand(registry))
	client.CommandHandler.RegisterCommand(createCloseCommand(registry))
}
