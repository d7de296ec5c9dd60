// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, support, info, dev)
package commands

import (
	"github.com/TrapoCloud/TrapoBotGo/internal/commands/dev"
	"github.com/TrapoCloud/TrapoBotGo/internal/commands/info"
	"github.com/TrapoCloud/TrapoBotGo/internal/commands/mod"
	"github.com/TrapoCloud/TrapoBotGo/internal/commands/support"
	"github.com/TrapoCloud/TrapoBotGo/internal/tickets"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, modDeps mod.Deps, registry *tickets.Registry) {
	// Moderation commands (!warn, !kick, !ban, !timeout, !warnings, ...)
	mod.RegisterModCommands(client, modDeps)

	// Support ticket commands (!ticket, !close)
	support.RegisterSupportCommands(client, registry)

	// Informational commands (!help, !ping, !serverinfo, hosting plans, ...)
	info.RegisterInfoCommands(client)

	// Developer commands (!eval)
	dev.RegisterDevCommands(client)
}
