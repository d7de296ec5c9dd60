// Package dev provides owner-only developer commands.
package dev

import (
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
)

// RegisterDevCommands registers the developer commands
func RegisterDevCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createEvalCommand())
}
