// Package info provides the informational commands of the bot.
package info

import (
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
)

// RegisterInfoCommands registers the informational commands
func RegisterInfoCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createHelpCommand())
	client.CommandHandler.RegisterCommand(createPingCommand())
	client.CommandHandler.RegisterCommand(createServerInfoCommand())
	client.CommandHandler.RegisterCommand(createUserInfoCommand())

	// Hosting plan catalogue
	client.CommandHandler.RegisterCommand(createVPSCommand())
	client.CommandHandler.RegisterCommand(createGameServerCommand())
	client.CommandHandler.RegisterCommand(createDcBotCommand())
	client.CommandHandler.RegisterCommand(createWebCommand())
}
