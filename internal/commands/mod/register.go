// Package mod provides the moderation commands of the bot.
// Each command is in its own file for better organization
package mod

import (
	"github.com/TrapoCloud/TrapoBotGo/internal/moderation"
	"github.com/TrapoCloud/TrapoBotGo/internal/nickname"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
)

// Deps holds the collaborators the moderation commands act on
type Deps struct {
	Pipeline *moderation.Pipeline
	Ledger   *moderation.WarningLedger
	Engine   *nickname.Engine
}

// RegisterModCommands registers all moderation commands
func RegisterModCommands(client *discord.ExtendedClient, deps Deps) {
	client.CommandHandler.RegisterCommand(createWarnCommand(deps))
	client.CommandHandler.RegisterCommand(createKickCommand(deps))
	client.CommandHandler.RegisterCommand(createBanCommand(deps))
	client.CommandHandler.RegisterCommand(createTimeoutCommand(deps))
	client.CommandHandler.RegisterCommand(createWarningsCommand(deps))
	client.CommandHandler.RegisterCommand(createClearWarningsCommand(deps))
	client.CommandHandler.RegisterCommand(createNicknameAllCommand(deps))
}
