// Package discord provides the command handler for loading and registering commands.
package discord

import (
	"sort"

	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
)

// CommandHandler manages command registration and lookup by category
type CommandHandler struct {
	client *ExtendedClient
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client: client,
	}
}

// LoadCommands prepares the command registry
// Commands register themselves programmatically via RegisterCommand
func (ch *CommandHandler) LoadCommands() error {
	logger.System("Iniciando carga de comandos...", "CommandHandler")
	logger.System("Carga finalizada. Los comandos se registrarán programáticamente.", "CommandHandler")
	return nil
}

// RegisterCommand adds a command to the registry
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)
	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// RegisterAlias registers an additional trigger name for an existing command
func (ch *CommandHandler) RegisterAlias(alias string, cmd *Command) {
	ch.client.Commands.Set(alias, cmd)
	logger.Debug("Alias registrado: "+alias+" -> "+cmd.Name, "CommandHandler")
}

// ByCategory returns the registered commands grouped by category,
// each group sorted by name (used by the help command)
func (ch *CommandHandler) ByCategory() map[string][]*Command {
	grouped := make(map[string][]*Command)
	seen := make(map[*Command]bool)

	for _, cmd := range ch.client.Commands.All() {
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
	}

	for _, cmds := range grouped {
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	}

	return grouped
}
