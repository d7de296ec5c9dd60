// Package mod - !clearwarnings command
package mod

import (
	"fmt"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createClearWarningsCommand creates the !clearwarnings command
func createClearWarningsCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"clearwarnings",
		"Remove all warnings of a user",
		"mod",
		clearWarningsHandler(deps),
	).WithUsage("clearwarnings @user").
		WithUserPermissions(discordgo.PermissionAdministrator)
}

// clearWarningsHandler handles the !clearwarnings command
func clearWarningsHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		target := ctx.MentionedUser()
		if target == nil {
			return ctx.Reply("❌ Please mention a user.")
		}

		if !deps.Ledger.ClearWarnings(target.ID) {
			return ctx.Reply(fmt.Sprintf("✅ **%s** has no warnings to clear.", target.Username))
		}

		return ctx.Reply(fmt.Sprintf("🧹 All warnings for **%s** have been cleared.", target.Username))
	}
}
