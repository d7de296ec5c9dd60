// Package mod - !warnings command
package mod

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// maxListedWarnings caps the warnings shown in one embed
const maxListedWarnings = 10

// warningsTarget resolves the user to look up: the first mention, or the
// invoking author when no one is mentioned
func warningsTarget(ctx *discord.CommandContext) *discordgo.User {
	if target := ctx.MentionedUser(); target != nil {
		return target
	}
	return ctx.Author()
}

// createWarningsCommand creates the !warnings command
func createWarningsCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"warnings",
		"List the warnings of a user",
		"mod",
		warningsHandler(deps),
	).WithUsage("warnings [@user]")
}

// warningsHandler handles the !warnings command. Without a mention it lists
// the author's own warnings, so any member can check their standing.
func warningsHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		target := warningsTarget(ctx)

		records := deps.Ledger.ListWarnings(target.ID)
		if len(records) == 0 {
			return ctx.Reply(fmt.Sprintf("✅ **%s** has no warnings.", target.Username))
		}

		fields := make([]*discordgo.MessageEmbedField, 0, maxListedWarnings)
		for i, record := range records {
			if i >= maxListedWarnings {
				break
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: fmt.Sprintf("Warning #%d", i+1),
				Value: fmt.Sprintf("**Reason:** %s\n**Moderator:** %s\n**When:** <t:%d:R>",
					record.Reason, record.Moderator, record.IssuedAt.Unix()),
				Inline: false,
			})
		}

		embed := &discordgo.MessageEmbed{
			Title:     fmt.Sprintf("⚠️ Warnings for %s", target.Username),
			Color:     0xf39c12,
			Fields:    fields,
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if len(records) > maxListedWarnings {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Showing %d of %d warnings", maxListedWarnings, len(records)),
			}
		}

		return ctx.ReplyEmbed(embed)
	}
}
