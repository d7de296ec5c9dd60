// Package mod - !timeout command
package mod

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/moderation"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createTimeoutCommand creates the !timeout command
func createTimeoutCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"timeout",
		"Time a user out for a number of minutes",
		"mod",
		timeoutHandler(deps),
	).WithUsage("timeout @user [minutes] [reason]").
		WithUserPermissions(discordgo.PermissionModerateMembers)
}

// timeoutHandler handles the !timeout command
func timeoutHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		target := ctx.MentionedUser()
		if target == nil {
			return ctx.Reply("❌ Please mention a user to timeout.")
		}
		if target.Bot {
			return ctx.Reply("❌ You cannot timeout a bot.")
		}

		minutes := moderation.ParseTimeoutMinutes(ctx.Arg(1))
		result, err := deps.Pipeline.Execute(moderation.KindTimeout, moderation.Request{
			GuildID:         ctx.Message.GuildID,
			GuildName:       guildName(ctx),
			Target:          target,
			Moderator:       ctx.Author(),
			Reason:          ctx.ArgsFrom(2),
			DurationMinutes: minutes,
		})
		if err != nil {
			return replyActionError(ctx, err, "timeout", result)
		}

		embed := &discordgo.MessageEmbed{
			Title: "⏱️ User Timed Out",
			Color: 0x95a5a6,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "👤 User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
				{Name: "👮 Moderator", Value: ctx.Author().Username, Inline: true},
				{Name: "⏰ Duration", Value: fmt.Sprintf("%d minutes", result.DurationMinutes), Inline: true},
				{Name: "📝 Reason", Value: result.Reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		decorateOutcome(embed, result)

		return ctx.ReplyEmbed(embed)
	}
}
