// Package mod - !kick command
package mod

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/moderation"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the !kick command
func createKickCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"kick",
		"Kick a user from the server",
		"mod",
		kickHandler(deps),
	).WithUsage("kick @user [reason]").
		WithUserPermissions(discordgo.PermissionKickMembers)
}

// kickHandler handles the !kick command
func kickHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		target := ctx.MentionedUser()
		if target == nil {
			return ctx.Reply("❌ Please mention a user to kick.")
		}
		if target.ID == ctx.Author().ID {
			return ctx.Reply("❌ You cannot kick yourself.")
		}

		result, err := deps.Pipeline.Execute(moderation.KindKick, moderation.Request{
			GuildID:   ctx.Message.GuildID,
			GuildName: guildName(ctx),
			Target:    target,
			Moderator: ctx.Author(),
			Reason:    ctx.ArgsFrom(1),
		})
		if err != nil {
			return replyActionError(ctx, err, "kick", result)
		}

		embed := &discordgo.MessageEmbed{
			Title: "👢 User Kicked",
			Color: 0xe67e22,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "👤 User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
				{Name: "👮 Moderator", Value: ctx.Author().Username, Inline: true},
				{Name: "📝 Reason", Value: result.Reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		decorateOutcome(embed, result)

		return ctx.ReplyEmbed(embed)
	}
}
