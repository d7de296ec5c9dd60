// Package mod - !ban command
package mod

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/moderation"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the !ban command
func createBanCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"ban",
		"Ban a user from the server",
		"mod",
		banHandler(deps),
	).WithUsage("ban @user [reason]").
		WithUserPermissions(discordgo.PermissionBanMembers)
}

// banHandler handles the !ban command
func banHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		target := ctx.MentionedUser()
		if target == nil {
			return ctx.Reply("❌ Please mention a user to ban.")
		}
		if target.ID == ctx.Author().ID {
			return ctx.Reply("❌ You cannot ban yourself.")
		}

		result, err := deps.Pipeline.Execute(moderation.KindBan, moderation.Request{
			GuildID:   ctx.Message.GuildID,
			GuildName: guildName(ctx),
			Target:    target,
			Moderator: ctx.Author(),
			Reason:    ctx.ArgsFrom(1),
		})
		if err != nil {
			return replyActionError(ctx, err, "ban", result)
		}

		embed := &discordgo.MessageEmbed{
			Title: "🔨 User Banned",
			Color: 0xe74c3c,
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
