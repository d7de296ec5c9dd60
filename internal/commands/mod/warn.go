// Package mod - !warn command
package mod

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/moderation"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the !warn command
func createWarnCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"warn",
		"Warn a user and open a support ticket",
		"mod",
		warnHandler(deps),
	).WithUsage("warn @user [reason]").
		WithUserPermissions(discordgo.PermissionModerateMembers)
}

// warnHandler handles the !warn command
func warnHandler(deps Deps) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		target := ctx.MentionedUser()
		if target == nil {
			return ctx.Reply("❌ Please mention a user to warn.")
		}
		if target.Bot {
			return ctx.Reply("❌ You cannot warn a bot.")
		}

		result, err := deps.Pipeline.Execute(moderation.KindWarn, moderation.Request{
			GuildID:   ctx.Message.GuildID,
			GuildName: guildName(ctx),
			Target:    target,
			Moderator: ctx.Author(),
			Reason:    ctx.ArgsFrom(1),
		})
		if err != nil {
			return replyActionError(ctx, err, "warn", result)
		}

		embed := &discordgo.MessageEmbed{
			Title: "⚠️ User Warned",
			Color: 0xf39c12,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "👤 User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
				{Name: "👮 Moderator", Value: ctx.Author().Username, Inline: true},
				{Name: "📝 Reason", Value: result.Reason, Inline: false},
				{Name: "📊 Total Warnings", Value: strconv.Itoa(result.WarnCount), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		decorateOutcome(embed, result)

		return ctx.ReplyEmbed(embed)
	}
}

// guildName resolves the display name of the current guild
func guildName(ctx *discord.CommandContext) string {
	if guild := ctx.Guild(); guild != nil {
		return guild.Name
	}
	return "this server"
}

// decorateOutcome appends the ticket field and the DM-failure footer shared
// by the punitive command embeds
func decorateOutcome(embed *discordgo.MessageEmbed, result *moderation.Result) {
	if result.Ticket != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🎫 Support Ticket",
			Value:  fmt.Sprintf("<#%s>", result.Ticket.ChannelID),
			Inline: true,
		})
	}
	if !result.Notified {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Could not DM the user.",
		}
	}
}

// replyActionError turns a pipeline error into a user-facing reply
func replyActionError(ctx *discord.CommandContext, err error, action string, result *moderation.Result) error {
	var vErr *moderation.ValidationError
	if errors.As(err, &vErr) {
		return ctx.Reply(vErr.Message)
	}

	var privErr *moderation.InsufficientPrivilegeError
	if errors.As(err, &privErr) {
		msg := fmt.Sprintf("❌ I could not %s this user. Check my role position and permissions.", action)
		if result != nil && result.Ticket != nil {
			msg += fmt.Sprintf(" The support ticket <#%s> remains open.", result.Ticket.ChannelID)
		}
		return ctx.Reply(msg)
	}

	return ctx.Reply(fmt.Sprintf("❌ Failed to %s the user: %v", action, err))
}
