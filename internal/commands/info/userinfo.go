// Package info - !userinfo command
package info

import (
	"fmt"
	"strings"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createUserInfoCommand creates the !userinfo command
func createUserInfoCommand() *discord.Command {
	return discord.NewCommand(
		"userinfo",
		"Show information about a user",
		"info",
		userInfoHandler,
	).WithUsage("userinfo [@user]")
}

// userInfoHandler handles the !userinfo command. Without a mention it shows
// the invoker.
func userInfoHandler(ctx *discord.CommandContext) error {
	target := ctx.MentionedUser()
	if target == nil {
		target = ctx.Author()
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "🆔 User ID", Value: target.ID, Inline: true},
		{Name: "🤖 Bot", Value: yesNo(target.Bot), Inline: true},
	}

	if member, err := ctx.Session.GuildMember(ctx.Message.GuildID, target.ID); err == nil {
		if member.Nick != "" {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "📛 Nickname", Value: member.Nick, Inline: true,
			})
		}
		if !member.JoinedAt.IsZero() {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "📅 Joined", Value: fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()), Inline: true,
			})
		}
		if len(member.Roles) > 0 {
			mentions := make([]string, 0, len(member.Roles))
			for _, roleID := range member.Roles {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "🎭 Roles", Value: strings.Join(mentions, " "), Inline: false,
			})
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("👤 %s", target.Username),
		Color:     0x3498db,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("256")},
	}

	return ctx.ReplyEmbed(embed)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
