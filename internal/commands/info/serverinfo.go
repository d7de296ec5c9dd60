// Package info - !serverinfo command
package info

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createServerInfoCommand creates the !serverinfo command
func createServerInfoCommand() *discord.Command {
	return discord.NewCommand(
		"serverinfo",
		"Show information about this server",
		"info",
		serverInfoHandler,
	)
}

// serverInfoHandler handles the !serverinfo command
func serverInfoHandler(ctx *discord.CommandContext) error {
	guild := ctx.Guild()
	if guild == nil {
		return ctx.Reply("❌ Could not load the server information.")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏠 %s", guild.Name),
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🆔 Server ID", Value: guild.ID, Inline: true},
			{Name: "👑 Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "👥 Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "💬 Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
			{Name: "🎭 Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}

	return ctx.ReplyEmbed(embed)
}
