// Package info - hosting plan commands (!vps, !gameserver, !dcbot, !web)
package info

import (
	"fmt"

	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// vpsPrices holds the VPS plan prices in LKR; game servers add a flat markup
var vpsPrices = []struct {
	Name  string
	Price int
}{
	{"64GB RAM", 8000},
	{"32GB RAM", 400},
	{"16GB RAM", 2000},
	{"8GB RAM", 1000},
	{"4GB RAM", 500},
}

// gameServerMarkup is added on top of each VPS price
const gameServerMarkup = 100

// createVPSCommand creates the !vps command
func createVPSCommand() *discord.Command {
	return discord.NewCommand(
		"vps",
		"Show the VPS hosting plans",
		"info",
		func(ctx *discord.CommandContext) error {
			fields := make([]*discordgo.MessageEmbedField, 0, len(vpsPrices))
			for _, plan := range vpsPrices {
				fields = append(fields, &discordgo.MessageEmbedField{
					Name:   "💠 " + plan.Name,
					Value:  fmt.Sprintf("Rs. %d", plan.Price),
					Inline: false,
				})
			}
			return ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "🖥️ VPS Hosting Plans (LKR)",
				Color:       0x3498db,
				Description: "🎟️ Create a ticket to purchase!",
				Fields:      fields,
				Footer:      &discordgo.MessageEmbedFooter{Text: "Trapo Cloud Hosting™ | Visit trapo.cloud"},
			})
		},
	)
}

// createGameServerCommand creates the !gameserver command
func createGameServerCommand() *discord.Command {
	return discord.NewCommand(
		"gameserver",
		"Show the game server hosting plans",
		"info",
		func(ctx *discord.CommandContext) error {
			fields := make([]*discordgo.MessageEmbedField, 0, len(vpsPrices))
			for _, plan := range vpsPrices {
				fields = append(fields, &discordgo.MessageEmbedField{
					Name:   "💠 " + plan.Name,
					Value:  fmt.Sprintf("Rs. %d", plan.Price+gameServerMarkup),
					Inline: false,
				})
			}
			return ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "🎮 Game Server Hosting (LKR)",
				Color:       0xe67e22,
				Description: "🎟️ Create a ticket to purchase!",
				Fields:      fields,
				Footer:      &discordgo.MessageEmbedFooter{Text: "Trapo Cloud Hosting™ | Visit trapo.cloud"},
			})
		},
	)
}

// createDcBotCommand creates the !dcbot command
func createDcBotCommand() *discord.Command {
	return discord.NewCommand(
		"dcbot",
		"Show the Discord bot hosting plans",
		"info",
		func(ctx *discord.CommandContext) error {
			return ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "🤖 Discord Bot Hosting Plans (LKR)",
				Color:       0x9b59b6,
				Description: "🎟️ Create a ticket to purchase!",
				Fields: []*discordgo.MessageEmbedField{
					{Name: "🟢 Starter", Value: "💲 Rs. 100\n🧠 RAM: 256MB", Inline: false},
					{Name: "🔵 Coder", Value: "💲 Rs. 200\n🧠 RAM: 512MB", Inline: false},
					{Name: "🟣 Developer", Value: "💲 Rs. 600\n🧠 RAM: 1GB", Inline: false},
				},
				Footer: &discordgo.MessageEmbedFooter{Text: "CodeOn Hosting™ | Visit codeon.codes"},
			})
		},
	)
}

// createWebCommand creates the !web command
func createWebCommand() *discord.Command {
	return discord.NewCommand(
		"web",
		"Show the web hosting plans",
		"info",
		func(ctx *discord.CommandContext) error {
			return ctx.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "🌐 Web Hosting Plans (LKR)",
				Color:       0x2ecc71,
				Description: "🎟️ Create a ticket to purchase!",
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Lite", Value: "💲 Rs. 99\n💾 SSD: 1GB", Inline: false},
					{Name: "Plus", Value: "💲 Rs. 199\n💾 SSD: 5GB", Inline: false},
					{Name: "Elite", Value: "💲 Rs. 399\n💾 SSD: 10GB", Inline: false},
				},
				Footer: &discordgo.MessageEmbedFooter{Text: "Trapo Cloud Hosting™ | Visit trapo.cloud"},
			})
		},
	)
}
