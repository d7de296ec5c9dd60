// Package info - !help command
package info

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/config"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// categoryTitles maps internal category names to their display headers
var categoryTitles = map[string]string{
	"mod":     "🛡️ Moderation",
	"support": "🎫 Support",
	"info":    "ℹ️ Information",
	"dev":     "🔧 Developer",
}

// createHelpCommand creates the !help command
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Show all available commands",
		"info",
		helpHandler,
	)
}

// helpHandler handles the !help command
func helpHandler(ctx *discord.CommandContext) error {
	prefix := config.Get().CommandPrefix
	grouped := ctx.Client.CommandHandler.ByCategory()

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	fields := make([]*discordgo.MessageEmbedField, 0, len(categories))
	for _, category := range categories {
		if category == "dev" {
			// Owner-only commands stay out of the public listing
			continue
		}

		var lines []string
		for _, cmd := range grouped[category] {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			lines = append(lines, fmt.Sprintf("`%s%s` - %s", prefix, usage, cmd.Description))
		}

		title := categoryTitles[category]
		if title == "" {
			title = category
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   title,
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📖 Trapo Cloud Bot Help",
		Color:       0x3498db,
		Description: fmt.Sprintf("Use `%s<command>` to run a command.", prefix),
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Trapo Cloud™ | Community Bot",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}
