// Package events provides event handlers for component interactions
package events

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/internal/tickets"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterInteractionEvents registers the component interaction handlers
func RegisterInteractionEvents(client *discord.ExtendedClient, deps Deps) {
	client.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		onInteractionCreate(s, i, deps)
	})
}

// onInteractionCreate handles the close-ticket button. Unknown channels get
// an ephemeral rejection; valid ones get the closing notice before deletion.
func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, deps Deps) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.MessageComponentData().CustomID != tickets.CloseButtonID {
		return
	}

	channelID := i.ChannelID
	if _, ok := deps.Tickets.Get(channelID); !ok {
		respondEphemeral(s, i, "❌ This is not a valid ticket channel.")
		return
	}

	closeEmbed := &discordgo.MessageEmbed{
		Title:       "🔒 Ticket Closed",
		Color:       0x95a5a6,
		Description: "This ticket has been closed. The channel will be deleted in 5 seconds.",
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{closeEmbed},
		},
	})
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo responder a la interacción: %v", err), "Interaction")
	}

	deps.Tickets.Close(channelID)
}

// respondEphemeral sends an ephemeral text response to an interaction
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar la respuesta efímera: %v", err), "Interaction")
	}
}
