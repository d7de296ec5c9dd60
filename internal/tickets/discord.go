package tickets

import (
	"fmt"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// CloseButtonID is the component custom ID of the close-ticket button
const CloseButtonID = "close_ticket"

// DiscordProvider implements ChannelProvider on top of a discordgo session
type DiscordProvider struct {
	session *discordgo.Session
}

// NewDiscordProvider creates a provider using the given session
func NewDiscordProvider(session *discordgo.Session) *DiscordProvider {
	return &DiscordProvider{session: session}
}

// EnsureCategory finds the support category by name, creating it if absent
func (p *DiscordProvider) EnsureCategory(guildID, name string) (string, error) {
	channels, err := p.session.GuildChannels(guildID)
	if err != nil {
		return "", err
	}

	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == name {
			return ch.ID, nil
		}
	}

	category, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return "", err
	}
	return category.ID, nil
}

// CreateTicketChannel creates a text channel hidden from @everyone and
// visible to the subject user (staff see it through role overrides)
func (p *DiscordProvider) CreateTicketChannel(guildID, parentID, name, subjectUserID string) (string, error) {
	channel, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: parentID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   guildID, // @everyone role shares the guild ID
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:   subjectUserID,
				Type: discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel |
					discordgo.PermissionSendMessages |
					discordgo.PermissionReadMessageHistory,
			},
		},
	})
	if err != nil {
		return "", err
	}
	return channel.ID, nil
}

// PostNotice posts the opening embed with the close-ticket button
func (p *DiscordProvider) PostNotice(channelID string, ticket *models.Ticket, initiatorID string) error {
	embed := &discordgo.MessageEmbed{
		Title:       "🎫 Support Ticket Created",
		Color:       0xe74c3c,
		Description: fmt.Sprintf("**Reason for Ticket Creation:**\n%s", ticket.Reason),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 User", Value: fmt.Sprintf("<@%s> (%s)", ticket.UserID, ticket.UserID), Inline: true},
			{Name: "👮 Moderator", Value: fmt.Sprintf("<@%s>", initiatorID), Inline: true},
			{Name: "⏰ Created", Value: fmt.Sprintf("<t:%d:F>", ticket.CreatedAt.Unix()), Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Please explain your situation. A staff member will assist you shortly.",
		},
		Timestamp: ticket.CreatedAt.Format(time.RFC3339),
	}

	closeRow := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: CloseButtonID,
				Label:    "Close Ticket",
				Style:    discordgo.DangerButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
			},
		},
	}

	_, err := p.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s> <@%s>", ticket.UserID, initiatorID),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{closeRow},
	})
	return err
}

// DeleteChannel removes the backing channel
func (p *DiscordProvider) DeleteChannel(channelID string) error {
	_, err := p.session.ChannelDelete(channelID)
	return err
}
